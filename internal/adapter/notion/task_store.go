package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// Tasks database property names.
const (
	taskPropName         = "Name"
	taskPropStatus       = "Status"
	taskPropPriority     = "Priority"
	taskPropSinceDo      = "Since Do"
	taskPropSinceSomeday = "Since Someday"
	taskPropReminder     = "Reminder Date"
	taskPropSourceInbox  = "Source Inbox"
	taskPropTriageSource = "Triage Source"
	taskPropUndo         = "Undo"
	taskPropCreated      = "Created"
)

// TaskStore provides typed access to the tasks database.
type TaskStore struct {
	client *Client
	dbID   string
}

// NewTaskStore creates a TaskStore over the given database.
func NewTaskStore(client *Client, databaseID string) *TaskStore {
	return &TaskStore{client: client, dbID: databaseID}
}

// Get fetches one task by page id.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	page, err := s.client.GetPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	task := pageToTask(*page)
	return &task, nil
}

// Create adds a task. Entering Do or Someday stamps the matching
// since-date so the digest can show aging from day one.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	props := Properties{
		taskPropName:         TitleProp(task.Name),
		taskPropStatus:       SelectProp(task.Status.String()),
		taskPropSourceInbox:  RichTextProp(task.SourceInboxID),
		taskPropTriageSource: RichTextProp(task.TriageSource.String()),
		taskPropCreated:      DateProp(task.CreatedAt),
	}
	switch task.Status {
	case domain.StatusDo:
		props[taskPropSinceDo] = DateProp(task.CreatedAt)
	case domain.StatusSomeday:
		props[taskPropSinceSomeday] = DateProp(task.CreatedAt)
	}

	page, err := s.client.CreatePage(ctx, s.dbID, props)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	created := pageToTask(*page)
	return &created, nil
}

// SetStatus patches the task's status and stamps the since-date when the
// task enters Do or Someday. Returns the task as the store sees it after
// the patch.
func (s *TaskStore) SetStatus(ctx context.Context, id string, status domain.Status, enteredAt time.Time) (*domain.Task, error) {
	props := Properties{
		taskPropStatus: SelectProp(status.String()),
	}
	switch status {
	case domain.StatusDo:
		props[taskPropSinceDo] = DateProp(enteredAt)
	case domain.StatusSomeday:
		props[taskPropSinceSomeday] = DateProp(enteredAt)
	}
	page, err := s.client.PatchPage(ctx, id, props)
	if err != nil {
		return nil, fmt.Errorf("set task status: %w", err)
	}
	task := pageToTask(*page)
	return &task, nil
}

// SetUndoURL attaches the reversal link to a freshly moved task.
func (s *TaskStore) SetUndoURL(ctx context.Context, id, url string) error {
	if _, err := s.client.PatchPage(ctx, id, Properties{
		taskPropUndo: URLProp(url),
	}); err != nil {
		return fmt.Errorf("set undo url: %w", err)
	}
	return nil
}

// Archive retires a task. The page stays recoverable in the store's trash.
func (s *TaskStore) Archive(ctx context.Context, id string) error {
	if err := s.client.ArchivePage(ctx, id); err != nil {
		return fmt.Errorf("archive task: %w", err)
	}
	return nil
}

// ListByStatus returns tasks in the given status, at most pageSize.
func (s *TaskStore) ListByStatus(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error) {
	pages, err := s.client.QueryDatabase(ctx, s.dbID, QueryRequest{
		PageSize: pageSize,
		Filter:   PropFilter(taskPropStatus, "select", map[string]any{"equals": status.String()}),
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	return pagesToTasks(pages), nil
}

// ListActionable returns Do tasks plus Waiting tasks whose reminder date
// has arrived or was never set. today is a civil date in digest time
// ("2006-01-02").
func (s *TaskStore) ListActionable(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
	filter := OrFilter(
		PropFilter(taskPropStatus, "select", map[string]any{"equals": domain.StatusDo.String()}),
		AndFilter(
			PropFilter(taskPropStatus, "select", map[string]any{"equals": domain.StatusWaiting.String()}),
			OrFilter(
				PropFilter(taskPropReminder, "date", map[string]any{"on_or_before": today}),
				PropFilter(taskPropReminder, "date", map[string]any{"is_empty": true}),
			),
		),
	)

	pages, err := s.client.QueryDatabase(ctx, s.dbID, QueryRequest{
		PageSize: pageSize,
		Filter:   filter,
	})
	if err != nil {
		return nil, fmt.Errorf("list actionable tasks: %w", err)
	}
	return pagesToTasks(pages), nil
}

func pagesToTasks(pages []Page) []domain.Task {
	tasks := make([]domain.Task, 0, len(pages))
	for _, p := range pages {
		tasks = append(tasks, pageToTask(p))
	}
	return tasks
}

func pageToTask(p Page) domain.Task {
	task := domain.Task{
		ID:             p.ID,
		Name:           p.TitleText(taskPropName),
		Status:         domain.Status(p.SelectValue(taskPropStatus)),
		SourceInboxID:  p.RichTextValue(taskPropSourceInbox),
		TriageSource:   domain.TriageSource(p.RichTextValue(taskPropTriageSource)),
		Priority:       p.SelectValue(taskPropPriority),
		SinceDoAt:      p.DateValue(taskPropSinceDo),
		SinceSomedayAt: p.DateValue(taskPropSinceSomeday),
		ReminderAt:     p.DateValue(taskPropReminder),
	}
	if task.Name == "" {
		task.Name = "Untitled"
	}
	if task.Priority == "" {
		task.Priority = "-"
	}
	if created := p.DateValue(taskPropCreated); created != nil {
		task.CreatedAt = *created
	}
	return task
}
