package triage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// Undo reverses a move: the source inbox item returns to the claimable
// state and the task is archived. The inbox item is restored first, so a
// crash between the two steps leaves a visible duplicate (restored item
// plus live task) rather than silently losing the item.
func (s *Service) Undo(ctx context.Context, input UndoInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("fetch task: %w", err)
	}

	if task.SourceInboxID == "" {
		return nil, domain.NewValidationError("task_id", "task was not created from an inbox item, nothing to undo")
	}

	if err := s.inbox.Restore(ctx, task.SourceInboxID); err != nil {
		return nil, fmt.Errorf("restore inbox item: %w", err)
	}

	if err := s.tasks.Archive(ctx, task.ID); err != nil {
		return nil, fmt.Errorf("archive task: %w", err)
	}

	s.log.InfoContext(ctx, "move undone",
		slog.String("task_id", task.ID),
		slog.String("inbox_id", task.SourceInboxID),
	)

	return task, nil
}
