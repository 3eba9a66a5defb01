package digest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/adapter/holidays"
	"github.com/heartmarshall/inbox-triage/internal/domain"
)

type taskStoreMock struct {
	ListActionableFunc func(ctx context.Context, today string, pageSize int) ([]domain.Task, error)
	ListByStatusFunc   func(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error)
}

func (m *taskStoreMock) ListActionable(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
	return m.ListActionableFunc(ctx, today, pageSize)
}

func (m *taskStoreMock) ListByStatus(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error) {
	return m.ListByStatusFunc(ctx, status, pageSize)
}

type holidaySourceMock struct {
	set holidays.Set
}

func (m *holidaySourceMock) Holidays(ctx context.Context) holidays.Set {
	return m.set
}

func newTestService(t *testing.T, tasks *taskStoreMock, hol holidays.Set, now time.Time) *Service {
	t.Helper()
	svc := NewService(slog.Default(), tasks, &holidaySourceMock{set: hol}, "https://triage.example.com", "", 100)
	svc.now = func() time.Time { return now }
	return svc
}

func tPtr(t time.Time) *time.Time { return &t }

func TestBuild_MidweekSkipsSomeday(t *testing.T) {
	t.Parallel()

	// 2024-05-08 is a Wednesday.
	now := jst(2024, 5, 8)
	tasks := &taskStoreMock{
		ListActionableFunc: func(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
			if today != "2024-05-08" {
				t.Errorf("today: got %q", today)
			}
			return []domain.Task{{ID: "t1", Name: "A", Status: domain.StatusDo}}, nil
		},
		ListByStatusFunc: func(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error) {
			t.Fatal("someday list must not be queried midweek")
			return nil, nil
		},
	}

	svc := newTestService(t, tasks, holidaySet(), now)
	d, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.IncludeSomeday {
		t.Error("midweek digest must not include someday")
	}
	if len(d.DoItems) != 1 {
		t.Fatalf("do items: got %d", len(d.DoItems))
	}
	if d.Today != "2024-05-08" {
		t.Errorf("today: got %q", d.Today)
	}
}

func TestBuild_FirstBusinessDayIncludesSomeday(t *testing.T) {
	t.Parallel()

	// 2024-05-07 is a Tuesday after a Monday holiday.
	now := jst(2024, 5, 7)
	tasks := &taskStoreMock{
		ListActionableFunc: func(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
			return nil, nil
		},
		ListByStatusFunc: func(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error) {
			if status != domain.StatusSomeday {
				t.Errorf("status: got %q", status)
			}
			return []domain.Task{{ID: "t2", Name: "B", Status: domain.StatusSomeday}}, nil
		},
	}

	svc := newTestService(t, tasks, holidaySet("2024-05-06"), now)
	d, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IncludeSomeday {
		t.Fatal("first business day must include someday")
	}
	if len(d.SomedayItems) != 1 {
		t.Fatalf("someday items: got %d", len(d.SomedayItems))
	}
}

func TestBuild_SortsBySinceWithUnsetLast(t *testing.T) {
	t.Parallel()

	now := jst(2024, 5, 8)
	tasks := &taskStoreMock{
		ListActionableFunc: func(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
			return []domain.Task{
				{ID: "unset-1", Name: "C", Status: domain.StatusDo},
				{ID: "newer", Name: "B", Status: domain.StatusDo, SinceDoAt: tPtr(jst(2024, 5, 7))},
				{ID: "unset-2", Name: "D", Status: domain.StatusDo},
				{ID: "older", Name: "A", Status: domain.StatusDo, SinceDoAt: tPtr(jst(2024, 5, 1))},
			}, nil
		},
	}

	svc := newTestService(t, tasks, holidaySet(), now)
	d, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0, len(d.DoItems))
	for _, item := range d.DoItems {
		got = append(got, item.ID)
	}
	want := []string{"older", "newer", "unset-1", "unset-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestBuild_StoreError(t *testing.T) {
	t.Parallel()

	tasks := &taskStoreMock{
		ListActionableFunc: func(ctx context.Context, today string, pageSize int) ([]domain.Task, error) {
			return nil, domain.ErrUpstream
		},
	}

	svc := newTestService(t, tasks, holidaySet(), jst(2024, 5, 8))
	if _, err := svc.Build(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("want upstream error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &taskStoreMock{}, holidaySet(), jst(2024, 5, 8))
	d := &Digest{
		GeneratedAt: jst(2024, 5, 8),
		Today:       "2024-05-08",
		DoItems: []domain.Task{
			{ID: "t 1", Name: "Buy milk", Status: domain.StatusDo, Priority: "High", SinceDoAt: tPtr(jst(2024, 5, 6))},
		},
	}

	mail, err := svc.Render(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mail.Subject != "Tasks Digest 2024-05-08 — Do: 1" {
		t.Errorf("subject: got %q", mail.Subject)
	}
	for _, want := range []string{
		"Buy milk",
		"Priority: High",
		"Since Do: 2024-05-06",
		"Elapsed: 2 days",
		"https://triage.example.com/confirm?task_id=t+1&amp;to=Done",
	} {
		if !strings.Contains(mail.HTML, want) {
			t.Errorf("html missing %q", want)
		}
	}

	// The task is already in Do, so no Do link is offered.
	if strings.Contains(mail.HTML, "to=Do\"") {
		t.Error("html must not offer moving to the current status")
	}
	if !strings.Contains(mail.Text, "Buy milk") {
		t.Error("text alternative missing task name")
	}
}

func TestRender_ConfirmLinksCarrySharedKey(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &taskStoreMock{}, &holidaySourceMock{set: holidaySet()},
		"https://triage.example.com", "shared key", 100)
	d := &Digest{
		GeneratedAt: jst(2024, 5, 8),
		Today:       "2024-05-08",
		DoItems: []domain.Task{
			{ID: "t1", Name: "Buy milk", Status: domain.StatusDo, Priority: "-"},
		},
	}

	mail, err := svc.Render(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://triage.example.com/confirm?task_id=t1&amp;to=Done&amp;key=shared+key"
	if !strings.Contains(mail.HTML, want) {
		t.Errorf("html missing keyed confirm link %q", want)
	}
}

func TestRender_SomedaySection(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &taskStoreMock{}, holidaySet(), jst(2024, 5, 6))
	d := &Digest{
		GeneratedAt:    jst(2024, 5, 6),
		Today:          "2024-05-06",
		IncludeSomeday: true,
		SomedayItems: []domain.Task{
			{ID: "t2", Name: "Learn piano", Status: domain.StatusSomeday, Priority: "-"},
		},
	}

	mail, err := svc.Render(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mail.Subject, "Someday: 1") {
		t.Errorf("subject missing someday count: %q", mail.Subject)
	}
	for _, want := range []string{"Someday (1)", "Learn piano", "Since Someday: -"} {
		if !strings.Contains(mail.HTML, want) {
			t.Errorf("html missing %q", want)
		}
	}
}
