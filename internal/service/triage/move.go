package triage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// MoveResult reports the outcome of a move. AlreadyProcessed marks the
// idempotent no-op path: the item had been handled before, and the caller
// must treat that as success.
type MoveResult struct {
	Task             *domain.Task
	AlreadyProcessed bool
	Marker           string
}

// Move converts one inbox item into one task. The operation is idempotent
// against duplicate triggers (repeated link clicks, duplicate webhook
// delivery), but only weakly: the check-then-claim pattern narrows the
// race window between concurrent invocations without closing it, because
// the store offers no conditional update.
//
// A failure after the claim leaves the item marked "processing" with no
// task (or a task missing its finalize marker). That state is not rolled
// back; an operator reconciles it from the store.
func (s *Service) Move(ctx context.Context, input MoveInput) (*MoveResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.inbox.Get(ctx, input.InboxID)
	if err != nil {
		return nil, fmt.Errorf("fetch inbox item: %w", err)
	}

	if !item.Claimable() {
		s.log.InfoContext(ctx, "inbox item already processed",
			slog.String("inbox_id", item.ID),
			slog.String("marker", item.ProcessedMarker),
		)
		return &MoveResult{AlreadyProcessed: true, Marker: item.ProcessedMarker}, nil
	}

	// Claim before any further work so a concurrent duplicate sees the
	// marker and bails out at the check above.
	if err := s.inbox.Claim(ctx, item.ID, claimMarker); err != nil {
		return nil, fmt.Errorf("claim inbox item: %w", err)
	}

	now := s.now()
	name := item.Title
	if name == "" {
		name = "Untitled"
	}

	task, err := s.tasks.Create(ctx, &domain.Task{
		Name:          name,
		Status:        input.Status,
		SourceInboxID: item.ID,
		TriageSource:  input.Source,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	// The undo link is a convenience, not part of the transition; a
	// failure here must not strand the item in the claimed state.
	if err := s.tasks.SetUndoURL(ctx, task.ID, s.undoURL(task.ID)); err != nil {
		s.log.WarnContext(ctx, "attach undo link failed",
			slog.String("task_id", task.ID),
			slog.String("error", err.Error()),
		)
	}

	marker := fmt.Sprintf("moved to %s", input.Status)
	if err := s.inbox.Finalize(ctx, item.ID, marker, now); err != nil {
		return nil, fmt.Errorf("finalize inbox item: %w", err)
	}

	s.log.InfoContext(ctx, "inbox item moved",
		slog.String("inbox_id", item.ID),
		slog.String("task_id", task.ID),
		slog.String("status", input.Status.String()),
		slog.String("source", input.Source.String()),
	)

	return &MoveResult{Task: task, Marker: marker}, nil
}
