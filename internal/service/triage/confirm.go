package triage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// ConfirmOffer is everything the confirmation page needs: the task for
// display and the signed token fields to embed in the form. No mutation
// has happened when an offer is rendered, so link prefetchers and
// accidental clicks are harmless.
type ConfirmOffer struct {
	Task      *domain.Task
	Status    domain.Status
	ExpiresAt int64
	Signature string
}

// Confirm is phase A of the signed status change: fetch the task, issue a
// time-boxed token for (task, target status), and hand both to the caller
// for rendering.
func (s *Service) Confirm(ctx context.Context, input ConfirmInput) (*ConfirmOffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("fetch task: %w", err)
	}

	expiresAt, sig := s.signer.Issue(task.ID, input.Status)
	return &ConfirmOffer{
		Task:      task,
		Status:    input.Status,
		ExpiresAt: expiresAt,
		Signature: sig,
	}, nil
}

// Apply is phase B: verify the submitted token and patch the task's
// status. Tokens are stateless, so a still-valid token can be applied
// again; re-setting the same status is a no-op in effect.
func (s *Service) Apply(ctx context.Context, input ApplyInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.signer.Verify(input.TaskID, input.Status, input.ExpiresAt, input.Signature); err != nil {
		return nil, err
	}

	task, err := s.tasks.SetStatus(ctx, input.TaskID, input.Status, s.now())
	if err != nil {
		return nil, fmt.Errorf("apply status change: %w", err)
	}

	s.log.InfoContext(ctx, "task status changed",
		slog.String("task_id", task.ID),
		slog.String("status", input.Status.String()),
	)

	return task, nil
}
