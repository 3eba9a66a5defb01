package triage

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

const claimMarker = "processing"

type inboxStore interface {
	Get(ctx context.Context, id string) (*domain.InboxItem, error)
	Claim(ctx context.Context, id, marker string) error
	Finalize(ctx context.Context, id, marker string, at time.Time) error
	Restore(ctx context.Context, id string) error
}

type taskStore interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	SetStatus(ctx context.Context, id string, status domain.Status, enteredAt time.Time) (*domain.Task, error)
	SetUndoURL(ctx context.Context, id, url string) error
	Archive(ctx context.Context, id string) error
}

type actionSigner interface {
	Issue(taskID string, status domain.Status) (expiresAt int64, sig string)
	Verify(taskID string, status domain.Status, expiresAt int64, sig string) error
	TTL() time.Duration
}

// Service implements the triage state machine: moving inbox items into
// tasks, confirming signed status changes, and undoing moves.
type Service struct {
	inbox     inboxStore
	tasks     taskStore
	signer    actionSigner
	baseURL   string
	sharedKey string
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a triage service. baseURL is the external origin used
// when building undo links attached to created tasks; sharedKey, when
// non-empty, is appended to those links so they pass the request guard.
func NewService(
	log *slog.Logger,
	inbox inboxStore,
	tasks taskStore,
	signer actionSigner,
	baseURL string,
	sharedKey string,
) *Service {
	return &Service{
		inbox:     inbox,
		tasks:     tasks,
		signer:    signer,
		baseURL:   baseURL,
		sharedKey: sharedKey,
		log:       log.With("service", "triage"),
		now:       time.Now,
	}
}

func (s *Service) undoURL(taskID string) string {
	u := s.baseURL + "/action/undo?task_id=" + url.QueryEscape(taskID)
	if s.sharedKey != "" {
		u += "&key=" + url.QueryEscape(s.sharedKey)
	}
	return u
}
