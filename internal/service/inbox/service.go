package inbox

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// DefaultListSize caps how many open items a single listing returns.
const DefaultListSize = 20

type inboxStore interface {
	Create(ctx context.Context, item *domain.InboxItem) (*domain.InboxItem, error)
	ListOpen(ctx context.Context, pageSize int) ([]domain.InboxItem, error)
}

// Service captures new inbox items (from inbound email or manual entry)
// and lists the items still waiting for triage.
type Service struct {
	inbox     inboxStore
	baseURL   string
	sharedKey string
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates an inbox service. baseURL is the external origin used
// in the move action links of listed items; sharedKey, when non-empty, is
// appended to those links so they pass the request guard.
func NewService(log *slog.Logger, inbox inboxStore, baseURL, sharedKey string) *Service {
	return &Service{
		inbox:     inbox,
		baseURL:   baseURL,
		sharedKey: sharedKey,
		log:       log.With("service", "inbox"),
		now:       time.Now,
	}
}

func (s *Service) moveURL(itemID string, status domain.Status) string {
	u := s.baseURL + "/action/move?id=" + url.QueryEscape(itemID) + "&status=" + url.QueryEscape(status.String())
	if s.sharedKey != "" {
		u += "&key=" + url.QueryEscape(s.sharedKey)
	}
	return u
}
