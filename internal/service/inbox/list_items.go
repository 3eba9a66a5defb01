package inbox

import (
	"context"
	"fmt"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// moveTargets are the statuses offered as one-click actions for an open
// inbox item. Inbox and Thinking are omitted: an untriaged item is already
// in the inbox, and Thinking is reached through the confirm flow instead.
var moveTargets = []domain.Status{
	domain.StatusDo,
	domain.StatusWaiting,
	domain.StatusSomeday,
	domain.StatusDone,
	domain.StatusDrop,
}

// OpenItem is an inbox item decorated with its one-click move links.
type OpenItem struct {
	domain.InboxItem
	Actions map[string]string
}

// ListOpen returns the items still waiting for triage, oldest first, each
// with a move link per target status.
func (s *Service) ListOpen(ctx context.Context) ([]OpenItem, error) {
	items, err := s.inbox.ListOpen(ctx, DefaultListSize)
	if err != nil {
		return nil, fmt.Errorf("list inbox items: %w", err)
	}

	out := make([]OpenItem, 0, len(items))
	for _, item := range items {
		actions := make(map[string]string, len(moveTargets))
		for _, status := range moveTargets {
			actions[string(status)] = s.moveURL(item.ID, status)
		}
		out = append(out, OpenItem{InboxItem: item, Actions: actions})
	}
	return out, nil
}
