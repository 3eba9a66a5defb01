package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// CreateManual creates an inbox item from a bare title, for entries typed
// into the API rather than mailed in.
func (s *Service) CreateManual(ctx context.Context, input CreateManualInput) (*domain.InboxItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item, err := s.inbox.Create(ctx, &domain.InboxItem{
		Title:     strings.TrimSpace(input.Title),
		Source:    "Manual",
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create inbox item: %w", err)
	}

	s.log.InfoContext(ctx, "inbox item created",
		slog.String("item_id", item.ID),
		slog.String("source", "manual"),
	)
	return item, nil
}

// CreateFromEmail creates an inbox item from a parsed inbound email. The
// plain text body wins when present; otherwise the HTML body is stripped
// down to text. The raw body is preserved with a metadata trailer.
func (s *Service) CreateFromEmail(ctx context.Context, input CreateFromEmailInput) (*domain.InboxItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(input.TextBody)
	if body == "" && input.HTMLBody != "" {
		body = stripHTMLToText(input.HTMLBody)
	}

	now := s.now().UTC()
	receivedISO := now.Format(time.RFC3339)

	item, err := s.inbox.Create(ctx, &domain.InboxItem{
		Title:     sanitizeSubject(input.Subject),
		Source:    "Email",
		Raw:       buildRawText(body, input.From, input.MessageID, receivedISO),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create inbox item from email: %w", err)
	}

	s.log.InfoContext(ctx, "inbox item created",
		slog.String("item_id", item.ID),
		slog.String("source", "email"),
		slog.String("message_id", input.MessageID),
	)
	return item, nil
}
