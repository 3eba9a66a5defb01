package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// Inbox database property names.
const (
	inboxPropName        = "Name"
	inboxPropSource      = "Source"
	inboxPropCreated     = "Created"
	inboxPropRaw         = "Raw"
	inboxPropProcessed   = "Processed"
	inboxPropProcessedAt = "Processed At"
)

// Rich text runs above this length are rejected by the API.
const richTextChunkSize = 1800

// InboxStore provides typed access to the inbox database.
type InboxStore struct {
	client *Client
	dbID   string
}

// NewInboxStore creates an InboxStore over the given database.
func NewInboxStore(client *Client, databaseID string) *InboxStore {
	return &InboxStore{client: client, dbID: databaseID}
}

// Get fetches one inbox item by page id.
func (s *InboxStore) Get(ctx context.Context, id string) (*domain.InboxItem, error) {
	page, err := s.client.GetPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inbox item: %w", err)
	}
	item := pageToInboxItem(*page)
	return &item, nil
}

// ListOpen returns unprocessed items, oldest first. Both the marker and
// the processed date must be unset, matching what Claimable requires, so
// the listing never offers an item a move would then refuse.
func (s *InboxStore) ListOpen(ctx context.Context, pageSize int) ([]domain.InboxItem, error) {
	pages, err := s.client.QueryDatabase(ctx, s.dbID, QueryRequest{
		PageSize: pageSize,
		Filter: AndFilter(
			PropFilter(inboxPropProcessed, "rich_text", map[string]any{"is_empty": true}),
			PropFilter(inboxPropProcessedAt, "date", map[string]any{"is_empty": true}),
		),
		Sorts: []Sort{{Property: inboxPropCreated, Direction: "ascending"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list open inbox items: %w", err)
	}

	items := make([]domain.InboxItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, pageToInboxItem(p))
	}
	return items, nil
}

// Create adds a new unprocessed item to the inbox.
func (s *InboxStore) Create(ctx context.Context, item *domain.InboxItem) (*domain.InboxItem, error) {
	props := Properties{
		inboxPropName:      TitleProp(item.Title),
		inboxPropSource:    RichTextProp(item.Source),
		inboxPropCreated:   DateProp(item.CreatedAt),
		inboxPropRaw:       ChunkedRichTextProp(item.Raw, richTextChunkSize),
		inboxPropProcessed: RichTextProp(""),
	}
	page, err := s.client.CreatePage(ctx, s.dbID, props)
	if err != nil {
		return nil, fmt.Errorf("create inbox item: %w", err)
	}
	created := pageToInboxItem(*page)
	return &created, nil
}

// Claim writes the in-flight marker before task creation. Two concurrent
// movers can both read an empty marker before either claim lands; the
// window is narrowed, not closed, because the store has no compare-and-swap.
func (s *InboxStore) Claim(ctx context.Context, id, marker string) error {
	_, err := s.client.PatchPage(ctx, id, Properties{
		inboxPropProcessed: RichTextProp(marker),
	})
	if err != nil {
		return fmt.Errorf("claim inbox item: %w", err)
	}
	return nil
}

// Finalize records the completed move with a human-readable marker and the
// processing timestamp.
func (s *InboxStore) Finalize(ctx context.Context, id, marker string, at time.Time) error {
	_, err := s.client.PatchPage(ctx, id, Properties{
		inboxPropProcessed:   RichTextProp(marker),
		inboxPropProcessedAt: DateProp(at),
	})
	if err != nil {
		return fmt.Errorf("finalize inbox item: %w", err)
	}
	return nil
}

// Restore returns an item to the claimable state by clearing both the
// marker and the processing timestamp.
func (s *InboxStore) Restore(ctx context.Context, id string) error {
	_, err := s.client.PatchPage(ctx, id, Properties{
		inboxPropProcessed:   RichTextProp(""),
		inboxPropProcessedAt: NullDateProp(),
	})
	if err != nil {
		return fmt.Errorf("restore inbox item: %w", err)
	}
	return nil
}

func pageToInboxItem(p Page) domain.InboxItem {
	item := domain.InboxItem{
		ID:              p.ID,
		Title:           p.TitleText(inboxPropName),
		Source:          p.RichTextValue(inboxPropSource),
		Raw:             p.RichTextValue(inboxPropRaw),
		ProcessedMarker: p.RichTextValue(inboxPropProcessed),
		ProcessedAt:     p.DateValue(inboxPropProcessedAt),
	}
	if item.Title == "" {
		item.Title = "Untitled"
	}
	if created := p.DateValue(inboxPropCreated); created != nil {
		item.CreatedAt = *created
	}
	return item
}
