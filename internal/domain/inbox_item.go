package domain

import "time"

// InboxItem is a captured thought or inbound email waiting for triage.
// Items are created by mail ingestion or manual entry and consumed by the
// move engine, which claims and finalizes them.
type InboxItem struct {
	ID        string
	Title     string
	Source    string
	CreatedAt time.Time

	// Raw preserves the captured body (email text plus a metadata
	// trailer). Display-only; triage never parses it.
	Raw string

	// ProcessedMarker is a free-text flag: empty means unprocessed,
	// "processing" means a move is in flight, and a "moved to {status}"
	// message means the item has been converted into a task.
	ProcessedMarker string
	ProcessedAt     *time.Time
}

// Claimable reports whether the item is still available for triage.
// An item is claimable iff the marker is empty and ProcessedAt is unset.
func (i InboxItem) Claimable() bool {
	return i.ProcessedMarker == "" && i.ProcessedAt == nil
}
