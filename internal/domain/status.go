package domain

import "strings"

// Status represents the triage state of a task. The set is closed: the
// Store's select property only ever carries one of these values, and any
// other input is rejected at the boundary.
type Status string

const (
	StatusInbox    Status = "Inbox"
	StatusDo       Status = "Do"
	StatusThinking Status = "Thinking"
	StatusSomeday  Status = "Someday"
	StatusWaiting  Status = "Waiting"
	StatusDone     Status = "Done"
	StatusDrop     Status = "Drop"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusInbox,
	StatusDo,
	StatusThinking,
	StatusSomeday,
	StatusWaiting,
	StatusDone,
	StatusDrop,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusInbox, StatusDo, StatusThinking, StatusSomeday,
		StatusWaiting, StatusDone, StatusDrop:
		return true
	}
	return false
}

// ParseStatus maps a user-supplied string onto the canonical enum.
// Matching is case-insensitive; unrecognized input is a validation error,
// never echoed back as-is.
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewValidationError("status", "required")
	}
	for _, s := range AllStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", NewValidationError("status", "unknown status "+strings.ToLower(trimmed))
}
