package domain

import "time"

// TriageSource tags the trigger surface that created a task.
type TriageSource string

const (
	TriageSourceMailLink TriageSource = "mail-link"
	TriageSourceAPI      TriageSource = "api"
)

func (t TriageSource) String() string { return string(t) }

// Task is a triaged item in the tasks database.
type Task struct {
	ID     string
	Name   string
	Status Status

	// SourceInboxID points back at the inbox item the task was created
	// from. Empty for tasks created manually in the store.
	SourceInboxID string
	TriageSource  TriageSource

	// Priority is display-only; the store owns its value.
	Priority string

	// SinceDoAt and SinceSomedayAt record when the task entered the
	// corresponding status, for aging display in the digest.
	SinceDoAt      *time.Time
	SinceSomedayAt *time.Time

	// ReminderAt suppresses a Waiting task from the digest until the date
	// is reached. Unset means always shown.
	ReminderAt *time.Time

	CreatedAt time.Time
}
