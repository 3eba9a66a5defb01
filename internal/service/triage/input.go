package triage

import "github.com/heartmarshall/inbox-triage/internal/domain"

// MoveInput holds the parameters for converting an inbox item into a task.
type MoveInput struct {
	InboxID string
	Status  domain.Status
	Source  domain.TriageSource
}

// Validate checks all fields and collects all errors.
func (i MoveInput) Validate() error {
	var errs []domain.FieldError
	if i.InboxID == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UndoInput holds the parameters for reversing a move.
type UndoInput struct {
	TaskID string
}

// Validate checks all fields and collects all errors.
func (i UndoInput) Validate() error {
	if i.TaskID == "" {
		return domain.NewValidationError("task_id", "required")
	}
	return nil
}

// ConfirmInput holds the parameters for rendering a confirmation offer.
type ConfirmInput struct {
	TaskID string
	Status domain.Status
}

// Validate checks all fields and collects all errors.
func (i ConfirmInput) Validate() error {
	var errs []domain.FieldError
	if i.TaskID == "" {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "invalid status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ApplyInput holds the submitted fields of a signed status change.
type ApplyInput struct {
	TaskID    string
	Status    domain.Status
	ExpiresAt int64
	Signature string
}

// Validate checks all fields and collects all errors. Signature integrity
// itself is the signer's concern, not a field validation.
func (i ApplyInput) Validate() error {
	var errs []domain.FieldError
	if i.TaskID == "" {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "invalid status"})
	}
	if i.ExpiresAt <= 0 {
		errs = append(errs, domain.FieldError{Field: "exp", Message: "required"})
	}
	if i.Signature == "" {
		errs = append(errs, domain.FieldError{Field: "sig", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
