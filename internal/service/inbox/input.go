package inbox

import (
	"strings"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// CreateManualInput holds the parameters for a manually entered item.
type CreateManualInput struct {
	Title string
}

// Validate checks all fields and collects all errors.
func (i CreateManualInput) Validate() error {
	title := strings.TrimSpace(i.Title)
	if title == "" {
		return domain.NewValidationError("title", "required")
	}
	if len([]rune(title)) > maxSubjectLen {
		return domain.NewValidationError("title", "max 200 characters")
	}
	return nil
}

// CreateFromEmailInput holds the fields extracted from an inbound email.
// Every field may be empty: a blank mail still becomes a "(no subject)"
// item rather than being dropped.
type CreateFromEmailInput struct {
	Subject   string
	From      string
	MessageID string
	TextBody  string
	HTMLBody  string
}

// Validate checks all fields and collects all errors.
func (i CreateFromEmailInput) Validate() error {
	var errs []domain.FieldError
	if len(i.TextBody) > 100_000 {
		errs = append(errs, domain.FieldError{Field: "text_body", Message: "too large"})
	}
	if len(i.HTMLBody) > 500_000 {
		errs = append(errs, domain.FieldError{Field: "html_body", Message: "too large"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
