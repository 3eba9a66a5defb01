package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/inbox-triage/internal/domain"
	"github.com/heartmarshall/inbox-triage/internal/service/triage"
)

// triageService defines the minimal interface needed by ActionHandler.
type triageService interface {
	Move(ctx context.Context, input triage.MoveInput) (*triage.MoveResult, error)
	Undo(ctx context.Context, input triage.UndoInput) (*domain.Task, error)
	Confirm(ctx context.Context, input triage.ConfirmInput) (*triage.ConfirmOffer, error)
	Apply(ctx context.Context, input triage.ApplyInput) (*domain.Task, error)
}

// ActionHandler serves the link-triggered triage endpoints. GET variants
// render HTML because they are opened from a mail client; POST variants
// answer JSON for programmatic callers, except the confirmation form
// submit which is a browser flow end to end.
type ActionHandler struct {
	svc triageService
	log *slog.Logger
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(svc triageService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{svc: svc, log: logger.With("handler", "action")}
}

type moveResponse struct {
	TaskID           string `json:"task_id,omitempty"`
	Status           string `json:"status,omitempty"`
	AlreadyProcessed bool   `json:"already_processed"`
	Marker           string `json:"marker,omitempty"`
}

// Move handles GET and POST /action/move. The same item moved twice is a
// 200 no-op, so a re-clicked mail link never shows an error.
func (h *ActionHandler) Move(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(r.FormValue("status"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	input := triage.MoveInput{
		InboxID: r.FormValue("id"),
		Status:  status,
		Source:  domain.TriageSourceAPI,
	}
	if r.Method == http.MethodGet {
		input.Source = domain.TriageSourceMailLink
	}

	result, err := h.svc.Move(r.Context(), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		heading := fmt.Sprintf("Moved to %s", input.Status)
		lines := []string{"The inbox item is now a task. You can close this tab."}
		if result.AlreadyProcessed {
			heading = "Already processed"
			lines = []string{"This item was handled earlier: " + result.Marker + "."}
		}
		writeHTML(w, http.StatusOK, pageTemplate, pageView{Title: heading, Heading: heading, Lines: lines})
		return
	}

	resp := moveResponse{AlreadyProcessed: result.AlreadyProcessed, Marker: result.Marker}
	if result.Task != nil {
		resp.TaskID = result.Task.ID
		resp.Status = result.Task.Status.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Undo handles GET /action/undo: archive the task, restore its source
// inbox item.
func (h *ActionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Undo(r.Context(), triage.UndoInput{TaskID: r.FormValue("task_id")})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, pageTemplate, pageView{
		Title:   "Undone",
		Heading: "Undone",
		Lines: []string{
			fmt.Sprintf("Task %q was archived and the inbox item restored.", task.Name),
		},
	})
}

// Confirm handles GET /confirm: render the confirmation form with a
// signed, time-boxed token. Nothing changes until the form is submitted,
// so mail-client link prefetching is harmless.
func (h *ActionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(r.FormValue("to"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	offer, err := h.svc.Confirm(r.Context(), triage.ConfirmInput{
		TaskID: r.FormValue("task_id"),
		Status: status,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, confirmTemplate, confirmView{
		TaskName:   offer.Task.Name,
		Status:     offer.Status.String(),
		ActionPath: "/action/task/update",
		TaskID:     offer.Task.ID,
		ExpiresAt:  offer.ExpiresAt,
		Signature:  offer.Signature,
		Key:        r.FormValue("key"),
	})
}

// Apply handles POST /action/task/update: verify the token from the
// confirmation form and apply the status change.
func (h *ActionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	exp, err := strconv.ParseInt(r.FormValue("exp"), 10, 64)
	if err != nil {
		writeHTMLError(w, http.StatusBadRequest, "malformed expiry")
		return
	}

	status, err := domain.ParseStatus(r.FormValue("to"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	task, err := h.svc.Apply(r.Context(), triage.ApplyInput{
		TaskID:    r.FormValue("task_id"),
		Status:    status,
		ExpiresAt: exp,
		Signature: r.FormValue("sig"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, pageTemplate, pageView{
		Title:   "Status updated",
		Heading: fmt.Sprintf("Moved to %s", task.Status),
		Lines:   []string{fmt.Sprintf("Task %q is now %s.", task.Name, task.Status)},
	})
}

// respondError picks HTML or JSON based on what the client is: browser
// flows (GET links and the form submit) get pages, API calls get JSON.
func (h *ActionHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Method == http.MethodGet || r.URL.Path == "/action/task/update" {
		status, message := statusForError(err)
		if message == "" {
			h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
			message = "internal server error"
		}
		writeHTMLError(w, status, message)
		return
	}
	handleError(r.Context(), h.log, w, err)
}
