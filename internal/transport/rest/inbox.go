package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
	"github.com/heartmarshall/inbox-triage/internal/service/inbox"
)

// inboxService defines the minimal interface needed by InboxHandler.
type inboxService interface {
	CreateManual(ctx context.Context, input inbox.CreateManualInput) (*domain.InboxItem, error)
	CreateFromEmail(ctx context.Context, input inbox.CreateFromEmailInput) (*domain.InboxItem, error)
	ListOpen(ctx context.Context) ([]inbox.OpenItem, error)
}

// InboxHandler serves the inbox intake and listing endpoints.
type InboxHandler struct {
	svc inboxService
	log *slog.Logger
}

// NewInboxHandler creates an InboxHandler.
func NewInboxHandler(svc inboxService, logger *slog.Logger) *InboxHandler {
	return &InboxHandler{svc: svc, log: logger.With("handler", "inbox")}
}

type createItemRequest struct {
	Title string `json:"title"`
}

type emailItemRequest struct {
	Subject   string `json:"subject"`
	From      string `json:"from"`
	MessageID string `json:"message_id"`
	TextBody  string `json:"text_body"`
	HTMLBody  string `json:"html_body"`
}

type itemResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Source    string            `json:"source"`
	CreatedAt time.Time         `json:"created_at"`
	Actions   map[string]string `json:"actions,omitempty"`
}

type listResponse struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Count       int            `json:"count"`
	Items       []itemResponse `json:"items"`
}

// List handles GET /inbox: unprocessed items, oldest first, each with
// its one-click move links.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListOpen(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := listResponse{
		GeneratedAt: time.Now().UTC(),
		Count:       len(items),
		Items:       make([]itemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, itemResponse{
			ID:        item.ID,
			Title:     item.Title,
			Source:    item.Source,
			CreatedAt: item.CreatedAt,
			Actions:   item.Actions,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /inbox: manual capture of a single item.
func (h *InboxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateManual(r.Context(), inbox.CreateManualInput{Title: req.Title})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Source:    item.Source,
		CreatedAt: item.CreatedAt,
	})
}

// CreateFromEmail handles POST /inbox/email: the mail webhook. All
// fields are optional; a mail with no usable subject still lands as
// "(no subject)".
func (h *InboxHandler) CreateFromEmail(w http.ResponseWriter, r *http.Request) {
	var req emailItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateFromEmail(r.Context(), inbox.CreateFromEmailInput{
		Subject:   req.Subject,
		From:      req.From,
		MessageID: req.MessageID,
		TextBody:  req.TextBody,
		HTMLBody:  req.HTMLBody,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Source:    item.Source,
		CreatedAt: item.CreatedAt,
	})
}
