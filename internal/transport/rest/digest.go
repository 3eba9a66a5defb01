package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/adapter/mailchannels"
	"github.com/heartmarshall/inbox-triage/internal/service/digest"
)

// digestService defines the minimal interface needed by DigestHandler.
type digestService interface {
	Build(ctx context.Context) (*digest.Digest, error)
	Render(d *digest.Digest) (*digest.Mail, error)
}

// DigestMailer delivers a rendered digest. Exported so the composition
// root can pass nil when sending is not configured.
type DigestMailer interface {
	Send(ctx context.Context, msg mailchannels.Message) error
}

// DigestHandler serves digest preview and delivery.
type DigestHandler struct {
	svc    digestService
	mailer DigestMailer
	to     string
	log    *slog.Logger
}

// NewDigestHandler creates a DigestHandler. Pass a nil mailer or empty
// recipient to disable /digest/send.
func NewDigestHandler(svc digestService, m DigestMailer, to string, logger *slog.Logger) *DigestHandler {
	return &DigestHandler{svc: svc, mailer: m, to: to, log: logger.With("handler", "digest")}
}

type digestResponse struct {
	GeneratedAt    time.Time `json:"generated_at"`
	Today          string    `json:"today"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Text           string    `json:"text"`
	DoCount        int       `json:"do_count"`
	SomedayCount   int       `json:"someday_count"`
	IncludeSomeday bool      `json:"include_someday"`
}

// Preview handles GET /digest: compute and render without sending. The
// body field carries the same HTML a sent mail would, so an external
// relay can deliver it verbatim.
func (h *DigestHandler) Preview(w http.ResponseWriter, r *http.Request) {
	d, mail, err := h.build(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDigestResponse(d, mail))
}

// Send handles POST /digest/send: compute, render, deliver.
func (h *DigestHandler) Send(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil || h.to == "" {
		writeError(w, http.StatusServiceUnavailable, "mail sending is not configured")
		return
	}

	d, mail, err := h.build(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	err = h.mailer.Send(r.Context(), mailchannels.Message{
		To:      h.to,
		Subject: mail.Subject,
		HTML:    mail.HTML,
		Text:    mail.Text,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	h.log.InfoContext(r.Context(), "digest sent",
		slog.String("to", h.to),
		slog.Int("do_count", len(d.DoItems)),
		slog.Int("someday_count", len(d.SomedayItems)),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent", "subject": mail.Subject})
}

func (h *DigestHandler) build(ctx context.Context) (*digest.Digest, *digest.Mail, error) {
	d, err := h.svc.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	mail, err := h.svc.Render(d)
	if err != nil {
		return nil, nil, err
	}
	return d, mail, nil
}

func toDigestResponse(d *digest.Digest, mail *digest.Mail) digestResponse {
	return digestResponse{
		GeneratedAt:    d.GeneratedAt,
		Today:          d.Today,
		Subject:        mail.Subject,
		Body:           mail.HTML,
		Text:           mail.Text,
		DoCount:        len(d.DoItems),
		SomedayCount:   len(d.SomedayItems),
		IncludeSomeday: d.IncludeSomeday,
	}
}
