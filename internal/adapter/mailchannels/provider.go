package mailchannels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/config"
)

// Provider sends transactional mail through the MailChannels HTTP API.
type Provider struct {
	endpoint   string
	apiKey     string
	from       string
	fromName   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from mail configuration.
func NewProvider(cfg config.MailConfig, logger *slog.Logger) *Provider {
	return &Provider{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		fromName:   cfg.FromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.With("adapter", "mailchannels"),
	}
}

// Message is one outbound mail with an HTML body and a plain-text
// alternative.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one message. The plain-text part must come before the
// HTML part, per the transactional API's content ordering rule.
func (p *Provider) Send(ctx context.Context, msg Message) error {
	payload := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: msg.To}}}},
		From:             address{Email: p.from, Name: p.fromName},
		Subject:          msg.Subject,
	}
	if msg.Text != "" {
		payload.Content = append(payload.Content, content{Type: "text/plain", Value: msg.Text})
	}
	payload.Content = append(payload.Content, content{Type: "text/html", Value: msg.HTML})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailchannels: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailchannels: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-Api-Key", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailchannels: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailchannels: unexpected status %d: %s", resp.StatusCode, excerpt)
	}

	p.log.InfoContext(ctx, "mail sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
