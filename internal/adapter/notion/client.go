package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/inbox-triage/internal/config"
	"github.com/heartmarshall/inbox-triage/internal/domain"
)

const apiVersion = "2022-06-28"

// Client is a thin typed wrapper over the Notion REST API. It exposes the
// four operations the service needs (get, query, create, patch) plus page
// archival; everything else about the API surface is out of scope.
//
// The API offers no transactions or conditional updates, so callers get no
// stronger guarantee than sequential reads and writes.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.NotionConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		log:        logger.With("adapter", "notion"),
	}
}

// GetPage fetches a single page by id.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// QueryDatabase runs a filtered, sorted query against a database and
// returns the matching pages. Pagination beyond the first page is not
// needed by any caller; PageSize caps the result instead.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q QueryRequest) ([]Page, error) {
	var out struct {
		Results []Page `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CreatePage creates a page in the given database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	body := map[string]any{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": props,
	}
	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PatchPage updates the given properties of a page, leaving the rest
// untouched.
func (c *Client) PatchPage(ctx context.Context, pageID string, props Properties) (*Page, error) {
	body := map[string]any{"properties": props}
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArchivePage marks a page archived. Notion has no hard delete; archival
// is the retirement mechanism.
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	body := map[string]any{"archived": true}
	var page Page
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body, &page)
}

// do executes one API call. 404 maps to domain.ErrNotFound; any other
// non-2xx status maps to domain.ErrUpstream with the response excerpt.
// Calls are never retried: a failed store call is reported to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("notion: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.DebugContext(ctx, "notion request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w: %w", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("notion: %s %s: %w", method, path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := readExcerpt(resp.Body, 512)
		c.log.ErrorContext(ctx, "notion request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", excerpt),
		)
		return fmt.Errorf("notion: %s %s: status %d: %s: %w", method, path, resp.StatusCode, excerpt, domain.ErrUpstream)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decode response: %w", err)
	}
	return nil
}

func readExcerpt(r io.Reader, limit int64) string {
	b, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return ""
	}
	return string(b)
}
