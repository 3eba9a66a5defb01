package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const cacheKey = "calendar"

// Set holds public holidays keyed by civil date ("2006-01-02").
type Set map[string]struct{}

// Contains reports whether the given civil date is a holiday.
func (s Set) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Provider fetches a public-holiday calendar published as a flat JSON
// object of date → holiday name (the holidays-jp format) and caches it
// for a bounded time. The calendar changes at most yearly, so a short
// TTL cache keeps the digest from re-fetching on every run while still
// picking up updates.
type Provider struct {
	url        string
	httpClient *http.Client
	cache      *expirable.LRU[string, Set]
	log        *slog.Logger
}

// NewProvider creates a Provider for the given calendar URL.
func NewProvider(url string, cacheTTL time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      expirable.NewLRU[string, Set](1, nil, cacheTTL),
		log:        logger.With("adapter", "holidays"),
	}
}

// Holidays returns the current holiday set. A fetch failure degrades to an
// empty set rather than failing the caller: a digest without holiday
// awareness beats no digest.
func (p *Provider) Holidays(ctx context.Context) Set {
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached
	}

	set, err := p.fetch(ctx)
	if err != nil {
		p.log.WarnContext(ctx, "holiday calendar unavailable, assuming no holidays",
			slog.String("url", p.url),
			slog.String("error", err.Error()),
		)
		return Set{}
	}

	p.cache.Add(cacheKey, set)
	return set
}

func (p *Provider) fetch(ctx context.Context) (Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("holidays: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holidays: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holidays: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("holidays: read body: %w", err)
	}

	var byDate map[string]string
	if err := json.Unmarshal(body, &byDate); err != nil {
		return nil, fmt.Errorf("holidays: decode json: %w", err)
	}

	set := make(Set, len(byDate))
	for date := range byDate {
		set[date] = struct{}{}
	}

	p.log.DebugContext(ctx, "holiday calendar fetched", slog.Int("holidays", len(set)))
	return set, nil
}
