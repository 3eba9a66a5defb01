package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/inbox-triage/internal/adapter/holidays"
	"github.com/heartmarshall/inbox-triage/internal/domain"
)

type taskStore interface {
	ListActionable(ctx context.Context, today string, pageSize int) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.Status, pageSize int) ([]domain.Task, error)
}

type holidaySource interface {
	Holidays(ctx context.Context) holidays.Set
}

// Service computes the periodic task digest: which lists to include on the
// invocation day and in what order.
type Service struct {
	tasks     taskStore
	holidays  holidaySource
	baseURL   string
	sharedKey string
	pageSize  int
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a digest service. baseURL is the external origin used
// in the per-task confirm links; sharedKey, when non-empty, is appended to
// those links so they pass the request guard.
func NewService(
	log *slog.Logger,
	tasks taskStore,
	holidays holidaySource,
	baseURL string,
	sharedKey string,
	pageSize int,
) *Service {
	return &Service{
		tasks:     tasks,
		holidays:  holidays,
		baseURL:   baseURL,
		sharedKey: sharedKey,
		pageSize:  pageSize,
		log:       log.With("service", "digest"),
		now:       time.Now,
	}
}

// Digest is one computed summary, ready for rendering.
type Digest struct {
	GeneratedAt time.Time
	Today       string

	// DoItems holds Do tasks (plus Waiting tasks whose reminder is due or
	// unset), ordered by ascending since-Do with unset timestamps last.
	DoItems []domain.Task

	// SomedayItems is populated only on the first business day of the
	// week, when IncludeSomeday is true.
	SomedayItems   []domain.Task
	IncludeSomeday bool
}

// Build computes the digest for the current invocation day. The Someday
// list joins the digest exactly once a week, on the first business day.
func (s *Service) Build(ctx context.Context) (*Digest, error) {
	now := s.now()
	today := civilDate(now)

	// A calendar fetch failure degrades to an empty set inside the
	// provider, so holiday awareness can never fail the digest.
	hol := s.holidays.Holidays(ctx)
	includeSomeday := isFirstBusinessDayOfWeek(now, hol)

	var doItems, somedayItems []domain.Task

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.tasks.ListActionable(gctx, today, s.pageSize)
		if err != nil {
			return fmt.Errorf("query actionable tasks: %w", err)
		}
		doItems = items
		return nil
	})
	if includeSomeday {
		g.Go(func() error {
			items, err := s.tasks.ListByStatus(gctx, domain.StatusSomeday, s.pageSize)
			if err != nil {
				return fmt.Errorf("query someday tasks: %w", err)
			}
			somedayItems = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortBySince(doItems, func(t domain.Task) *time.Time { return t.SinceDoAt })
	sortBySince(somedayItems, func(t domain.Task) *time.Time { return t.SinceSomedayAt })

	s.log.InfoContext(ctx, "digest built",
		slog.String("today", today),
		slog.Int("do_items", len(doItems)),
		slog.Int("someday_items", len(somedayItems)),
		slog.Bool("include_someday", includeSomeday),
	)

	return &Digest{
		GeneratedAt:    now,
		Today:          today,
		DoItems:        doItems,
		SomedayItems:   somedayItems,
		IncludeSomeday: includeSomeday,
	}, nil
}

// sortBySince orders tasks by ascending since-timestamp. Unset timestamps
// sort after every set one, and unset-vs-unset keeps its relative order.
func sortBySince(tasks []domain.Task, since func(domain.Task) *time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := since(tasks[i]), since(tasks[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
