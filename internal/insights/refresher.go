package insights

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel model calls during a refresh
const DefaultConcurrency = 4

// Source produces insight data for an industry
type Source interface {
	Generate(ctx context.Context, industry string) (*types.InsightData, error)
}

// Store is the persistence the refresher needs
type Store interface {
	ListStaleInsights(ctx context.Context, now time.Time) ([]db.IndustryInsight, error)
	UpsertIndustryInsight(ctx context.Context, industry string, data types.InsightData, lastUpdated, nextUpdate time.Time) (*db.IndustryInsight, error)
}

// Report summarizes a refresh run
type Report struct {
	Refreshed []string          `json:"refreshed"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// Refresher regenerates insights whose next update is due
type Refresher struct {
	store       Store
	source      Source
	concurrency int
	now         func() time.Time
}

// NewRefresher creates a Refresher. concurrency <= 0 uses DefaultConcurrency.
func NewRefresher(store Store, source Source, concurrency int) *Refresher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Refresher{store: store, source: source, concurrency: concurrency, now: time.Now}
}

// Refresh regenerates every stale insight. A failure for one industry is
// recorded in the report and doesn't stop the others; the returned error is
// reserved for failures listing the stale set or a cancelled context.
func (r *Refresher) Refresh(ctx context.Context) (*Report, error) {
	now := r.now()
	stale, err := r.store.ListStaleInsights(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale insights: %w", err)
	}

	report := &Report{Refreshed: []string{}, Failed: map[string]string{}}
	if len(stale) == 0 {
		log.Printf("[insights] No stale insights")
		return report, nil
	}
	log.Printf("[insights] Refreshing %d stale insight(s)", len(stale))

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, s := range stale {
		industry := s.Industry
		g.Go(func() error {
			err := r.refreshOne(gCtx, industry, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[insights] Failed to refresh %q: %v", industry, err)
				report.Failed[industry] = err.Error()
				return nil
			}
			report.Refreshed = append(report.Refreshed, industry)
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	sort.Strings(report.Refreshed)
	log.Printf("[insights] Refreshed %d, failed %d", len(report.Refreshed), len(report.Failed))
	return report, nil
}

func (r *Refresher) refreshOne(ctx context.Context, industry string, now time.Time) error {
	data, err := r.source.Generate(ctx, industry)
	if err != nil {
		return err
	}
	_, err = r.store.UpsertIndustryInsight(ctx, industry, *data, now, now.Add(types.InsightRefreshInterval))
	return err
}
