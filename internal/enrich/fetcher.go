package enrich

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bricksort/internal/logging"
	"bricksort/internal/partcache"
	"bricksort/internal/services/brickarchitect"
)

// DefaultWorkers bounds concurrent part lookups. Network latency dominates,
// so the width mostly caps outbound connections.
const DefaultWorkers = 10

// Client is the remote surface the fetcher needs.
type Client interface {
	PartInfo(ctx context.Context, designID int64) (brickarchitect.PartInfo, error)
	Image(ctx context.Context, designID int64) (string, error)
}

// Fetcher performs bounded-concurrency part lookups for cache misses.
type Fetcher struct {
	client  Client
	workers int
	logger  *slog.Logger
}

// NewFetcher constructs a fetcher. workers <= 0 selects DefaultWorkers.
func NewFetcher(client Client, workers int, logger *slog.Logger) *Fetcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Fetcher{
		client:  client,
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "enrich"),
	}
}

// Result carries the outcome of one fetch phase. Entries are keyed by the
// resolved DesignID (where metadata is cached); Labels are keyed by the
// queried DesignID, which stays the working-set join key even when the remote
// service redirected the lookup to a different canonical part.
type Result struct {
	Entries []partcache.Entry
	Labels  map[int64][]string
}

type fetchOutcome struct {
	queriedID  int64
	resolvedID int64
	labels     []string
	image      string
}

// FetchMissing looks up every missing part concurrently and buffers the
// results for one batch cache write. Remote failures never abort the phase:
// a failed taxonomy lookup degrades to the root-only label set and a failed
// image fetch leaves the image empty for the refresher to retry.
func (f *Fetcher) FetchMissing(ctx context.Context, missing []int64) (Result, error) {
	result := Result{Labels: make(map[int64][]string, len(missing))}
	if len(missing) == 0 {
		return result, nil
	}

	ids := append([]int64{}, missing...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	f.logger.Info("fetching missing parts",
		logging.Int("count", len(ids)),
		logging.Int("workers", f.workers))

	var mu sync.Mutex
	outcomes := make([]fetchOutcome, 0, len(ids))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(f.workers)
	for _, id := range ids {
		id := id
		group.Go(func() error {
			outcome := f.fetchOne(ctx, id)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	// Flush order matches query order so batches stay deterministic.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].queriedID < outcomes[j].queriedID })

	today := time.Now()
	seen := make(map[int64]struct{}, len(outcomes))
	for _, outcome := range outcomes {
		result.Labels[outcome.queriedID] = outcome.labels
		if _, dup := seen[outcome.resolvedID]; dup {
			// Two queried parts redirected to the same canonical mold; the
			// cache row already covers both.
			continue
		}
		seen[outcome.resolvedID] = struct{}{}
		result.Entries = append(result.Entries, partcache.Entry{
			DesignID: outcome.resolvedID,
			Labels:   outcome.labels,
			Image:    outcome.image,
			Updated:  today,
		})
	}
	return result, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, queriedID int64) fetchOutcome {
	outcome := fetchOutcome{
		queriedID:  queriedID,
		resolvedID: queriedID,
		labels:     []string{brickarchitect.RootTerm},
	}

	info, err := f.client.PartInfo(ctx, queriedID)
	if err != nil {
		f.logger.Warn("taxonomy fetch failed, using root-only labels",
			logging.Int64(logging.FieldDesignID, queriedID),
			logging.Error(err))
	} else {
		outcome.resolvedID = info.ResolvedID
		outcome.labels = info.Labels
		if outcome.resolvedID != queriedID {
			f.logger.Debug("part redirected to canonical id",
				logging.Int64(logging.FieldDesignID, queriedID),
				logging.Int64("resolved_id", outcome.resolvedID))
		}
	}

	image, err := f.client.Image(ctx, outcome.resolvedID)
	if err != nil {
		f.logger.Warn("image fetch failed, will retry tomorrow",
			logging.Int64(logging.FieldDesignID, outcome.resolvedID),
			logging.Error(err))
	} else {
		outcome.image = image
	}

	return outcome
}
