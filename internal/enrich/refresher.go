package enrich

import (
	"context"
	"log/slog"
	"time"

	"bricksort/internal/logging"
	"bricksort/internal/partcache"
)

// ImageClient is the remote surface the refresher needs.
type ImageClient interface {
	Image(ctx context.Context, designID int64) (string, error)
}

// Refresher retries missing images for already-labeled parts.
type Refresher struct {
	client ImageClient
	logger *slog.Logger
}

// NewRefresher constructs a refresher.
func NewRefresher(client ImageClient, logger *slog.Logger) *Refresher {
	return &Refresher{
		client: client,
		logger: logging.NewComponentLogger(logger, "refresh"),
	}
}

// Refresh retries the image fetch for every cached part in ids whose image is
// still missing and whose last attempt was before today. Each attempt stamps
// today's date whether or not it succeeds, so a part is retried at most once
// per calendar day regardless of process restarts. Returns the number of
// fetches performed.
func (r *Refresher) Refresh(ctx context.Context, store *partcache.Store, ids []int64) (int, error) {
	candidates, err := store.StaleImageCandidates(ctx, ids)
	if err != nil {
		return 0, err
	}

	today := time.Now().Format("2006-01-02")
	fetched := 0
	for _, candidate := range candidates {
		if candidate.Updated.Format("2006-01-02") >= today {
			continue
		}

		r.logger.Info("retrying missing image",
			logging.Int64(logging.FieldDesignID, candidate.DesignID))

		image, err := r.client.Image(ctx, candidate.DesignID)
		if err != nil {
			r.logger.Warn("image retry failed",
				logging.Int64(logging.FieldDesignID, candidate.DesignID),
				logging.Error(err))
			image = ""
		}
		if err := store.UpdateImage(ctx, candidate.DesignID, image); err != nil {
			return fetched, err
		}
		fetched++
	}
	return fetched, nil
}
