package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"bricksort/internal/cluster"
	"bricksort/internal/config"
	"bricksort/internal/enrich"
	"bricksort/internal/format"
	"bricksort/internal/hierarchy"
	"bricksort/internal/logging"
	"bricksort/internal/partcache"
	"bricksort/internal/render"
	"bricksort/internal/services/brickarchitect"
	"bricksort/internal/services/rebrickable"
)

// Part is one enriched working-set entry. Labels are the taxonomy path,
// root-most first; they are never empty after enrichment.
type Part struct {
	DesignID int64
	Quantity int64
	Labels   []string
}

// WorkingSet is the canonical, enriched inventory for one invocation.
type WorkingSet struct {
	RunID string
	Parts []Part
}

// IDs returns the working set's DesignIDs in record order (ascending).
func (ws *WorkingSet) IDs() []int64 {
	ids := make([]int64, len(ws.Parts))
	for i, part := range ws.Parts {
		ids[i] = part.DesignID
	}
	return ids
}

// Pipeline wires the load, enrich, cluster, and render phases for one
// configuration.
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *format.Registry
	client   enrich.Client
}

// Option customizes pipeline construction, mainly for tests.
type Option func(*Pipeline)

// WithClient overrides the taxonomy/image client.
func WithClient(client enrich.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.client = client
		}
	}
}

// WithRegistry overrides the format registry.
func WithRegistry(registry *format.Registry) Option {
	return func(p *Pipeline) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// NewPipeline constructs a pipeline with the production clients.
func NewPipeline(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}

	catalog := rebrickable.NewClient(cfg.Rebrickable.APIKey,
		rebrickable.WithBaseURL(cfg.Rebrickable.BaseURL),
		rebrickable.WithTimeout(time.Duration(cfg.Rebrickable.TimeoutSeconds)*time.Second))

	pipeline := &Pipeline{
		cfg:      cfg,
		logger:   logger,
		registry: format.NewRegistry(format.NewCatalogSetResolver(catalog), logger),
		client: brickarchitect.NewClient(
			brickarchitect.WithBaseURL(cfg.BrickArchitect.BaseURL),
			brickarchitect.WithTimeout(time.Duration(cfg.BrickArchitect.TimeoutSeconds)*time.Second)),
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline
}

// Extensions returns the comma-joined list of supported input extensions.
func (p *Pipeline) Extensions() string {
	return p.registry.Extensions()
}

// LoadAndEnrich normalizes the input (a catalog set number or a file path),
// joins it against the cache, fetches missing metadata, and refreshes stale
// images. The cache handle is closed before returning.
func (p *Pipeline) LoadAndEnrich(ctx context.Context, setNumber, filePath string) (*WorkingSet, error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))

	path := filePath
	if setNumber != "" {
		path = filepath.Join(p.cfg.Paths.StagingDir, fmt.Sprintf("set-%s.json", runID))
	}

	records, adapterName, err := p.registry.Load(ctx, setNumber, path)
	if err != nil {
		return nil, err
	}
	logger.Info("inventory normalized",
		logging.String("adapter", adapterName),
		logging.Int("parts", len(records)))

	store, err := partcache.Open(p.cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	ids := make([]int64, len(records))
	for i, record := range records {
		ids[i] = record.DesignID
	}

	cached, err := store.Get(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}

	fetcher := enrich.NewFetcher(p.client, p.cfg.Fetch.Workers, logger)
	result, err := fetcher.FetchMissing(ctx, missing)
	if err != nil {
		return nil, err
	}

	if err := p.storeFetched(ctx, store, result.Entries); err != nil {
		return nil, err
	}

	refresher := enrich.NewRefresher(p.client, logger)
	refreshed, err := refresher.Refresh(ctx, store, ids)
	if err != nil {
		return nil, err
	}
	if refreshed > 0 {
		logger.Info("refreshed missing images", logging.Int("count", refreshed))
	}

	parts := make([]Part, len(records))
	for i, record := range records {
		labels := []string{brickarchitect.RootTerm}
		if entry, ok := cached[record.DesignID]; ok {
			labels = entry.Labels
		} else if fetched, ok := result.Labels[record.DesignID]; ok {
			labels = fetched
		}
		parts[i] = Part{DesignID: record.DesignID, Quantity: record.Quantity, Labels: labels}
	}

	return &WorkingSet{RunID: runID, Parts: parts}, nil
}

// storeFetched writes the fetch batch, dropping entries whose resolved ID is
// already cached: a redirected part may land on a mold the cache knows.
func (p *Pipeline) storeFetched(ctx context.Context, store *partcache.Store, entries []partcache.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	resolvedIDs := make([]int64, len(entries))
	for i, entry := range entries {
		resolvedIDs[i] = entry.DesignID
	}
	existing, err := store.Get(ctx, resolvedIDs)
	if err != nil {
		return err
	}

	fresh := entries[:0]
	for _, entry := range entries {
		if _, ok := existing[entry.DesignID]; ok {
			continue
		}
		fresh = append(fresh, entry)
	}
	return store.PutMany(ctx, fresh)
}

// Cluster encodes the working set's taxonomy hierarchy and groups it into k
// clusters. The seed used is returned for reproducibility.
func (p *Pipeline) Cluster(ws *WorkingSet, k int, seed string) ([]cluster.Summary, uint32, error) {
	records := make([]hierarchy.Record, len(ws.Parts))
	for i, part := range ws.Parts {
		records[i] = hierarchy.Record{
			DesignID: part.DesignID,
			Quantity: part.Quantity,
			Labels:   part.Labels,
		}
	}
	matrix := hierarchy.Encode(records)
	return cluster.Run(matrix, k, seed, p.logger)
}

// Render assembles the HTML artifact for the clustered working set. It opens
// its own cache handle for image lookups and closes it before returning.
func (p *Pipeline) Render(ctx context.Context, clusters []cluster.Summary) (string, error) {
	store, err := partcache.Open(p.cfg)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return render.New(store, p.logger).Clusters(ctx, clusters)
}
