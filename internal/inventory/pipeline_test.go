package inventory_test

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"bricksort/internal/inventory"
	"bricksort/internal/logging"
	"bricksort/internal/partcache"
	"bricksort/internal/services/brickarchitect"
	"bricksort/internal/testsupport"
)

type fakeClient struct {
	mu         sync.Mutex
	infos      map[int64]brickarchitect.PartInfo
	infoCalls  int
	imageCalls int
}

func (c *fakeClient) PartInfo(ctx context.Context, designID int64) (brickarchitect.PartInfo, error) {
	c.mu.Lock()
	c.infoCalls++
	c.mu.Unlock()
	if info, ok := c.infos[designID]; ok {
		return info, nil
	}
	return brickarchitect.PartInfo{
		ResolvedID: designID,
		Labels:     []string{brickarchitect.RootTerm, "Bricks"},
	}, nil
}

func (c *fakeClient) Image(ctx context.Context, designID int64) (string, error) {
	c.mu.Lock()
	c.imageCalls++
	c.mu.Unlock()
	return fmt.Sprintf("img-%d", designID), nil
}

const csvInventory = "Part,Color,Quantity\n3001,4,5\n3002,1,2\n3001pr0001,4,3\n"

func TestLoadAndEnrichFromFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	client := &fakeClient{}
	pipeline := inventory.NewPipeline(cfg, logging.NewNop(), inventory.WithClient(client))

	path := testsupport.WriteInventory(t, t.TempDir(), "inventory.csv", csvInventory)
	ws, err := pipeline.LoadAndEnrich(context.Background(), "", path)
	if err != nil {
		t.Fatalf("LoadAndEnrich failed: %v", err)
	}

	if ws.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if !reflect.DeepEqual(ws.IDs(), []int64{3001, 3002}) {
		t.Fatalf("unexpected working set: %#v", ws.Parts)
	}
	if ws.Parts[0].Quantity != 8 {
		t.Fatalf("expected variants summed, got %d", ws.Parts[0].Quantity)
	}
	if !reflect.DeepEqual(ws.Parts[0].Labels, []string{brickarchitect.RootTerm, "Bricks"}) {
		t.Fatalf("unexpected labels: %#v", ws.Parts[0].Labels)
	}

	// Both parts were cache misses and fetched once.
	if client.infoCalls != 2 {
		t.Fatalf("expected 2 taxonomy fetches, got %d", client.infoCalls)
	}

	store := testsupport.MustOpenStore(t, cfg)
	entries, err := store.Get(context.Background(), []int64{3001, 3002})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both parts cached, got %#v", entries)
	}
	if entries[3001].Image != "img-3001" {
		t.Fatalf("unexpected cached image: %q", entries[3001].Image)
	}
}

func TestLoadAndEnrichUsesCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	client := &fakeClient{}
	pipeline := inventory.NewPipeline(cfg, logging.NewNop(), inventory.WithClient(client))

	path := testsupport.WriteInventory(t, t.TempDir(), "inventory.csv", csvInventory)
	if _, err := pipeline.LoadAndEnrich(context.Background(), "", path); err != nil {
		t.Fatalf("first LoadAndEnrich failed: %v", err)
	}
	firstInfoCalls := client.infoCalls

	ws, err := pipeline.LoadAndEnrich(context.Background(), "", path)
	if err != nil {
		t.Fatalf("second LoadAndEnrich failed: %v", err)
	}
	if client.infoCalls != firstInfoCalls {
		t.Fatalf("second run must be served from cache, got %d extra fetches",
			client.infoCalls-firstInfoCalls)
	}
	if !reflect.DeepEqual(ws.Parts[1].Labels, []string{brickarchitect.RootTerm, "Bricks"}) {
		t.Fatalf("unexpected cached labels: %#v", ws.Parts[1].Labels)
	}
}

func TestLoadAndEnrichRedirectedPart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	client := &fakeClient{infos: map[int64]brickarchitect.PartInfo{
		3004: {ResolvedID: 3010, Labels: []string{brickarchitect.RootTerm, "Bricks"}},
	}}
	pipeline := inventory.NewPipeline(cfg, logging.NewNop(), inventory.WithClient(client))

	path := testsupport.WriteInventory(t, t.TempDir(), "inventory.csv",
		"Part,Color,Quantity\n3004,4,5\n")
	ws, err := pipeline.LoadAndEnrich(context.Background(), "", path)
	if err != nil {
		t.Fatalf("LoadAndEnrich failed: %v", err)
	}

	// The working set keeps the queried ID with the redirect's labels.
	if !reflect.DeepEqual(ws.IDs(), []int64{3004}) {
		t.Fatalf("unexpected working set ids: %#v", ws.IDs())
	}
	if !reflect.DeepEqual(ws.Parts[0].Labels, []string{brickarchitect.RootTerm, "Bricks"}) {
		t.Fatalf("unexpected labels: %#v", ws.Parts[0].Labels)
	}

	// The cache row lives under the canonical ID.
	store := testsupport.MustOpenStore(t, cfg)
	entries, err := store.Get(context.Background(), []int64{3004, 3010})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := entries[3004]; ok {
		t.Fatal("queried ID must not be cached when redirected")
	}
	if _, ok := entries[3010]; !ok {
		t.Fatal("resolved ID must be cached")
	}
}

func TestClusterAndRender(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	pipeline := inventory.NewPipeline(cfg, logging.NewNop(), inventory.WithClient(&fakeClient{}))

	// Seed and release the cache so Render can take the writer lock.
	store, err := partcache.Open(cfg)
	if err != nil {
		t.Fatalf("partcache.Open failed: %v", err)
	}
	testsupport.SeedParts(t, store, []partcache.Entry{
		testsupport.Entry(t, 3648, []string{"Lego", "Technic", "Gears"}, "Z2Vhcg==", "2026-08-01"),
		testsupport.Entry(t, 3673, []string{"Lego", "Technic", "Pins"}, "cGlu", "2026-08-01"),
	})
	if err := store.Close(); err != nil {
		t.Fatalf("store.Close failed: %v", err)
	}

	ws := &inventory.WorkingSet{
		RunID: "test",
		Parts: []inventory.Part{
			{DesignID: 3648, Quantity: 4, Labels: []string{"Lego", "Technic", "Gears"}},
			{DesignID: 3673, Quantity: 10, Labels: []string{"Lego", "Technic", "Pins"}},
		},
	}

	clusters, usedSeed, err := pipeline.Cluster(ws, 2, "77")
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if usedSeed != 77 {
		t.Fatalf("expected seed 77, got %d", usedSeed)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %#v", clusters)
	}

	html, err := pipeline.Render(context.Background(), clusters)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(html, "Z2Vhcg==") || !strings.Contains(html, "cGlu") {
		t.Fatalf("expected both images rendered:\n%s", html)
	}
}

func TestExtensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := inventory.NewPipeline(cfg, logging.NewNop())
	if got := pipeline.Extensions(); got != ".json,.csv,.bsx,.pbg" {
		t.Fatalf("unexpected extensions: %s", got)
	}
}
