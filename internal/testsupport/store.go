package testsupport

import (
	"context"
	"testing"
	"time"

	"bricksort/internal/config"
	"bricksort/internal/partcache"
)

// MustOpenStore opens a partcache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *partcache.Store {
	t.Helper()

	store, err := partcache.Open(cfg)
	if err != nil {
		t.Fatalf("partcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedParts inserts the provided entries into the store, failing the test on
// any integrity error.
func SeedParts(t testing.TB, store *partcache.Store, entries []partcache.Entry) {
	t.Helper()

	if err := store.PutMany(context.Background(), entries); err != nil {
		t.Fatalf("store.PutMany: %v", err)
	}
}

// Entry builds a cache entry updated at the given date string (YYYY-MM-DD).
func Entry(t testing.TB, designID int64, labels []string, image, updated string) partcache.Entry {
	t.Helper()

	ts, err := time.Parse("2006-01-02", updated)
	if err != nil {
		t.Fatalf("parse date %q: %v", updated, err)
	}
	return partcache.Entry{
		DesignID: designID,
		Labels:   labels,
		Image:    image,
		Updated:  ts,
	}
}
