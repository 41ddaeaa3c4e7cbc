package main

import (
	"testing"

	"bricksort/internal/partcache"
	"bricksort/internal/testsupport"
)

func TestCacheStats(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCache(t, []partcache.Entry{
		testsupport.Entry(t, 3001, []string{"Lego", "Bricks"}, "aW1n", "2026-08-01"),
		testsupport.Entry(t, 3002, []string{"Lego", "Bricks"}, "", "2026-08-01"),
	})

	out, err := runCLI(t, "--config", env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Cached parts")
	requireContains(t, out, "2")
	requireContains(t, out, "Missing images")
	requireContains(t, out, "1")
}

func TestCacheStatsEmptyCache(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "--config", env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "0")
}
