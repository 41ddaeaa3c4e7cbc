package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bricksort/internal/partcache"
	"bricksort/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	cacheDir   string
	stagingDir string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		cacheDir:   filepath.Join(base, "cache"),
		stagingDir: filepath.Join(base, "staging"),
		logDir:     filepath.Join(base, "logs"),
	}

	contents := fmt.Sprintf(`[paths]
cache_dir = %q
staging_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, env.cacheDir, env.stagingDir, env.logDir)
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// seedCache fills the part cache and releases the writer lock so a CLI run
// can take it.
func (env *cliTestEnv) seedCache(t *testing.T, entries []partcache.Entry) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Paths.CacheDir = env.cacheDir
	cfg.Paths.StagingDir = env.stagingDir
	cfg.Paths.LogDir = env.logDir

	store, err := partcache.Open(cfg)
	if err != nil {
		t.Fatalf("partcache.Open: %v", err)
	}
	testsupport.SeedParts(t, store, entries)
	if err := store.Close(); err != nil {
		t.Fatalf("store.Close: %v", err)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q:\n%s", want, output)
	}
}
