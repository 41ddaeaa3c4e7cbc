package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteInventory writes an inventory file with the given contents and returns
// its path. The extension should match one of the registered adapters.
func WriteInventory(t testing.TB, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
