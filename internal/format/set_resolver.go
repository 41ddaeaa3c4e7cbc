package format

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bricksort/internal/services/rebrickable"
)

// CatalogSetResolver materializes a Rebrickable set inventory to disk so the
// JSON adapter can decode it like any other file. Resolution and decoding are
// deliberately separate steps: the fetch has the side effect of writing the
// file, and the registry re-dispatches the result through signature matching.
type CatalogSetResolver struct {
	client *rebrickable.Client
}

// NewCatalogSetResolver wraps a Rebrickable client as a SetResolver.
func NewCatalogSetResolver(client *rebrickable.Client) *CatalogSetResolver {
	return &CatalogSetResolver{client: client}
}

// ResolveSet fetches the set's part inventory and writes it to destPath.
// An empty set number is not a resolution request.
func (r *CatalogSetResolver) ResolveSet(ctx context.Context, setNumber, destPath string) (bool, error) {
	if strings.TrimSpace(setNumber) == "" {
		return false, nil
	}

	body, err := r.client.SetParts(ctx, setNumber)
	if err != nil {
		return false, err
	}

	if dir := filepath.Dir(destPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create staging directory: %w", err)
		}
	}
	if err := os.WriteFile(destPath, body, 0o644); err != nil {
		return false, fmt.Errorf("write set inventory: %w", err)
	}
	return true, nil
}
