package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bricksort/internal/logging"
	"bricksort/internal/services"
)

// signaturePrefixLen bounds how much of the file an adapter may inspect when
// matching its signature.
const signaturePrefixLen = 64

// RawRow is one identity/quantity pair as parsed from an input, before
// canonicalization.
type RawRow struct {
	Identity string
	Quantity int64
}

// Record is a canonical inventory entry: one row per DesignID.
type Record struct {
	DesignID int64
	Quantity int64
}

// Adapter parses one input format into raw rows.
type Adapter interface {
	// Name identifies the adapter in logs and errors.
	Name() string
	// Extension is the file extension this adapter usually handles.
	Extension() string
	// MatchSignature reports whether the file prefix carries this format's
	// literal signature. It must be cheap and must not touch the filesystem.
	MatchSignature(prefix []byte) bool
	// Parse reads the file into raw rows.
	Parse(path string) ([]RawRow, error)
}

// SetResolver materializes a catalog set number into an inventory file at
// destPath. It returns false when the input is not a set resolution request,
// leaving the registry to treat the path as a plain file.
type SetResolver interface {
	ResolveSet(ctx context.Context, setNumber, destPath string) (bool, error)
}

// Registry dispatches inputs across the supported adapters in fixed priority
// order.
type Registry struct {
	resolver SetResolver
	adapters []Adapter
	logger   *slog.Logger
}

// NewRegistry builds the registry with the standard adapter priority:
// Rebrickable JSON, Rebrickable CSV, BrickStore XML, LDCad PBG. The resolver
// may be nil when set-number loading is not wired (tests, offline use).
func NewRegistry(resolver SetResolver, logger *slog.Logger) *Registry {
	return &Registry{
		resolver: resolver,
		adapters: []Adapter{
			&RebrickableJSON{},
			&RebrickableCSV{},
			&BrickStoreXML{},
			&LDCadPBG{},
		},
		logger: logging.NewComponentLogger(logger, "format"),
	}
}

// Extensions returns the comma-joined list of supported file extensions.
func (r *Registry) Extensions() string {
	exts := make([]string, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		exts = append(exts, adapter.Extension())
	}
	return strings.Join(exts, ",")
}

// Load resolves an optional set number, then dispatches the file at path to
// the first adapter whose signature matches and whose parse succeeds. The
// returned records are canonical: deduplicated, summed, ascending.
func (r *Registry) Load(ctx context.Context, setNumber, path string) ([]Record, string, error) {
	if strings.TrimSpace(setNumber) != "" {
		if r.resolver == nil {
			return nil, "", services.Wrap(services.ErrConfiguration, "format", "load",
				"set resolution requested but no resolver configured", nil)
		}
		resolved, err := r.resolver.ResolveSet(ctx, setNumber, path)
		if err != nil {
			return nil, "", err
		}
		if resolved {
			r.logger.Info("materialized set inventory",
				logging.String("set_number", setNumber),
				logging.String("path", path))
		}
	}

	prefix, err := readPrefix(path)
	if err != nil {
		return nil, "", fmt.Errorf("read input %q: %w", path, err)
	}

	for _, adapter := range r.adapters {
		if !adapter.MatchSignature(prefix) {
			continue
		}
		rows, err := adapter.Parse(path)
		if err != nil {
			r.logger.Warn("adapter matched signature but failed to parse",
				logging.String("adapter", adapter.Name()),
				logging.String("path", path),
				logging.Error(err))
			continue
		}
		records := Normalize(rows)
		r.logger.Info("loaded inventory",
			logging.String("adapter", adapter.Name()),
			logging.Int("raw_rows", len(rows)),
			logging.Int("records", len(records)))
		return records, adapter.Name(), nil
	}

	return nil, "", services.Wrap(services.ErrFormatUnrecognized, "format", "load",
		fmt.Sprintf("no adapter recognizes %q (supported: %s)", path, r.Extensions()), nil)
}

func readPrefix(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	prefix := make([]byte, signaturePrefixLen)
	n, err := file.Read(prefix)
	// A zero-byte file reads as io.EOF; an empty prefix simply matches no
	// signature, which is a format error, not a read error.
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return prefix[:n], nil
}
