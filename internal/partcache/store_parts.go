package partcache

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"bricksort/internal/services"
)

const labelSeparator = ","

// maxIDsPerQuery bounds the placeholders in one IN (...) clause, keeping
// queries under SQLite's bound-variable limit for large collections.
const maxIDsPerQuery = 500

// Get performs a left-join style lookup: entries exist in the result only for
// IDs the cache knows about. Missing IDs are not an error.
func (s *Store) Get(ctx context.Context, ids []int64) (map[int64]Entry, error) {
	entries := make(map[int64]Entry, len(ids))
	for _, chunk := range sortedChunks(ids) {
		query := fmt.Sprintf(
			"SELECT design_id, labels, image, updated FROM parts WHERE design_id IN (%s)",
			placeholders(len(chunk)))

		rows, err := s.db.QueryContext(ctx, query, idArgs(chunk)...)
		if err != nil {
			return nil, fmt.Errorf("query parts: %w", err)
		}
		for rows.Next() {
			entry, err := scanEntry(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			entries[entry.DesignID] = entry
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate parts: %w", err)
		}
		rows.Close()
	}
	return entries, nil
}

// PutMany inserts new entries in one transaction. A DesignID that already
// exists in the cache is a caller bug and aborts the batch with a cache
// integrity error.
func (s *Store) PutMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin put tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO parts (design_id, labels, image, updated) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, entry := range entries {
			if len(entry.Labels) == 0 {
				return services.Wrap(services.ErrCacheIntegrity, "partcache", "put",
					fmt.Sprintf("part %d has no labels", entry.DesignID), nil)
			}
			labels := strings.Join(entry.Labels, labelSeparator)
			updated := entry.Updated
			if updated.IsZero() {
				updated = time.Now()
			}
			_, err := stmt.ExecContext(ctx, entry.DesignID, labels,
				nullableImage(entry.Image), updated.Format(dateLayout))
			if err != nil {
				if isUniqueViolation(err) {
					return services.Wrap(services.ErrCacheIntegrity, "partcache", "put",
						fmt.Sprintf("part %d already cached", entry.DesignID), err)
				}
				return fmt.Errorf("insert part %d: %w", entry.DesignID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit put tx: %w", err)
		}
		return nil
	})
}

// StaleImageCandidates returns the subset of ids whose cached row has labels
// but no image, along with the date of the last fetch attempt.
func (s *Store) StaleImageCandidates(ctx context.Context, ids []int64) ([]Candidate, error) {
	// Chunks are ascending and disjoint, so per-chunk ordering concatenates
	// into a globally ascending result.
	var candidates []Candidate
	for _, chunk := range sortedChunks(ids) {
		chunkCandidates, err := s.staleImageChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, chunkCandidates...)
	}
	return candidates, nil
}

func (s *Store) staleImageChunk(ctx context.Context, chunk []int64) ([]Candidate, error) {
	query := fmt.Sprintf(
		"SELECT design_id, updated FROM parts WHERE design_id IN (%s) AND image IS NULL ORDER BY design_id ASC",
		placeholders(len(chunk)))

	rows, err := s.db.QueryContext(ctx, query, idArgs(chunk)...)
	if err != nil {
		return nil, fmt.Errorf("query stale images: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var id int64
		var updated string
		if err := rows.Scan(&id, &updated); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		when, err := time.Parse(dateLayout, updated)
		if err != nil {
			return nil, fmt.Errorf("parse updated date %q: %w", updated, err)
		}
		candidates = append(candidates, Candidate{DesignID: id, Updated: when})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

// UpdateImage records an image fetch attempt: the image (possibly still
// empty on failure) and today's date, which throttles the next retry to
// tomorrow at the earliest.
func (s *Store) UpdateImage(ctx context.Context, designID int64, image string) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			"UPDATE parts SET image = ?, updated = ? WHERE design_id = ?",
			nullableImage(image), time.Now().Format(dateLayout), designID)
		if err != nil {
			return fmt.Errorf("update image for part %d: %w", designID, err)
		}
		return nil
	})
}

// ImagesForParts returns the cached images for the given parts in ascending
// DesignID order, skipping parts without an image.
func (s *Store) ImagesForParts(ctx context.Context, ids []int64) ([]string, error) {
	var images []string
	for _, chunk := range sortedChunks(ids) {
		chunkImages, err := s.imagesChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		images = append(images, chunkImages...)
	}
	return images, nil
}

func (s *Store) imagesChunk(ctx context.Context, chunk []int64) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT image FROM parts WHERE design_id IN (%s) AND image IS NOT NULL ORDER BY design_id ASC",
		placeholders(len(chunk)))

	rows, err := s.db.QueryContext(ctx, query, idArgs(chunk)...)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return images, nil
}

// Stats summarizes cache contents for operator visibility.
type Stats struct {
	Parts         int64
	MissingImages int64
}

// Stat counts all cached parts and how many still lack an image.
func (s *Store) Stat(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM parts").Scan(&stats.Parts); err != nil {
		return Stats{}, fmt.Errorf("count parts: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM parts WHERE image IS NULL").Scan(&stats.MissingImages); err != nil {
		return Stats{}, fmt.Errorf("count missing images: %w", err)
	}
	return stats, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var labels string
	var image sql.NullString
	var updated string
	if err := rows.Scan(&entry.DesignID, &labels, &image, &updated); err != nil {
		return Entry{}, fmt.Errorf("scan part: %w", err)
	}
	entry.Labels = strings.Split(labels, labelSeparator)
	if image.Valid {
		entry.Image = image.String
	}
	when, err := time.Parse(dateLayout, updated)
	if err != nil {
		return Entry{}, fmt.Errorf("parse updated date %q: %w", updated, err)
	}
	entry.Updated = when
	return entry, nil
}

func nullableImage(image string) any {
	if image == "" {
		return nil
	}
	return image
}

// sortedChunks copies ids, sorts them ascending, and splits them into slices
// of at most maxIDsPerQuery entries.
func sortedChunks(ids []int64) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	chunks := make([][]int64, 0, (len(sorted)+maxIDsPerQuery-1)/maxIDsPerQuery)
	for len(sorted) > maxIDsPerQuery {
		chunks = append(chunks, sorted[:maxIDsPerQuery])
		sorted = sorted[maxIDsPerQuery:]
	}
	return append(chunks, sorted)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
