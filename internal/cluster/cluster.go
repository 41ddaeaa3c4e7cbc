package cluster

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"bricksort/internal/hierarchy"
	"bricksort/internal/logging"
	"bricksort/internal/services"
)

// Summary describes one cluster of the working set.
type Summary struct {
	Label    string
	Quantity int64
	Members  []int64
}

// Run clusters the encoded working set into k groups using quantity-weighted
// k-means. The seed string makes a run reproducible; when it is empty or not
// a 32-bit unsigned integer, a fresh random seed is drawn. The seed actually
// used is always returned so any run can be replayed.
func Run(m *hierarchy.Matrix, k int, seed string, logger *slog.Logger) ([]Summary, uint32, error) {
	logger = logging.NewComponentLogger(logger, "cluster")

	n := len(m.Rows)
	if k < 1 || k > n {
		return nil, 0, services.Wrap(services.ErrInvalidParameter, "cluster", "run",
			fmt.Sprintf("k must be between 1 and %d distinct parts, got %d", n, k), nil)
	}

	usedSeed, fromInput := parseSeed(seed)
	if !fromInput && strings.TrimSpace(seed) != "" {
		logger.Warn("seed is not a 32-bit unsigned integer, drawing a random one",
			logging.String("seed", seed))
	}
	rng := rand.New(rand.NewSource(int64(usedSeed)))

	weights := make([]float64, n)
	for i, quantity := range m.Quantities {
		weights[i] = float64(quantity)
	}

	assignments := fit(m.Rows, weights, k, rng)

	wss := inertia(m.Rows, weights, assignments, k)
	attrs := []logging.Attr{
		logging.Int("k", k),
		logging.Uint64("seed", uint64(usedSeed)),
		logging.Float64("inertia", wss),
	}
	if k >= 2 && k < n {
		attrs = append(attrs, logging.Float64("silhouette", silhouette(m.Rows, assignments, k)))
	}
	logger.Info("clustering finished", logging.Args(attrs...)...)

	return summarize(m, assignments, k), usedSeed, nil
}

func parseSeed(seed string) (uint32, bool) {
	trimmed := strings.TrimSpace(seed)
	if trimmed != "" {
		if value, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
			return uint32(value), true
		}
	}
	return rand.Uint32(), false
}

// summarize groups records by assigned cluster and derives labels. A term
// labels a cluster only when its membership count matches the root term's,
// meaning every member carries it; clusters no term qualifies for fall back
// to "Other".
func summarize(m *hierarchy.Matrix, assignments []int, k int) []Summary {
	memberRows := make([][]int, k)
	for i, cluster := range assignments {
		memberRows[cluster] = append(memberRows[cluster], i)
	}

	var summaries []Summary
	for cluster := 0; cluster < k; cluster++ {
		rows := memberRows[cluster]
		if len(rows) == 0 {
			continue
		}

		summary := Summary{Members: make([]int64, 0, len(rows))}
		termCounts := make([]int, len(m.Columns))
		for _, i := range rows {
			summary.Quantity += m.Quantities[i]
			summary.Members = append(summary.Members, m.IDs[i])
			for col, value := range m.Rows[i] {
				if value == 1 {
					termCounts[col]++
				}
			}
		}
		sort.Slice(summary.Members, func(a, b int) bool {
			return summary.Members[a] < summary.Members[b]
		})

		var qualifying []string
		if len(m.Columns) > 0 {
			rootCount := termCounts[0]
			for col := 1; col < len(m.Columns); col++ {
				if termCounts[col] == rootCount {
					qualifying = append(qualifying, m.Columns[col])
				}
			}
		}
		summary.Label = strings.Join(qualifying, ", ")
		if summary.Label == "" {
			summary.Label = "Other"
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Quantity < summaries[j].Quantity
	})
	return summaries
}
