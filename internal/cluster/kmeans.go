package cluster

import (
	"math"
	"math/rand"
)

const maxIterations = 100

// fit runs Lloyd's algorithm with per-sample weights. Distances are squared
// euclidean; centroid updates use the weighted mean of assigned points. An
// empty cluster is reseeded from a random data point.
func fit(rows [][]float64, weights []float64, k int, rng *rand.Rand) []int {
	n := len(rows)
	dim := 0
	if n > 0 {
		dim = len(rows[0])
	}

	centroids := make([][]float64, k)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64{}, rows[perm[i]]...)
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	sums := make([][]float64, k)
	weightTotals := make([]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for i, row := range rows {
			best := nearestCentroid(row, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		for j := range sums {
			weightTotals[j] = 0
			for d := range sums[j] {
				sums[j][d] = 0
			}
		}
		for i, row := range rows {
			cluster := assignments[i]
			weight := weights[i]
			for d, value := range row {
				sums[cluster][d] += weight * value
			}
			weightTotals[cluster] += weight
		}

		for j := 0; j < k; j++ {
			if weightTotals[j] > 0 {
				for d := 0; d < dim; d++ {
					centroids[j][d] = sums[j][d] / weightTotals[j]
				}
			} else {
				copy(centroids[j], rows[rng.Intn(n)])
			}
		}
	}

	return assignments
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	minDist := math.MaxFloat64
	for j, center := range centroids {
		if d := squaredDistance(row, center); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// inertia is the weighted within-cluster sum of squared distances to the
// cluster's weighted mean.
func inertia(rows [][]float64, weights []float64, assignments []int, k int) float64 {
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}

	means := make([][]float64, k)
	totals := make([]float64, k)
	for j := range means {
		means[j] = make([]float64, dim)
	}
	for i, row := range rows {
		cluster := assignments[i]
		for d, value := range row {
			means[cluster][d] += weights[i] * value
		}
		totals[cluster] += weights[i]
	}
	for j := range means {
		if totals[j] > 0 {
			for d := range means[j] {
				means[j][d] /= totals[j]
			}
		}
	}

	var sum float64
	for i, row := range rows {
		sum += weights[i] * squaredDistance(row, means[assignments[i]])
	}
	return sum
}

// silhouette computes the mean silhouette coefficient over all samples with
// euclidean distances. Samples in singleton clusters score zero. It is only
// defined for 2 <= k <= n-1; callers guard accordingly.
func silhouette(rows [][]float64, assignments []int, k int) float64 {
	n := len(rows)
	sizes := make([]int, k)
	for _, cluster := range assignments {
		sizes[cluster]++
	}

	var total float64
	for i := range rows {
		own := assignments[i]
		if sizes[own] <= 1 {
			continue
		}

		distSums := make([]float64, k)
		for j := range rows {
			if i == j {
				continue
			}
			distSums[assignments[j]] += math.Sqrt(squaredDistance(rows[i], rows[j]))
		}

		a := distSums[own] / float64(sizes[own]-1)
		b := math.MaxFloat64
		for cluster := 0; cluster < k; cluster++ {
			if cluster == own || sizes[cluster] == 0 {
				continue
			}
			if mean := distSums[cluster] / float64(sizes[cluster]); mean < b {
				b = mean
			}
		}

		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
		}
	}
	return total / float64(n)
}
