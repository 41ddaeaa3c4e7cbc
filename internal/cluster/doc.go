// Package cluster groups canonical part records by taxonomy membership using
// quantity-weighted k-means, so physically sorting a pile can follow a small
// number of human-meaningful bins sized by piece count.
//
// Cluster labels come from a membership heuristic: a taxonomy term names a
// cluster only when every member carries it. Results are ordered by summed
// quantity, smallest clusters first. Fit diagnostics (inertia, silhouette)
// are logged, not returned.
package cluster
