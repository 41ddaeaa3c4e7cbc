// Package render assembles the per-cluster HTML artifact.
//
// Clusters render concurrently, one task per cluster, but the finished blocks
// are reassembled in the caller's (quantity-sorted) order before
// concatenation so concurrency never reorders output.
package render
