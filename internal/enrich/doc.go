// Package enrich fills cache misses from the remote taxonomy service and
// retries missing images.
//
// The fetcher runs one task per unknown part across a bounded worker pool and
// buffers results for a single batch cache write; remote failures degrade to
// root-only labels or a missing image instead of failing the pipeline. The
// refresher runs strictly after the fetch phase and retries only images, at
// most once per part per calendar day.
package enrich
