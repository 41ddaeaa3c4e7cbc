// Package inventory orchestrates the sorting pipeline: normalize the input to
// canonical records, left-join against the part cache, fetch what is missing,
// refresh stale images, and hand the enriched working set to the clusterer
// and renderer.
//
// Nothing is shared between invocations. Each call opens its own cache
// handle, closes it when the phase ends, and threads all parameters
// explicitly; the durable cache is the only persistent resource.
package inventory
