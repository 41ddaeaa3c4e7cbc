// Package partcache persists part taxonomy labels and images in SQLite so
// remote lookups happen at most once per part.
//
// The cache is keyed by DesignID and is append-mostly: labels are never
// refreshed once written, and only missing images are retried (at most once
// per calendar day, tracked by the Updated column). Duplicate-key inserts are
// a caller bug and surface as a cache integrity error rather than an upsert.
//
// A file lock next to the database enforces the single-writer invariant
// across processes; schema changes bump the version in schema.go and require
// clearing the cache directory.
package partcache
