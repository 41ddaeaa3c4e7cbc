// Package rebrickable is a minimal client for the Rebrickable v3 API,
// fetching the part inventory JSON for a set number. The caller decides where
// the body lands; the set-resolver adapter materializes it into the staging
// directory for the JSON adapter to pick up.
package rebrickable
