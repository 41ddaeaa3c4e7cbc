// Package config loads, validates, and normalizes bricksort configuration.
//
// Configuration lives in a TOML file (default ~/.config/bricksort/config.toml,
// falling back to ./bricksort.toml). All sections have working defaults so a
// missing file is not an error; the Rebrickable API key is the only value
// that ever has to come from the user, and only for set-number loads.
package config
