// Package config loads, normalizes, and validates shelfsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// KOMGA_URL and KOMGA_PASSWORD. The Config type centralizes every knob the
// CLI needs, so server credentials, export targets, and journal placement are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
