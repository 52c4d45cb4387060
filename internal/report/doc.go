// Package report persists a validation result to disk.
//
// The default format is a plain-text report intended for humans and change
// records. JSON, YAML and TOML renderings carry the same data for tooling.
// Every write replaces the previous report atomically.
package report
