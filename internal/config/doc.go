// Package config provides configuration loading, merging, and validation
// for penny-sync.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables, optionally seeded from a .env file
//  3. Command-line flags
//  4. JSON config file
//
// The resource catalog (which remote collections are synchronized and how)
// is separate: it is either the built-in [DefaultCatalog] or a TOML file
// loaded with [LoadCatalog].
package config
