// Package config loads, normalizes, and validates filetools configuration.
//
// Settings come from a TOML file (default ~/.config/filetools/config.toml,
// falling back to ./filetools.toml), then environment overrides such as
// FILETOOLS_WORKERS, then command-line flags applied by each command. A
// missing file is not an error: every field has a usable default.
package config
