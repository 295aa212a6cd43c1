// Package config loads and validates higalfetch configuration.
//
// Configuration lives in a TOML file resolved from an explicit --config
// flag, ~/.config/higalfetch/config.toml, or ./higalfetch.toml in that
// order. Load applies defaults, expands ~ in path fields, and validates
// the result; a missing file yields the defaults. config init writes
// the embedded sample file for editing.
package config
