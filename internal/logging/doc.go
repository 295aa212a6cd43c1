// Package logging wires log/slog for the fetch pipeline.
//
// Two handler formats are supported: a human-oriented console format
// (colorized when the output is a terminal) and line-delimited JSON.
// Component loggers are derived with the shared attr helpers so field
// names stay consistent across packages.
package logging
