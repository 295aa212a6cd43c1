// Package fetch drives one search request end to end: form submission,
// result readiness, per-band download triggering, and migration of the
// finished files into the data directory. A file lock keeps concurrent
// runs from fighting over the shared download directory.
package fetch
