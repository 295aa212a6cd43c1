// Package download starts the per-band file downloads on the result
// page and detects when individual files have finished writing.
//
// Triggering is best-effort: one activation per requested band, and a
// failure on one band never aborts the rest. Outcomes are collected
// into a Report instead of raised on first failure.
//
// Completion detection relies on the partial-file marker convention:
// a download is in flight while its sibling marker path exists. This is
// a heuristic contract with the browser, not an integrity check; the
// marker's disappearance means the writer signaled completion, nothing
// more.
package download
