// Package readiness implements the two poll-based gates the pipeline
// checks before acting on the remote page.
//
// ResultPage waits for the navigated location to show the results-view
// marker after a search is submitted; it fails fast so the pipeline
// never scrapes a page that never loaded. WindowsSettled waits for
// transient pop-up windows to close, sleeping a short grace period
// first so pop-ups that have not opened yet cannot produce a false
// "settled" reading.
package readiness
