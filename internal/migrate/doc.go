// Package migrate relocates finished downloads from the browser's
// download directory to the data directory.
//
// A run is a one-shot snapshot: the source directory is globbed once,
// each match is held until its partial marker disappears, and the file
// is then moved with overwrite semantics. Files appearing after the
// snapshot are left for the next invocation. Per-file failures are
// collected alongside the successes rather than aborting the batch.
package migrate
