// Package preflight validates the environment before a fetch run:
// directory permissions, free disk space, the browser binary, and
// service reachability.
package preflight
