// Package survey models the Hi-GAL search domain: imaging bands and
// their form identifiers, the two supported coordinate frames, sky
// coordinates, and angular radii with unit handling.
//
// The band-to-identifier table mirrors the DR1 form internals and is
// exposed as an immutable catalog rather than mutable package state.
// Radii without an explicit unit are interpreted as arcminutes; the
// parse result flags the assumption so callers can log a warning.
package survey
