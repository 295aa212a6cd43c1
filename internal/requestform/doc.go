// Package requestform drives the two layers of the Hi-GAL DR1 web
// request form through a browser session.
//
// The element identifiers here mirror the deployed form: frame
// checkboxes, the free-text coordinate input, the radius input, and the
// submit control. They are the UI-shape-specific part of the pipeline;
// the completion and migration logic above this package does not know
// about them.
package requestform
