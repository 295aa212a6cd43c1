// Package services defines the shared error taxonomy and context helpers
// used across the fetch pipeline.
//
// Sentinel markers classify failures (navigation, timeout, validation,
// configuration, external tool, not found) so callers can branch with
// errors.Is without parsing messages. Wrap attaches component and
// operation context while preserving the marker and the underlying
// cause.
package services
