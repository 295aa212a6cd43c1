package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNavigation marks failures to reach an expected page or view.
	ErrNavigation = errors.New("navigation error")
	// ErrTimeout marks waits that expired before their condition held.
	ErrTimeout = errors.New("timeout")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration discovered at construction time.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures inside the driven browser session.
	ErrExternalTool = errors.New("external tool error")
	// ErrNotFound marks missing page controls or files.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRecoverable reports whether the caller may retry or continue after err.
// Timeouts and missing controls are reported once and left to the caller;
// validation and configuration failures are not retryable.
func IsRecoverable(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return false
	default:
		return true
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
