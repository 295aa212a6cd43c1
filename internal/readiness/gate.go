package readiness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"higalfetch/internal/browser"
	"higalfetch/internal/poll"
	"higalfetch/internal/services"
)

// ResultMarker is the URL substring the DR1 service shows once a search
// has produced its results view.
const ResultMarker = "HiGALSearch"

// ResultPage waits until the session's location contains marker.
// Timeouts are reported with the elapsed bound and the last observed
// location so a stuck search is diagnosable.
func ResultPage(ctx context.Context, sess browser.Session, marker string, timeout, interval time.Duration) error {
	if marker == "" {
		marker = ResultMarker
	}
	var lastURL string
	err := poll.Until(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		url, err := sess.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		lastURL = url
		return strings.Contains(url, marker), nil
	})
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			return services.Wrap(
				services.ErrNavigation,
				"readiness",
				"result page",
				fmt.Sprintf("no %q view within %s, last location %s", marker, timeout, lastURL),
				err,
			)
		}
		return services.Wrap(services.ErrExternalTool, "readiness", "result page", "read current location", err)
	}
	return nil
}

// WindowsSettled sleeps grace, then waits until at most one window is
// open. The grace sleep lets pop-ups actually appear before the count
// is trusted.
func WindowsSettled(ctx context.Context, sess browser.Session, grace, timeout, interval time.Duration) error {
	if grace > 0 {
		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	err := poll.Until(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		count, err := sess.WindowCount(ctx)
		if err != nil {
			return false, err
		}
		return count <= 1, nil
	})
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			return services.Wrap(
				services.ErrTimeout,
				"readiness",
				"window settle",
				fmt.Sprintf("pop-up windows still open after %s", timeout),
				err,
			)
		}
		return services.Wrap(services.ErrExternalTool, "readiness", "window settle", "read window count", err)
	}
	return nil
}
