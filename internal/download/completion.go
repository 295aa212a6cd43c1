package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"higalfetch/internal/poll"
	"higalfetch/internal/services"
)

// MarkerPath returns the partial-download marker path for a file.
func MarkerPath(path, partialSuffix string) string {
	return path + partialSuffix
}

// WaitForFile blocks until the file's partial marker is gone. A path
// with no marker is complete immediately, which covers both "already
// finished" and "never started under that name"; callers are expected
// to pass paths they expect to exist.
func WaitForFile(ctx context.Context, path, partialSuffix string, timeout, interval time.Duration) error {
	marker := MarkerPath(path, partialSuffix)

	present, err := markerPresent(marker)
	if err != nil {
		return err
	}
	if !present {
		return nil
	}

	err = poll.Until(ctx, timeout, interval, func(context.Context) (bool, error) {
		present, err := markerPresent(marker)
		return !present, err
	})
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			return services.Wrap(
				services.ErrTimeout,
				"download",
				"file completion",
				fmt.Sprintf("marker %s still present after %s", marker, timeout),
				err,
			)
		}
		return err
	}
	return nil
}

func markerPresent(marker string) (bool, error) {
	_, err := os.Stat(marker)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat marker %s: %w", marker, err)
}
