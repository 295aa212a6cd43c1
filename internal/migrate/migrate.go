package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"higalfetch/internal/download"
	"higalfetch/internal/fileutil"
	"higalfetch/internal/logging"
	"higalfetch/internal/services"
)

// Options configures one migration run.
type Options struct {
	// SourceDir is the browser's download directory.
	SourceDir string
	// DestDir receives the moved files. It must already exist; the
	// migrator never creates it.
	DestDir string
	// Pattern selects files in SourceDir, shell-glob style.
	Pattern string
	// PartialSuffix is the in-flight marker extension.
	PartialSuffix string
	// Settle, when set, runs before the snapshot so files are not moved
	// while downloads are still being initiated. A settle failure
	// aborts the run before any move.
	Settle func(ctx context.Context) error
	// CompletionTimeout bounds each file's marker wait; zero means the
	// soft-infinite default.
	CompletionTimeout time.Duration
	// Interval is the marker recheck cadence.
	Interval time.Duration

	Logger *slog.Logger
}

// Failure records one file the run could not move.
type Failure struct {
	Path string
	Err  error
}

// Result reports a migration run: moved destination paths and per-file
// failures. Failures never erase successes already performed.
type Result struct {
	Moved  []string
	Failed []Failure
}

// Err summarizes the failures, or nil when every match was moved.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		names = append(names, filepath.Base(f.Path))
	}
	return fmt.Errorf("%d file(s) not migrated: %s", len(r.Failed), strings.Join(names, ", "))
}

// Run migrates the files matching the pattern. The returned error is
// non-nil only when the run never reached the move phase (bad options
// or a failed settle); per-file outcomes live in the result.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := logging.WithComponent(opts.Logger, "migrate")

	if strings.TrimSpace(opts.SourceDir) == "" || strings.TrimSpace(opts.DestDir) == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "migrate", "options", "source and destination directories are required", nil)
	}
	if strings.TrimSpace(opts.Pattern) == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "migrate", "options", "selection pattern is required", nil)
	}
	if opts.PartialSuffix == "" {
		opts.PartialSuffix = ".part"
	}

	if opts.Settle != nil {
		logger.Info("waiting for pop-up windows to settle")
		if err := opts.Settle(ctx); err != nil {
			// A stuck pop-up fails the whole run rather than risking a
			// move while downloads are still being initiated.
			return Result{}, err
		}
	}

	matches, err := filepath.Glob(filepath.Join(opts.SourceDir, opts.Pattern))
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "migrate", "glob", fmt.Sprintf("bad pattern %q", opts.Pattern), err)
	}

	result := Result{}
	for _, path := range matches {
		if strings.HasSuffix(path, opts.PartialSuffix) {
			// The marker itself matched the pattern; its file is
			// handled through the completion wait.
			continue
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}

		if err := download.WaitForFile(ctx, path, opts.PartialSuffix, opts.CompletionTimeout, opts.Interval); err != nil {
			logger.Warn("file never completed", logging.String("path", path), logging.Error(err))
			result.Failed = append(result.Failed, Failure{Path: path, Err: err})
			continue
		}

		target := filepath.Join(opts.DestDir, filepath.Base(path))
		if err := fileutil.MoveFile(path, target); err != nil {
			logger.Warn("move failed", logging.String("path", path), logging.Error(err))
			result.Failed = append(result.Failed, Failure{Path: path, Err: err})
			continue
		}
		logger.Info("file migrated", logging.String("from", path), logging.String("to", target))
		result.Moved = append(result.Moved, target)
	}

	logger.Info("migration finished",
		logging.Int("moved", len(result.Moved)),
		logging.Int("failed", len(result.Failed)),
	)
	return result, nil
}
