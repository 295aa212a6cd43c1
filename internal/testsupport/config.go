package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"higalfetch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test and timings fast enough for polling tests. The download and data
// directories are created up front since the browser and operator own
// them in production.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Timing.ResultPageTimeout = 1
	cfg.Timing.ControlTimeout = 1
	cfg.Timing.PollIntervalMS = 5
	cfg.Timing.SettleGrace = 0
	cfg.Timing.SettleTimeout = 1
	cfg.Timing.CompletionTimeout = 1

	for _, dir := range []string{cfg.Paths.DownloadDir, cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithServiceURL overrides the archive form URL on the test config.
func WithServiceURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Service.URL = url
	}
}
