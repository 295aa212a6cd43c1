package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DownloadDir is the browser profile's download directory, the
	// migration source. The browser is the only writer there.
	DownloadDir string `toml:"download_dir"`
	// DataDir receives migrated FITS files.
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Service contains configuration for the DR1 web form.
type Service struct {
	URL string `toml:"url"`
}

// Browser contains browser session configuration.
type Browser struct {
	Headless bool   `toml:"headless"`
	Binary   string `toml:"binary"`
	// PartialSuffix is the marker extension the browser appends while a
	// download is in flight.
	PartialSuffix string `toml:"partial_suffix"`
}

// Timing contains poll intervals and wait ceilings, in seconds except
// where noted. Zero means the soft-infinite default for the two waits
// that are effectively unbounded in interactive use.
type Timing struct {
	ResultPageTimeout int `toml:"result_page_timeout"`
	ControlTimeout    int `toml:"control_timeout"`
	PollIntervalMS    int `toml:"poll_interval_ms"`
	SettleGrace       int `toml:"settle_grace"`
	SettleTimeout     int `toml:"settle_timeout"`
	CompletionTimeout int `toml:"completion_timeout"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for higalfetch.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Service Service `toml:"service"`
	Browser Browser `toml:"browser"`
	Timing  Timing  `toml:"timing"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/higalfetch/config.toml")
}

// Load locates, parses, and validates a configuration file. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("higalfetch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories higalfetch owns. The
// browser's download directory is deliberately left alone; it belongs
// to the browser profile.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ResultPageTimeout returns the bound on waiting for the results view.
func (c *Config) ResultPageTimeout() time.Duration {
	return time.Duration(c.Timing.ResultPageTimeout) * time.Second
}

// ControlTimeout returns the bound on waiting for download controls.
func (c *Config) ControlTimeout() time.Duration {
	return time.Duration(c.Timing.ControlTimeout) * time.Second
}

// PollInterval returns the predicate recheck cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Timing.PollIntervalMS) * time.Millisecond
}

// SettleGrace returns the sleep before window-settle polling begins.
func (c *Config) SettleGrace() time.Duration {
	return time.Duration(c.Timing.SettleGrace) * time.Second
}

// SettleTimeout returns the window-settle ceiling; zero means the
// soft-infinite default.
func (c *Config) SettleTimeout() time.Duration {
	return time.Duration(c.Timing.SettleTimeout) * time.Second
}

// CompletionTimeout returns the per-file completion ceiling; zero means
// the soft-infinite default.
func (c *Config) CompletionTimeout() time.Duration {
	return time.Duration(c.Timing.CompletionTimeout) * time.Second
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absolute, nil
}
