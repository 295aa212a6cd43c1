package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateBrowser(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		return errors.New("paths.download_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.DownloadDir == c.Paths.DataDir {
		return errors.New("paths.download_dir and paths.data_dir must differ; migration moves files between them")
	}
	return nil
}

func (c *Config) validateService() error {
	parsed, err := url.Parse(c.Service.URL)
	if err != nil {
		return fmt.Errorf("service.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("service.url: unsupported scheme %q", parsed.Scheme)
	}
	return nil
}

func (c *Config) validateBrowser() error {
	if !strings.HasPrefix(c.Browser.PartialSuffix, ".") {
		return fmt.Errorf("browser.partial_suffix %q must start with a dot", c.Browser.PartialSuffix)
	}
	if c.Browser.PartialSuffix == "." {
		return errors.New("browser.partial_suffix must name an extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
