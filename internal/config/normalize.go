package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Service.URL = strings.TrimSpace(c.Service.URL)
	if c.Service.URL == "" {
		c.Service.URL = defaultServiceURL
	}
	c.Browser.Binary = strings.TrimSpace(c.Browser.Binary)
	c.Browser.PartialSuffix = strings.TrimSpace(c.Browser.PartialSuffix)
	if c.Browser.PartialSuffix == "" {
		c.Browser.PartialSuffix = defaultPartialSuffix
	}
	c.normalizeTiming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTiming() {
	if c.Timing.ResultPageTimeout <= 0 {
		c.Timing.ResultPageTimeout = defaultResultPageTimeout
	}
	if c.Timing.ControlTimeout <= 0 {
		c.Timing.ControlTimeout = defaultControlTimeout
	}
	if c.Timing.PollIntervalMS <= 0 {
		c.Timing.PollIntervalMS = defaultPollIntervalMS
	}
	if c.Timing.SettleGrace < 0 {
		c.Timing.SettleGrace = defaultSettleGrace
	}
	if c.Timing.SettleTimeout < 0 {
		c.Timing.SettleTimeout = 0
	}
	if c.Timing.CompletionTimeout < 0 {
		c.Timing.CompletionTimeout = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
