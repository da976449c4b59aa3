package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKomga(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateKomga() error {
	if c.Komga.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shelfsync/config.toml"
		}
		return fmt.Errorf("komga.url is required. Set KOMGA_URL env var or edit %s (create with 'shelfsync config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Komga.URL)
	if err != nil {
		return fmt.Errorf("komga.url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("komga.url must use http or https, got %q", c.Komga.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("komga.url is missing a host: %q", c.Komga.URL)
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.LibraryRoot != "" && c.Export.OutputDir == "" {
		return errors.New("export.output_dir must be set when export.library_root is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
