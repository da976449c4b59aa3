package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeKomga(); err != nil {
		return err
	}
	if err := c.normalizeExport(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeKomga() error {
	c.Komga.URL = strings.TrimSpace(c.Komga.URL)
	c.Komga.Username = strings.TrimSpace(c.Komga.Username)
	c.Komga.LibraryID = strings.TrimSpace(c.Komga.LibraryID)

	if c.Komga.URL == "" {
		if value, ok := os.LookupEnv("KOMGA_URL"); ok {
			c.Komga.URL = strings.TrimSpace(value)
		}
	}
	if c.Komga.Username == "" {
		if value, ok := os.LookupEnv("KOMGA_USERNAME"); ok {
			c.Komga.Username = strings.TrimSpace(value)
		}
	}
	if c.Komga.Password == "" {
		if value, ok := os.LookupEnv("KOMGA_PASSWORD"); ok {
			c.Komga.Password = value
		}
	}
	if c.Komga.LibraryID == "" {
		if value, ok := os.LookupEnv("KOMGA_LIBRARY_ID"); ok {
			c.Komga.LibraryID = strings.TrimSpace(value)
		}
	}

	c.Komga.URL = strings.TrimRight(c.Komga.URL, "/")
	return nil
}

func (c *Config) normalizeExport() error {
	var err error
	c.Export.OutputDir = strings.TrimSpace(c.Export.OutputDir)
	if c.Export.OutputDir != "" {
		if c.Export.OutputDir, err = expandPath(c.Export.OutputDir); err != nil {
			return fmt.Errorf("export.output_dir: %w", err)
		}
	}
	c.Export.LibraryRoot = strings.TrimSpace(c.Export.LibraryRoot)
	if c.Export.LibraryRoot != "" {
		c.Export.LibraryRoot = strings.TrimRight(c.Export.LibraryRoot, "/")
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Journal.Path = strings.TrimSpace(c.Journal.Path)
	if c.Journal.Path != "" {
		if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
			return fmt.Errorf("journal.path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
