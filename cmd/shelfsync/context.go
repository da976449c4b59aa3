package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"shelfsync/internal/config"
	"shelfsync/internal/journal"
	"shelfsync/internal/komga"
	"shelfsync/internal/logging"
	"shelfsync/internal/syncer"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		format := cfg.Logging.Format
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format = strings.TrimSpace(*c.logFormatFlag)
		}
		c.logger, c.loggerErr = logging.New(logging.Options{Level: level, Format: format})
	})
	return c.logger, c.loggerErr
}

// openClient builds an authenticated catalog client. Credentials come from
// config or environment, with an interactive prompt as the last resort.
func (c *commandContext) openClient(ctx context.Context) (*komga.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := komga.New(cfg.Komga.URL)
	if err != nil {
		return nil, err
	}
	username, password, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return client, nil
}

// openJournal returns nil without error when run history is disabled.
func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(cfg.JournalPath())
}

// newSyncer assembles a ready-to-run syncer. The returned cleanup closes
// the journal store and must always be called.
func (c *commandContext) newSyncer(ctx context.Context) (*syncer.Syncer, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	client, err := c.openClient(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, err := c.openJournal()
	if err != nil {
		logger.Warn("run journal unavailable", logging.Error(err))
		store = nil
	}
	s, err := syncer.New(cfg, client, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	cleanup := func() { _ = store.Close() }
	return s, cleanup, nil
}
