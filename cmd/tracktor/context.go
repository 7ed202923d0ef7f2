package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tracktor/internal/config"
	"tracktor/internal/logging"
	"tracktor/internal/session"
)

type commandContext struct {
	configFlag  *string
	datasetFlag *string
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, datasetFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		datasetFlag: datasetFlag,
		jsonFlag:    jsonFlag,
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

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) datasetDir() (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	dir := ""
	if c.datasetFlag != nil {
		dir = strings.TrimSpace(*c.datasetFlag)
	}
	if dir != "" {
		return config.ExpandPath(dir)
	}
	if cfg.Paths.DatasetDir != "" {
		return cfg.Paths.DatasetDir, nil
	}
	return "", errors.New("no dataset selected: pass --dataset or set paths.dataset_dir (or TRACKTOR_DATASET)")
}

// logger writes to the log file only so command output stays clean.
func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// withSession opens a session on the selected dataset for the duration of fn.
func (c *commandContext) withSession(cmd *cobra.Command, readOnly bool, fn func(context.Context, *session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	dir, err := c.datasetDir()
	if err != nil {
		return err
	}
	opts := []session.Option{session.WithLogger(c.logger())}
	if readOnly {
		opts = append(opts, session.ReadOnly())
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := session.Open(ctx, cfg, dir, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
