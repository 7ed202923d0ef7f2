package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
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

func (c *Config) validateDataset() error {
	if c.Dataset.FrameBase < 0 {
		return fmt.Errorf("dataset.frame_base must be non-negative (got %d)", c.Dataset.FrameBase)
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Driver {
	case ExportDriverFilesystem:
		return nil
	case ExportDriverS3:
		if c.Export.S3.Bucket == "" {
			return errors.New("export.s3.bucket is required when export.driver is \"s3\" (or set TRACKTOR_S3_BUCKET)")
		}
		if (c.Export.S3.AccessKeyID == "") != (c.Export.S3.SecretAccessKey == "") {
			return errors.New("export.s3.access_key_id and export.s3.secret_access_key must be set together")
		}
		return nil
	default:
		return fmt.Errorf("export.driver: unsupported value %q (expected fs or s3)", c.Export.Driver)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging: rotation limits must not be negative")
	}
	return nil
}
