package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeLogging()
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
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatasetDir) == "" {
		if value, ok := os.LookupEnv("TRACKTOR_DATASET"); ok {
			c.Paths.DatasetDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DatasetDir, err = expandPath(strings.TrimSpace(c.Paths.DatasetDir)); err != nil {
		return fmt.Errorf("paths.dataset_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() {
	c.Dataset.TrackingBase = strings.TrimSuffix(strings.TrimSpace(c.Dataset.TrackingBase), ".csv")
	if c.Dataset.TrackingBase == "" {
		c.Dataset.TrackingBase = defaultTrackingBase
	}
	c.Dataset.ReadsFile = strings.TrimSpace(c.Dataset.ReadsFile)
	if c.Dataset.ReadsFile == "" {
		c.Dataset.ReadsFile = defaultReadsFile
	}
	c.Dataset.LocationsFile = strings.TrimSpace(c.Dataset.LocationsFile)
	if c.Dataset.LocationsFile == "" {
		c.Dataset.LocationsFile = defaultLocationsFile
	}
	c.Dataset.TagsFile = strings.TrimSpace(c.Dataset.TagsFile)
	if c.Dataset.TagsFile == "" {
		c.Dataset.TagsFile = defaultTagsFile
	}
	c.Dataset.VideoFile = strings.TrimSpace(c.Dataset.VideoFile)
	if c.Dataset.VideoFile == "" {
		c.Dataset.VideoFile = defaultVideoFile
	}
}

func (c *Config) normalizeExport() error {
	c.Export.Driver = strings.ToLower(strings.TrimSpace(c.Export.Driver))
	if c.Export.Driver == "" {
		c.Export.Driver = defaultExportDriver
	}
	c.Export.Prefix = strings.Trim(strings.TrimSpace(c.Export.Prefix), "/")
	if dir := strings.TrimSpace(c.Export.Dir); dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("export.dir: %w", err)
		}
		c.Export.Dir = expanded
	}

	s3 := &c.Export.S3
	s3.Bucket = strings.TrimSpace(s3.Bucket)
	if s3.Bucket == "" {
		if value, ok := os.LookupEnv("TRACKTOR_S3_BUCKET"); ok {
			s3.Bucket = strings.TrimSpace(value)
		}
	}
	s3.Region = strings.TrimSpace(s3.Region)
	if s3.Region == "" {
		s3.Region = defaultS3Region
	}
	s3.Endpoint = strings.TrimSpace(s3.Endpoint)
	if s3.Endpoint == "" {
		if value, ok := os.LookupEnv("TRACKTOR_S3_ENDPOINT"); ok {
			s3.Endpoint = strings.TrimSpace(value)
		}
	}
	s3.AccessKeyID = strings.TrimSpace(s3.AccessKeyID)
	s3.SecretAccessKey = strings.TrimSpace(s3.SecretAccessKey)
	s3.SessionToken = strings.TrimSpace(s3.SessionToken)
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
