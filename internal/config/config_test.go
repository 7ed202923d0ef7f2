package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tracktor/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TRACKTOR_DATASET", "")
	t.Setenv("TRACKTOR_S3_BUCKET", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "tracktor")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.JournalPath() != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}
	if cfg.Paths.DatasetDir != "" {
		t.Fatalf("expected no default dataset, got %q", cfg.Paths.DatasetDir)
	}
	if cfg.Dataset.TrackingBase != "tracking_results" || cfg.Dataset.FrameBase != 1 {
		t.Fatalf("unexpected dataset defaults: %+v", cfg.Dataset)
	}
	if cfg.Export.Driver != config.ExportDriverFilesystem {
		t.Fatalf("unexpected export driver: %q", cfg.Export.Driver)
	}
	if !cfg.Review.EnforceKnownTags {
		t.Fatal("expected known tags to be enforced by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Logging.MaxSizeMB != 20 || cfg.Logging.MaxBackups != 5 || cfg.Logging.MaxAgeDays != 0 {
		t.Fatalf("unexpected rotation defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TRACKTOR_DATASET", "")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	payload := `
[paths]
state_dir = "~/state"
dataset_dir = "~/exp/day1"

[dataset]
tracking_base = "tracks.csv"
frame_base = 0

[export]
driver = "S3"
prefix = "/snapshots/"

[export.s3]
bucket = "cage-data"
endpoint = " http://localhost:9000 "
path_style = true

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(cfgPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, "state") {
		t.Fatalf("unexpected state dir %q", cfg.Paths.StateDir)
	}
	if cfg.Paths.DatasetDir != filepath.Join(tempHome, "exp", "day1") {
		t.Fatalf("unexpected dataset dir %q", cfg.Paths.DatasetDir)
	}
	if cfg.Dataset.TrackingBase != "tracks" || cfg.Dataset.FrameBase != 0 {
		t.Fatalf("unexpected dataset section: %+v", cfg.Dataset)
	}
	if cfg.Dataset.ReadsFile != "rfid_reads.csv" {
		t.Fatalf("expected default reads file, got %q", cfg.Dataset.ReadsFile)
	}
	if cfg.Export.Driver != "s3" || cfg.Export.Prefix != "snapshots" {
		t.Fatalf("unexpected export section: %+v", cfg.Export)
	}
	if cfg.Export.S3.Endpoint != "http://localhost:9000" || cfg.Export.S3.Region != "us-east-1" {
		t.Fatalf("unexpected s3 section: %+v", cfg.Export.S3)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
}

func TestDatasetFromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataset := t.TempDir()
	t.Setenv("TRACKTOR_DATASET", dataset)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DatasetDir != dataset {
		t.Fatalf("expected dataset from env, got %q", cfg.Paths.DatasetDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"s3 without bucket", func(c *config.Config) { c.Export.Driver = "s3" }, "export.s3.bucket"},
		{"unknown driver", func(c *config.Config) { c.Export.Driver = "ftp" }, "export.driver"},
		{"half credentials", func(c *config.Config) {
			c.Export.Driver = "s3"
			c.Export.S3.Bucket = "b"
			c.Export.S3.AccessKeyID = "id"
		}, "secret_access_key"},
		{"negative frame base", func(c *config.Config) { c.Dataset.FrameBase = -1 }, "frame_base"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"rotation", func(c *config.Config) { c.Logging.MaxBackups = -1 }, "rotation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(cfgPath); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if parsed.Export.Driver != "fs" || !parsed.Review.EnforceKnownTags {
		t.Fatalf("unexpected sample content: %+v", parsed)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
}
