package testsupport

import (
	"path/filepath"
	"testing"

	"tracktor/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDataset points the config at a dataset directory.
func WithDataset(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DatasetDir = dir
	}
}

// WithExportDir sends filesystem exports to a fresh directory under the test base.
func WithExportDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Dir = filepath.Join(b.baseDir, "exports")
	}
}

// WithoutTagEnforcement accepts corrections for tags outside the registry.
func WithoutTagEnforcement() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Review.EnforceKnownTags = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
