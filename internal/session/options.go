package session

import (
	"log/slog"

	"tracktor/internal/artifact"
)

type options struct {
	readOnly  bool
	logger    *slog.Logger
	artifacts artifact.Store
}

// Option customizes Open.
type Option func(*options)

// ReadOnly opens the session without taking the dataset lock. Corrections and
// journal resets are refused.
func ReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// WithLogger sets the logger used by the session and the dataset loader.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithArtifactStore replaces the export store selected by config.
func WithArtifactStore(store artifact.Store) Option {
	return func(o *options) { o.artifacts = store }
}
