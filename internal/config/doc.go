// Package config loads, normalizes, and validates tracktor configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as TRACKTOR_DATASET and
// TRACKTOR_S3_BUCKET. The Config type gathers the dataset layout, snapshot
// export target, review policy, and logging knobs in one place.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
