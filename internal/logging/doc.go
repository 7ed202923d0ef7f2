// Package logging assembles structured slog loggers and formatting helpers used
// across tracktor.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so session code can tag log lines with
// the review session and dataset they belong to. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
