// Package review turns raw reviewer input into engine corrections.
//
// Everything a reviewer types arrives as text. ParseCorrection validates it
// with go-playground/validator, checks the tag against the dataset's
// registry when enforcement is on, and rejects malformed ranges before they
// reach the correction engine.
package review
