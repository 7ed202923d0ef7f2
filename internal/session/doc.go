// Package session owns one reviewer's working state for a dataset.
//
// Open loads the dataset, rebuilds the track store, replays journaled
// corrections made against the same tracking file, and builds the event
// navigator. A writable session holds an advisory lock on the dataset so two
// reviewers cannot interleave corrections; read-only sessions skip the lock
// and refuse to correct.
package session
