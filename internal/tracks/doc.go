// Package tracks owns the per-frame track data of a review session and the
// algorithms that reconcile vision tracks with RFID identity tracks.
//
// The Store is the single source of truth for a loaded dataset. Vision tracks
// are fixed at load time; identity tracks change only through Correct, which
// relabels one vision track over a frame range. MatchFrame and Labels pair the
// two populations of a frame by exact box coordinates using a sorted linear
// merge, the same pairing the overlay drawer shows to reviewers.
//
// Everything here is in-memory and synchronous. Callers serialize edits; the
// session package enforces a single writer across processes.
package tracks
