// Package dataset reads a recording directory produced by the tracking
// pipeline and writes corrected snapshots of it.
//
// A directory holds the per-frame tracking results, the RFID reader log, the
// static reader zones, the known-tag registry, and the raw video. Missing
// artifacts fail the load; a malformed frame row is kept verbatim and
// surfaces as a frame without data. Snapshots rewrite only the identity
// column of frames changed during review, so every other cell round-trips.
package dataset
