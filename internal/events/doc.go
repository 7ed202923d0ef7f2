// Package events builds the navigable event lists shown beside the video:
// frames where track counts start to disagree, and RFID reader events aligned
// onto the frame timeline.
//
// Lists are recomputed from the tracks.Store on demand so they reflect every
// correction made during the session.
package events
