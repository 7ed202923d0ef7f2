// Package journal persists reviewer corrections and snapshot exports in SQLite.
//
// Corrections are keyed by dataset directory and the fingerprint of the
// tracking file they were made against, so a session reopened on the same
// source replays them in order while a changed source starts clean. The
// database uses WAL mode and retries writes that hit SQLITE_BUSY.
package journal
