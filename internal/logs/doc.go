// Package logs reads back the tracktor log file for the logs command.
//
// Console log entries span several lines: a header followed by indented field
// lines. Tail keeps entries whole, so limits and session filters never split
// an entry. Follow mode polls the file until new entries arrive or the wait
// expires.
package logs
