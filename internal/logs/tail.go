package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const pollInterval = 250 * time.Millisecond

// TailOptions selects what Tail returns.
type TailOptions struct {
	// Offset is the byte position to read from. A negative offset returns the
	// last Limit entries instead.
	Offset int64
	Limit  int
	// Follow waits up to Wait for new entries when none are available.
	Follow bool
	Wait   time.Duration
	// Match keeps only entries whose header line contains it, e.g. a session id.
	Match string
}

// TailResult holds the lines read and the offset to continue from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail reads entries from the log file at path. A missing file yields no
// lines and offset zero.
func Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{Offset: opts.Offset}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return TailResult{Offset: opts.Offset}, fmt.Errorf("log path %q is a directory", path)
	}

	start := opts.Offset
	if start > info.Size() {
		// The file was truncated or replaced.
		start = 0
	}
	wait := max(opts.Wait, 0)

	for deadline := time.Now().Add(wait); ; {
		entries, offset, err := readEntries(path, max(start, 0))
		if err != nil {
			return TailResult{Offset: opts.Offset}, err
		}
		entries = filterEntries(entries, opts.Match)
		if start < 0 {
			entries = lastEntries(entries, opts.Limit)
			start = offset
		}
		result := TailResult{Lines: flatten(entries), Offset: offset}
		if len(result.Lines) > 0 || !opts.Follow || !time.Now().Before(deadline) {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(pollInterval):
		}
		start = offset
	}
}

// readEntries groups the lines after offset into entries. An indented line
// continues the entry above it. A trailing partial line is left for the next
// read.
func readEntries(path string, offset int64) ([][]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	var entries [][]string
	pos := offset
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, offset, fmt.Errorf("read log file: %w", err)
		}
		pos += int64(len(line))
		line = strings.TrimRight(line, "\r\n")
		if len(entries) > 0 && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			last := len(entries) - 1
			entries[last] = append(entries[last], line)
			continue
		}
		entries = append(entries, []string{line})
	}
	return entries, pos, nil
}

func filterEntries(entries [][]string, match string) [][]string {
	if match == "" {
		return entries
	}
	out := entries[:0]
	for _, entry := range entries {
		if strings.Contains(entry[0], match) {
			out = append(out, entry)
		}
	}
	return out
}

func lastEntries(entries [][]string, limit int) [][]string {
	if limit <= 0 {
		return nil
	}
	if len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}

func flatten(entries [][]string) []string {
	var lines []string
	for _, entry := range entries {
		lines = append(lines, entry...)
	}
	return lines
}
