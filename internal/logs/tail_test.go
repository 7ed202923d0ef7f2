package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tracktor/internal/logs"
)

const consoleLog = `2026-01-02 10:00:00 INFO [session] Session aaaa1111 · ds – review session opened
    - Frames: 12
2026-01-02 10:00:01 INFO [session] Session bbbb2222 · ds – review session opened
    - Frames: 12
2026-01-02 10:00:02 INFO [session] Session aaaa1111 · ds – correction applied
    - Vision ID: 2
    - Tag: 99
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracktor.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastEntriesKeepsFields(t *testing.T) {
	path := writeLog(t, consoleLog)

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	want := []string{
		"2026-01-02 10:00:02 INFO [session] Session aaaa1111 · ds – correction applied",
		"    - Vision ID: 2",
		"    - Tag: 99",
	}
	if !reflect.DeepEqual(result.Lines, want) {
		t.Fatalf("unexpected lines %#v", result.Lines)
	}
	if result.Offset != int64(len(consoleLog)) {
		t.Fatalf("expected offset at end of file, got %d", result.Offset)
	}
}

func TestTailMatchFiltersEntries(t *testing.T) {
	path := writeLog(t, consoleLog)

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 0, Match: "bbbb2222"})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[1] != "    - Frames: 12" {
		t.Fatalf("unexpected lines %#v", result.Lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	result, err := logs.Tail(context.Background(), filepath.Join(t.TempDir(), "none.log"), logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestTailLeavesPartialLine(t *testing.T) {
	path := writeLog(t, "first\nsecond")

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 0})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Offset != int64(len("first\n")) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestTailFollowWaits(t *testing.T) {
	path := writeLog(t, "start\n")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	initial, err := logs.Tail(ctx, path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial tail: %v", err)
	}

	done := make(chan logs.TailResult, 1)
	go func(offset int64) {
		res, err := logs.Tail(ctx, path, logs.TailOptions{Offset: offset, Follow: true, Wait: 5 * time.Second})
		if err != nil {
			t.Errorf("follow tail error: %v", err)
		}
		done <- res
	}(initial.Offset)

	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	select {
	case res := <-done:
		if len(res.Lines) != 1 || res.Lines[0] != "later" {
			t.Fatalf("unexpected follow lines %#v", res.Lines)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("tail follow did not return")
	}
}

func TestTailFollowExpires(t *testing.T) {
	path := writeLog(t, "only\n")

	start := time.Now()
	res, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: int64(len("only\n")), Follow: true, Wait: 300 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(res.Lines) != 0 {
		t.Fatalf("expected no lines, got %#v", res.Lines)
	}
	if time.Since(start) < 300*time.Millisecond {
		t.Fatal("expected Tail to wait for the deadline")
	}
}
