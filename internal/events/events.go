package events

import (
	"fmt"
	"math"
	"sort"

	"tracktor/internal/tracks"
)

// Event is one entry of a navigable list.
type Event struct {
	Label string `json:"label"`
	Frame int    `json:"frame"`
}

// MissingData returns one event per run of frames whose vision and identity
// track counts differ, placed at the first frame of the run. Frames are
// scanned from the lowest to the highest held index; the first frame has a
// matching predecessor and frames absent from the store count as matching.
func MissingData(store *tracks.Store) []Event {
	bounds, ok := store.Bounds()
	if !ok {
		return nil
	}
	var out []Event
	prev := false
	for frame := bounds.From; frame <= bounds.To; frame++ {
		mismatch := store.Get(frame).Mismatch()
		if mismatch && !prev {
			out = append(out, Event{Label: fmt.Sprintf("Frame %d", frame), Frame: frame})
		}
		prev = mismatch
	}
	return out
}

// Read is a tag detection reported by an RFID reader.
type Read struct {
	Timestamp float64 `json:"timestamp"`
	Reader    int     `json:"reader"`
	Tag       int     `json:"tag"`
}

// AlignedRead is a Read placed on the frame timeline.
type AlignedRead struct {
	Read
	Frame int `json:"frame"`
}

// Label formats the read for the navigation list.
func (a AlignedRead) Label() string {
	return fmt.Sprintf("RFID Reader: %d | RFID: %d | Frame: %d", a.Reader, a.Tag, a.Frame)
}

// Align places every read on the frame whose sampling time is closest to the
// read timestamp. Ties go to the lowest frame index. Reads are neither merged
// nor dropped; with an empty timeline nothing can be aligned and nil is
// returned.
func Align(reads []Read, timeline []tracks.FrameTime) []AlignedRead {
	if len(timeline) == 0 {
		return nil
	}
	sorted := append([]tracks.FrameTime(nil), timeline...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Time != sorted[j].Time {
			return sorted[i].Time < sorted[j].Time
		}
		return sorted[i].Frame < sorted[j].Frame
	})
	out := make([]AlignedRead, 0, len(reads))
	for _, r := range reads {
		out = append(out, AlignedRead{Read: r, Frame: closestFrame(r.Timestamp, sorted)})
	}
	return out
}

// closestFrame searches a timeline sorted by time then frame. Among equal
// times the first entry holds the lowest frame.
func closestFrame(ts float64, sorted []tracks.FrameTime) int {
	firstAt := func(t float64) int {
		return sort.Search(len(sorted), func(i int) bool { return sorted[i].Time >= t })
	}
	after := firstAt(ts)
	if after == 0 {
		return sorted[0].Frame
	}
	before := sorted[firstAt(sorted[after-1].Time)]
	if after == len(sorted) {
		return before.Frame
	}
	next := sorted[after]
	dBefore, dNext := math.Abs(ts-before.Time), math.Abs(next.Time-ts)
	switch {
	case dBefore < dNext:
		return before.Frame
	case dNext < dBefore:
		return next.Frame
	}
	return min(before.Frame, next.Frame)
}

// ReadEvents converts aligned reads into navigation events, keeping order.
func ReadEvents(aligned []AlignedRead) []Event {
	out := make([]Event, 0, len(aligned))
	for _, a := range aligned {
		out = append(out, Event{Label: a.Label(), Frame: a.Frame})
	}
	return out
}
