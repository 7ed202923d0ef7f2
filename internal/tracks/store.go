package tracks

import (
	"slices"
	"sort"
)

// Store keeps the TrackFrames of one dataset keyed by zero-based frame index.
type Store struct {
	frames   map[int]*frameEntry
	order    []int
	modified map[int]struct{}
}

type frameEntry struct {
	frame   TrackFrame
	time    float64
	hasTime bool
}

// FrameData is the input used to populate a Store.
type FrameData struct {
	Frame    int
	Vision   []VisionTrack
	Identity []IdentityTrack
	// Time is the sampling timestamp; HasTime is false when the source row
	// carried none.
	Time    float64
	HasTime bool
}

// NewStore builds a Store from decoded frames. A later entry for an already
// seen frame index replaces the earlier one.
func NewStore(frames []FrameData) *Store {
	s := &Store{
		frames:   make(map[int]*frameEntry, len(frames)),
		modified: make(map[int]struct{}),
	}
	for _, fd := range frames {
		if fd.Frame < 0 {
			continue
		}
		if _, exists := s.frames[fd.Frame]; !exists {
			s.order = append(s.order, fd.Frame)
		}
		s.frames[fd.Frame] = &frameEntry{
			frame: TrackFrame{
				Vision:   append([]VisionTrack(nil), fd.Vision...),
				Identity: append([]IdentityTrack(nil), fd.Identity...),
			},
			time:    fd.Time,
			hasTime: fd.HasTime,
		}
	}
	sort.Ints(s.order)
	return s
}

// Len returns the number of frames held.
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns a copy of the frame's tracks. Frames the store does not hold
// yield an empty TrackFrame.
func (s *Store) Get(frame int) TrackFrame {
	f, _ := s.Lookup(frame)
	return f
}

// Lookup is Get with an explicit presence flag.
func (s *Store) Lookup(frame int) (TrackFrame, bool) {
	entry, ok := s.frames[frame]
	if !ok {
		return TrackFrame{}, false
	}
	return entry.frame.clone(), true
}

// SetIdentityTracks replaces the identity tracks of frame. Vision tracks are
// never touched. Frames the store does not hold are ignored.
func (s *Store) SetIdentityTracks(frame int, identity []IdentityTrack) {
	entry, ok := s.frames[frame]
	if !ok {
		return
	}
	entry.frame.Identity = append([]IdentityTrack(nil), identity...)
	s.modified[frame] = struct{}{}
}

// Modified reports whether SetIdentityTracks has been called for frame.
func (s *Store) Modified(frame int) bool {
	_, ok := s.modified[frame]
	return ok
}

// ModifiedFrames lists frames touched by corrections in ascending order.
func (s *Store) ModifiedFrames() []int {
	out := make([]int, 0, len(s.modified))
	for frame := range s.modified {
		out = append(out, frame)
	}
	slices.Sort(out)
	return out
}

// Bounds returns the inclusive frame bounds. ok is false for an empty store.
func (s *Store) Bounds() (FrameRange, bool) {
	if len(s.order) == 0 {
		return FrameRange{}, false
	}
	return FrameRange{From: s.order[0], To: s.order[len(s.order)-1]}, true
}

// Frames returns the held frame indices in ascending order.
func (s *Store) Frames() []int {
	return slices.Clone(s.order)
}

// SampleTimes returns the sampling timestamps in ascending frame order,
// skipping frames whose source row had no usable time.
func (s *Store) SampleTimes() []FrameTime {
	out := make([]FrameTime, 0, len(s.order))
	for _, frame := range s.order {
		entry := s.frames[frame]
		if !entry.hasTime {
			continue
		}
		out = append(out, FrameTime{Frame: frame, Time: entry.time})
	}
	return out
}
