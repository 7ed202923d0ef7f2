package tracks

import (
	"cmp"
	"fmt"
)

// Box is an axis-aligned bounding box in pixel coordinates.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Compare orders boxes by (x1, y1, x2, y2).
func (b Box) Compare(other Box) int {
	if c := cmp.Compare(b.X1, other.X1); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Y1, other.Y1); c != 0 {
		return c
	}
	if c := cmp.Compare(b.X2, other.X2); c != 0 {
		return c
	}
	return cmp.Compare(b.Y2, other.Y2)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

// VisionTrack is a box produced by the vision tracker. VisionID is only
// unique within a single frame.
type VisionTrack struct {
	Box
	VisionID int `json:"vision_id"`
}

// IdentityTrack is a box labelled with an RFID tag.
type IdentityTrack struct {
	Box
	Tag int `json:"tag"`
}

// TrackFrame holds both track populations of one frame.
type TrackFrame struct {
	Vision   []VisionTrack   `json:"vision"`
	Identity []IdentityTrack `json:"identity"`
}

// Empty reports whether the frame carries no tracks at all.
func (f TrackFrame) Empty() bool {
	return len(f.Vision) == 0 && len(f.Identity) == 0
}

// Mismatch reports whether the two populations differ in count.
func (f TrackFrame) Mismatch() bool {
	return len(f.Vision) != len(f.Identity)
}

// VisionByID returns the first vision track carrying id.
func (f TrackFrame) VisionByID(id int) (VisionTrack, bool) {
	for _, track := range f.Vision {
		if track.VisionID == id {
			return track, true
		}
	}
	return VisionTrack{}, false
}

func (f TrackFrame) clone() TrackFrame {
	return TrackFrame{
		Vision:   append([]VisionTrack(nil), f.Vision...),
		Identity: append([]IdentityTrack(nil), f.Identity...),
	}
}

// FrameRange is an inclusive range of frame indices.
type FrameRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether frame lies inside the range.
func (r FrameRange) Contains(frame int) bool {
	return frame >= r.From && frame <= r.To
}

// Len returns the number of frames covered by the range.
func (r FrameRange) Len() int {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

func (r FrameRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.From, r.To)
}

// FrameTime is the sampling timestamp recorded for a frame.
type FrameTime struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"`
}
