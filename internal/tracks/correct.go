package tracks

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports a correction range that violates the caller contract.
var ErrInvalidRange = errors.New("invalid frame range")

// Correction relabels one vision track over a frame range. A nil Range
// covers every frame held by the store.
type Correction struct {
	VisionID int         `json:"vision_id"`
	Tag      int         `json:"tag"`
	Range    *FrameRange `json:"range,omitempty"`
}

// CorrectionResult summarizes what Correct changed.
type CorrectionResult struct {
	Range       FrameRange `json:"range"`
	Frames      int        `json:"frames"`
	Overwritten int        `json:"overwritten"`
	Appended    int        `json:"appended"`
}

// Changed reports whether any frame was written.
func (r CorrectionResult) Changed() bool {
	return r.Frames > 0
}

// ResolveRange returns the explicit range of c, or the store bounds when the
// range is omitted. ok is false when the range is omitted and the store holds
// no frames.
func ResolveRange(s *Store, c Correction) (FrameRange, bool, error) {
	if c.Range == nil {
		bounds, ok := s.Bounds()
		return bounds, ok, nil
	}
	r := *c.Range
	if r.From < 0 || r.To < 0 {
		return FrameRange{}, false, fmt.Errorf("%w: negative bound in %s", ErrInvalidRange, r)
	}
	if r.From > r.To {
		return FrameRange{}, false, fmt.Errorf("%w: from %d is after to %d", ErrInvalidRange, r.From, r.To)
	}
	return r, true, nil
}

// Correct sets the identity tag of vision track c.VisionID to c.Tag in every
// frame of the range where that vision id occurs. The identity track sharing
// the vision box is relabelled in place, or a new one is appended when none
// exists. Frames outside the range, without the vision id, or already carrying
// the tag are left alone, so applying the same correction twice has the same
// effect as once and the second application changes nothing.
func Correct(s *Store, c Correction) (CorrectionResult, error) {
	r, ok, err := ResolveRange(s, c)
	if err != nil {
		return CorrectionResult{}, err
	}
	result := CorrectionResult{Range: r}
	if !ok {
		return result, nil
	}

	for _, frame := range s.order {
		if !r.Contains(frame) {
			continue
		}
		tf := s.frames[frame].frame
		target, found := tf.VisionByID(c.VisionID)
		if !found {
			continue
		}

		identity := append([]IdentityTrack(nil), tf.Identity...)
		idx := -1
		for i, track := range identity {
			if track.Box == target.Box {
				idx = i
				break
			}
		}
		switch {
		case idx >= 0 && identity[idx].Tag == c.Tag:
			continue
		case idx >= 0:
			identity[idx].Tag = c.Tag
			result.Overwritten++
		default:
			identity = append(identity, IdentityTrack{Box: target.Box, Tag: c.Tag})
			result.Appended++
		}
		s.SetIdentityTracks(frame, identity)
		result.Frames++
	}
	return result, nil
}
