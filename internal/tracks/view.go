package tracks

// FrameView is what a reviewer sees for one frame: every vision box with the
// identity it currently carries.
type FrameView struct {
	Frame       int         `json:"frame"`
	Matches     []Match     `json:"matches"`
	Ambiguities []Ambiguity `json:"ambiguities,omitempty"`
}

// Unlabeled counts vision tracks without an identity.
func (v FrameView) Unlabeled() int {
	n := 0
	for _, m := range v.Matches {
		if !m.Labeled {
			n++
		}
	}
	return n
}

// View builds the FrameView for frame. ok is false when the store has no
// data for it, which callers show as "nothing to show".
func View(s *Store, frame int) (FrameView, bool) {
	tf, ok := s.Lookup(frame)
	if !ok {
		return FrameView{Frame: frame}, false
	}
	return FrameView{
		Frame:       frame,
		Matches:     MatchFrame(tf),
		Ambiguities: Ambiguities(tf),
	}, true
}
