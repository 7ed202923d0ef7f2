package tracks

import (
	"slices"
	"strconv"
)

// Label is the identity shown for a vision track.
type Label struct {
	Tag     int  `json:"tag"`
	Labeled bool `json:"labeled"`
}

// Unlabeled is the label of a vision track without a matching identity box.
var Unlabeled = Label{}

func (l Label) String() string {
	if !l.Labeled {
		return "unlabeled"
	}
	return strconv.Itoa(l.Tag)
}

// Match pairs a vision track with the identity track sharing its box.
// Identity is the zero value when Labeled is false.
type Match struct {
	Vision   VisionTrack   `json:"vision"`
	Identity IdentityTrack `json:"identity"`
	Labeled  bool          `json:"labeled"`
}

// Label returns the identity label carried by the match.
func (m Match) Label() Label {
	if !m.Labeled {
		return Unlabeled
	}
	return Label{Tag: m.Identity.Tag, Labeled: true}
}

// MatchFrame pairs the frame's vision tracks with its identity tracks.
//
// Both sequences are stably sorted by box and walked with one cursor each.
// When the vision box equals the box under the identity cursor the two are
// paired and both cursors advance; otherwise the vision track is unlabeled
// and only the vision cursor moves. The walk assumes each box occurs at most
// once per sequence. With repeated boxes the pairing follows sort order, and
// an identity box with no vision counterpart stalls the identity cursor for
// every later vision box. Both cases are known limitations and are reported by
// Ambiguities rather than resolved here.
//
// The result is ordered by vision box.
func MatchFrame(f TrackFrame) []Match {
	vision := sortedVision(f.Vision)
	identity := sortedIdentity(f.Identity)

	matches := make([]Match, 0, len(vision))
	j := 0
	for _, v := range vision {
		if j < len(identity) && v.Box == identity[j].Box {
			matches = append(matches, Match{Vision: v, Identity: identity[j], Labeled: true})
			j++
			continue
		}
		matches = append(matches, Match{Vision: v})
	}
	return matches
}

// Labels maps every vision id of the frame to its identity label. When a
// vision id repeats, the track that sorts last wins.
func Labels(f TrackFrame) map[int]Label {
	matches := MatchFrame(f)
	out := make(map[int]Label, len(matches))
	for _, m := range matches {
		out[m.Vision.VisionID] = m.Label()
	}
	return out
}

// Ambiguity describes input the linear merge cannot pair reliably.
type Ambiguity struct {
	Kind string `json:"kind"`
	Box  Box    `json:"box"`
}

const (
	// AmbiguityDuplicateVision marks a box appearing more than once among vision tracks.
	AmbiguityDuplicateVision = "duplicate_vision_box"
	// AmbiguityDuplicateIdentity marks a box appearing more than once among identity tracks.
	AmbiguityDuplicateIdentity = "duplicate_identity_box"
	// AmbiguityOrphanIdentity marks an identity box that no vision track shares.
	AmbiguityOrphanIdentity = "orphan_identity_box"
)

// Ambiguities lists the boxes of f whose pairing depends on sort order.
// An empty result means MatchFrame's output is fully determined.
func Ambiguities(f TrackFrame) []Ambiguity {
	var out []Ambiguity
	visionBoxes := make(map[Box]int, len(f.Vision))
	for _, v := range sortedVision(f.Vision) {
		visionBoxes[v.Box]++
		if visionBoxes[v.Box] == 2 {
			out = append(out, Ambiguity{Kind: AmbiguityDuplicateVision, Box: v.Box})
		}
	}
	identityBoxes := make(map[Box]int, len(f.Identity))
	for _, id := range sortedIdentity(f.Identity) {
		identityBoxes[id.Box]++
		if identityBoxes[id.Box] == 2 {
			out = append(out, Ambiguity{Kind: AmbiguityDuplicateIdentity, Box: id.Box})
		}
		if identityBoxes[id.Box] == 1 && visionBoxes[id.Box] == 0 {
			out = append(out, Ambiguity{Kind: AmbiguityOrphanIdentity, Box: id.Box})
		}
	}
	return out
}

func sortedVision(in []VisionTrack) []VisionTrack {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b VisionTrack) int { return a.Box.Compare(b.Box) })
	return out
}

func sortedIdentity(in []IdentityTrack) []IdentityTrack {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b IdentityTrack) int { return a.Box.Compare(b.Box) })
	return out
}
