package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"tracktor/internal/tracks"
)

var literalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var tupleReplacer = strings.NewReplacer("(", "[", ")", "]")

// decodeTuples parses a textual list of 5-tuples such as
// "[[0, 0, 10, 10, 7], (20, 20, 30, 30, 2)]".
func decodeTuples(raw string) ([][5]int, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("empty track list")
	}
	var rows [][]float64
	if err := literalJSON.UnmarshalFromString(tupleReplacer.Replace(text), &rows); err != nil {
		return nil, fmt.Errorf("decode track list: %w", err)
	}
	out := make([][5]int, 0, len(rows))
	for i, row := range rows {
		if len(row) != 5 {
			return nil, fmt.Errorf("track %d: expected 5 values, got %d", i, len(row))
		}
		var tuple [5]int
		for j, v := range row {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("track %d: value %v is not an integer", i, v)
			}
			tuple[j] = int(v)
		}
		out = append(out, tuple)
	}
	return out, nil
}

func decodeVision(raw string) ([]tracks.VisionTrack, error) {
	tuples, err := decodeTuples(raw)
	if err != nil {
		return nil, err
	}
	out := make([]tracks.VisionTrack, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, tracks.VisionTrack{Box: boxOf(t), VisionID: t[4]})
	}
	return out, nil
}

func decodeIdentity(raw string) ([]tracks.IdentityTrack, error) {
	tuples, err := decodeTuples(raw)
	if err != nil {
		return nil, err
	}
	out := make([]tracks.IdentityTrack, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, tracks.IdentityTrack{Box: boxOf(t), Tag: t[4]})
	}
	return out, nil
}

func boxOf(t [5]int) tracks.Box {
	return tracks.Box{X1: t[0], Y1: t[1], X2: t[2], Y2: t[3]}
}

// EncodeIdentity renders identity tracks in the list-literal form used by the
// tracking results file.
func EncodeIdentity(identity []tracks.IdentityTrack) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range identity {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for j, v := range []int{t.X1, t.Y1, t.X2, t.Y2, t.Tag} {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(v))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
