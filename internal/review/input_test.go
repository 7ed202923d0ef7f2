package review_test

import (
	"errors"
	"testing"

	"tracktor/internal/review"
	"tracktor/internal/tracks"
)

var registry = review.Policy{Tags: []int{7, 8, 99}, EnforceKnownTags: true}

func TestParseCorrectionAccepts(t *testing.T) {
	req, err := review.ParseCorrection(review.Input{VisionID: " 2 ", Tag: "99", From: "5", To: "15"}, registry)
	if err != nil {
		t.Fatalf("ParseCorrection: %v", err)
	}
	if req.VisionID != 2 || req.Tag != 99 || *req.From != 5 || *req.To != 15 {
		t.Fatalf("unexpected request %+v", req)
	}
	c := req.Correction(tracks.FrameRange{From: 0, To: 100})
	if c.Range == nil || *c.Range != (tracks.FrameRange{From: 5, To: 15}) {
		t.Fatalf("unexpected range %+v", c.Range)
	}
}

func TestRequestCorrectionFillsOpenBounds(t *testing.T) {
	bounds := tracks.FrameRange{From: 0, To: 11}
	cases := []struct {
		name string
		in   review.Input
		want *tracks.FrameRange
	}{
		{"both open", review.Input{VisionID: "1", Tag: "7"}, nil},
		{"from only", review.Input{VisionID: "1", Tag: "7", From: "4"}, &tracks.FrameRange{From: 4, To: 11}},
		{"to only", review.Input{VisionID: "1", Tag: "7", To: "3"}, &tracks.FrameRange{From: 0, To: 3}},
		{"from past the last frame", review.Input{VisionID: "1", Tag: "7", From: "40"}, &tracks.FrameRange{From: 40, To: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := review.ParseCorrection(tc.in, registry)
			if err != nil {
				t.Fatalf("ParseCorrection: %v", err)
			}
			got := req.Correction(bounds).Range
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Fatalf("range = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseCorrectionRejects(t *testing.T) {
	cases := []struct {
		name   string
		in     review.Input
		field  string
		target error
	}{
		{"missing vision", review.Input{Tag: "7"}, "vision_id", nil},
		{"missing tag", review.Input{VisionID: "1"}, "tag", nil},
		{"letters", review.Input{VisionID: "one", Tag: "7"}, "vision_id", nil},
		{"fractional tag", review.Input{VisionID: "1", Tag: "7.5"}, "tag", nil},
		{"negative from", review.Input{VisionID: "1", Tag: "7", From: "-1"}, "from", tracks.ErrInvalidRange},
		{"reversed", review.Input{VisionID: "1", Tag: "7", From: "9", To: "2"}, "from", tracks.ErrInvalidRange},
		{"unknown tag", review.Input{VisionID: "1", Tag: "5"}, "tag", review.ErrUnknownTag},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := review.ParseCorrection(tc.in, registry)
			var verr *review.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q (%v)", verr.Field, tc.field, err)
			}
			if verr.ErrorKind() != "validation" {
				t.Fatalf("unexpected kind %q", verr.ErrorKind())
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("expected %v in chain, got %v", tc.target, err)
			}
		})
	}
}

func TestParseCorrectionWithoutEnforcement(t *testing.T) {
	if _, err := review.ParseCorrection(review.Input{VisionID: "1", Tag: "5"}, review.Policy{}); err != nil {
		t.Fatalf("expected unknown tag to pass without enforcement, got %v", err)
	}
}
