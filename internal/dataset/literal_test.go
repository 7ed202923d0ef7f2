package dataset

import (
	"testing"

	"tracktor/internal/tracks"
)

func TestDecodeTuples(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"[]", 0, false},
		{"[[0, 0, 10, 10, 7]]", 1, false},
		{"[(0, 0, 10, 10, 7), (1, 1, 2, 2, 3)]", 2, false},
		{"[[0.0, 0, 10, 10, 7]]", 1, false},
		{"", 0, true},
		{"nan", 0, true},
		{"[[0, 0, 10, 10]]", 0, true},
		{"[[0, 0, 10.5, 10, 7]]", 0, true},
	}
	for _, tc := range cases {
		got, err := decodeTuples(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("decodeTuples(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("decodeTuples(%q): %v", tc.raw, err)
		}
		if len(got) != tc.want {
			t.Fatalf("decodeTuples(%q) = %d tuples, want %d", tc.raw, len(got), tc.want)
		}
	}
}

func TestEncodeIdentityRoundTrips(t *testing.T) {
	in := []tracks.IdentityTrack{
		{Box: tracks.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}, Tag: 7},
		{Box: tracks.Box{X1: 20, Y1: 20, X2: 30, Y2: 30}, Tag: 99},
	}
	text := EncodeIdentity(in)
	if text != "[[0, 0, 10, 10, 7], [20, 20, 30, 30, 99]]" {
		t.Fatalf("unexpected encoding %q", text)
	}
	out, err := decodeIdentity(text)
	if err != nil {
		t.Fatalf("decodeIdentity: %v", err)
	}
	if len(out) != 2 || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if EncodeIdentity(nil) != "[]" {
		t.Fatalf("empty identity should encode as []")
	}
}
