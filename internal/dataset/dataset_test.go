package dataset_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"tracktor/internal/dataset"
	"tracktor/internal/testsupport"
	"tracktor/internal/tracks"
)

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	dir := testsupport.WriteDataset(t)
	ds, err := dataset.Load(dir, dataset.DefaultLayout(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ds
}

func TestLoadFixture(t *testing.T) {
	ds := loadFixture(t)

	if len(ds.Frames) != 12 {
		t.Fatalf("frames = %d, want 12", len(ds.Frames))
	}
	if ds.Frames[0].Frame != 0 || ds.Frames[11].Frame != 11 {
		t.Fatalf("frames not normalized to zero-based: first %d last %d", ds.Frames[0].Frame, ds.Frames[11].Frame)
	}
	if len(ds.Malformed) != 1 || ds.Malformed[0].Frame != 9 {
		t.Fatalf("unexpected malformed rows %+v", ds.Malformed)
	}
	if len(ds.Fingerprint) != 64 {
		t.Fatalf("unexpected fingerprint %q", ds.Fingerprint)
	}

	store := ds.Store()
	if got := store.Get(9); !got.Empty() {
		t.Fatalf("malformed frame should be empty, got %+v", got)
	}
	tuples := store.Get(10)
	if len(tuples.Vision) != 2 || len(tuples.Identity) != 2 || tuples.Identity[1].Tag != 8 {
		t.Fatalf("tuple literal frame decoded wrong: %+v", tuples)
	}
	short := store.Get(5)
	if len(short.Vision) != 2 || len(short.Identity) != 1 || !short.Mismatch() {
		t.Fatalf("frame 5 should be a mismatch, got %+v", short)
	}

	times := store.SampleTimes()
	if len(times) != 12 || times[9].Time != 14.5 {
		t.Fatalf("malformed row should keep its sampling time, got %+v", times)
	}

	if len(ds.Reads) != 2 || ds.Reads[0].Tag != 7 || ds.Reads[0].Reader != 3 {
		t.Fatalf("unexpected reads %+v", ds.Reads)
	}
	if len(ds.Readers) != 2 || ds.Readers[1].Box != (tracks.Box{X1: 100, Y1: 0, X2: 200, Y2: 100}) {
		t.Fatalf("unexpected readers %+v", ds.Readers)
	}
	if !slices.Equal(ds.Tags, []int{7, 8, 99}) {
		t.Fatalf("unexpected tags %v", ds.Tags)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	for _, name := range []string{"tracking_results.csv", "rfid_reads.csv", "rfid_locations.csv", "logs.txt"} {
		t.Run(name, func(t *testing.T) {
			dir := testsupport.WriteDataset(t)
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				t.Fatalf("remove: %v", err)
			}
			_, err := dataset.Load(dir, dataset.DefaultLayout(), nil)
			if !errors.Is(err, dataset.ErrMissingArtifact) {
				t.Fatalf("expected ErrMissingArtifact, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMissingColumns(t *testing.T) {
	dir := testsupport.WriteDataset(t)
	testsupport.WriteText(t, filepath.Join(dir, "tracking_results.csv"), "frame,Time,sort_tracks\n1,0.0,[]\n")
	if _, err := dataset.Load(dir, dataset.DefaultLayout(), nil); err == nil || !strings.Contains(err.Error(), "RFID_tracks") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoadHonoursFrameBase(t *testing.T) {
	dir := testsupport.WriteDataset(t)
	layout := dataset.DefaultLayout()
	layout.FrameBase = 0
	ds, err := dataset.Load(dir, layout, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Frames[0].Frame != 1 {
		t.Fatalf("expected file frames kept as-is, got first %d", ds.Frames[0].Frame)
	}
}

func TestWriteSnapshotRewritesOnlyModifiedFrames(t *testing.T) {
	ds := loadFixture(t)
	store := ds.Store()
	rng := tracks.FrameRange{From: 5, To: 9}
	if _, err := tracks.Correct(store, tracks.Correction{VisionID: 2, Tag: 99, Range: &rng}); err != nil {
		t.Fatalf("Correct: %v", err)
	}

	var buf bytes.Buffer
	if err := dataset.WriteSnapshot(&buf, ds, store); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	source := strings.Split(testsupport.TrackingCSV, "\n")
	written := strings.Split(buf.String(), "\n")
	if len(source) != len(written) {
		t.Fatalf("line count changed: %d vs %d", len(source), len(written))
	}
	for i := range source {
		// Lines 6-9 hold zero-based frames 5-8.
		if i >= 6 && i <= 9 {
			want := `"[[0, 0, 10, 10, 7], [20, 20, 30, 30, 99]]"`
			if !strings.Contains(written[i], want) {
				t.Fatalf("line %d not rewritten: %q", i, written[i])
			}
			continue
		}
		if source[i] != written[i] {
			t.Fatalf("line %d changed:\n got %q\nwant %q", i, written[i], source[i])
		}
	}

	dir := t.TempDir()
	testsupport.WriteText(t, filepath.Join(dir, "tracking_results.csv"), buf.String())
	for _, name := range []string{"rfid_reads.csv", "rfid_locations.csv", "logs.txt"} {
		data, err := os.ReadFile(filepath.Join(ds.Dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		testsupport.WriteText(t, filepath.Join(dir, name), string(data))
	}
	reloaded, err := dataset.Load(dir, dataset.DefaultLayout(), nil)
	if err != nil {
		t.Fatalf("reload snapshot: %v", err)
	}
	frame := reloaded.Store().Get(6)
	if frame.Mismatch() || tracks.Labels(frame)[2] != (tracks.Label{Tag: 99, Labeled: true}) {
		t.Fatalf("snapshot did not persist correction: %+v", frame)
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []int
		wantErr bool
	}{
		{"standard", "Experiment\nTags: 7, 8, 99\n", []int{7, 8, 99}, false},
		{"no colon", "Experiment\n1,2\n", []int{1, 2}, false},
		{"header only", "Experiment", nil, false},
		{"float tags", "x\nTags: 3.0, 4\n", []int{3, 4}, false},
		{"garbage", "x\nTags: 7, seven\n", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dataset.ParseTags(tc.content)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTags: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Fatalf("ParseTags = %v, want %v", got, tc.want)
			}
		})
	}
}
