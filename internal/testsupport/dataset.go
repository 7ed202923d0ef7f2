package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// TrackingCSV is a twelve-frame tracking results file. Frames are written
// 1-based. Zero-based frames 0-4 and 10-11 have matching track counts,
// frames 5-8 are missing the identity of vision id 2, and frame 9 has an
// unreadable vision column.
const TrackingCSV = `frame,Time,sort_tracks,RFID_tracks,note
1,10.0,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",a
2,10.5,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",b
3,11.0,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",c
4,11.5,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",d
5,12.0,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",e
6,12.5,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7]]",f
7,13.0,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7]]",g
8,13.5,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7]]",h
9,14.0,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7]]",i
10,14.5,not a list,"[[0, 0, 10, 10, 7]]",j
11,15.0,"[(0, 0, 10, 10, 1), (20, 20, 30, 30, 2)]","[(0, 0, 10, 10, 7), (20, 20, 30, 30, 8)]",k
12,15.5,"[[0, 0, 10, 10, 1], [20, 20, 30, 30, 2]]","[[0, 0, 10, 10, 7], [20, 20, 30, 30, 8]]",l
`

// ReadsCSV holds two readable reader events and one unreadable row.
const ReadsCSV = `Timestamp,Reader,RFID
12.4,3,7
10.0,1,8
bad,1,2
`

// LocationsCSV holds two reader zones.
const LocationsCSV = `reader_id,x1,y1,x2,y2
1,0,0,100,100
3,100,0,200,100
`

// TagsTXT is the known-tag registry.
const TagsTXT = "Experiment 2024-03-02 cage 4\nTags: 7, 8, 99\n"

// WriteDataset writes the fixture dataset into a new temp directory and
// returns its path.
func WriteDataset(t testing.TB) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "dataset")
	WriteText(t, filepath.Join(dir, "tracking_results.csv"), TrackingCSV)
	WriteText(t, filepath.Join(dir, "rfid_reads.csv"), ReadsCSV)
	WriteText(t, filepath.Join(dir, "rfid_locations.csv"), LocationsCSV)
	WriteText(t, filepath.Join(dir, "logs.txt"), TagsTXT)
	WriteText(t, filepath.Join(dir, "raw.mp4"), "")
	return dir
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
