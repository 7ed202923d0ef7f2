package dataset

import (
	"path/filepath"

	"tracktor/internal/config"
)

// Column names of the tracking results file.
const (
	ColumnFrame    = "frame"
	ColumnTime     = "Time"
	ColumnVision   = "sort_tracks"
	ColumnIdentity = "RFID_tracks"
)

// Layout names the artifacts inside a dataset directory.
type Layout struct {
	TrackingBase  string // without extension; snapshots append _<n>
	ReadsFile     string
	LocationsFile string
	TagsFile      string
	VideoFile     string
	// FrameBase is the index of the first frame as written in the file.
	FrameBase int
}

// DefaultLayout returns the layout written by the tracking pipeline.
func DefaultLayout() Layout {
	return Layout{
		TrackingBase:  "tracking_results",
		ReadsFile:     "rfid_reads.csv",
		LocationsFile: "rfid_locations.csv",
		TagsFile:      "logs.txt",
		VideoFile:     "raw.mp4",
		FrameBase:     1,
	}
}

// LayoutFromConfig returns the layout configured in cfg.
func LayoutFromConfig(cfg *config.Config) Layout {
	if cfg == nil {
		return DefaultLayout()
	}
	return Layout{
		TrackingBase:  cfg.Dataset.TrackingBase,
		ReadsFile:     cfg.Dataset.ReadsFile,
		LocationsFile: cfg.Dataset.LocationsFile,
		TagsFile:      cfg.Dataset.TagsFile,
		VideoFile:     cfg.Dataset.VideoFile,
		FrameBase:     cfg.Dataset.FrameBase,
	}
}

// TrackingFile returns the tracking results file name.
func (l Layout) TrackingFile() string {
	return l.TrackingBase + ".csv"
}

func (l Layout) path(dir, name string) string {
	return filepath.Join(dir, name)
}
