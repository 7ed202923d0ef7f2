package config

const (
	defaultStateDir      = "~/.local/share/tracktor"
	defaultLogDir        = "~/.local/share/tracktor/logs"
	defaultTrackingBase  = "tracking_results"
	defaultReadsFile     = "rfid_reads.csv"
	defaultLocationsFile = "rfid_locations.csv"
	defaultTagsFile      = "logs.txt"
	defaultVideoFile     = "raw.mp4"
	defaultFrameBase     = 1
	defaultExportDriver  = ExportDriverFilesystem
	defaultS3Region      = "us-east-1"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 20
	defaultLogMaxBackups = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Dataset: Dataset{
			TrackingBase:  defaultTrackingBase,
			ReadsFile:     defaultReadsFile,
			LocationsFile: defaultLocationsFile,
			TagsFile:      defaultTagsFile,
			VideoFile:     defaultVideoFile,
			FrameBase:     defaultFrameBase,
		},
		Export: Export{
			Driver: defaultExportDriver,
			S3: S3{
				Region: defaultS3Region,
			},
		},
		Review: Review{
			EnforceKnownTags: true,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
