package preflight

import (
	"context"

	"tracktor/internal/config"
	"tracktor/internal/dataset"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every check for cfg and the dataset in datasetDir. Dataset
// checks are skipped when no dataset is given.
func RunAll(ctx context.Context, cfg *config.Config, datasetDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	if datasetDir == "" {
		return results
	}
	results = append(results, CheckDirectoryReadable("Dataset directory", datasetDir))

	layout := dataset.LayoutFromConfig(cfg)
	for _, name := range []string{
		layout.TrackingFile(),
		layout.ReadsFile,
		layout.LocationsFile,
		layout.TagsFile,
		layout.VideoFile,
	} {
		results = append(results, CheckArtifact(datasetDir, name))
	}

	results = append(results, CheckExportTarget(ctx, cfg, datasetDir))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
