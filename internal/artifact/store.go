package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tracktor/internal/config"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// ErrExists is returned by Put when the key is already taken.
var ErrExists = errors.New("artifact already exists")

// Info describes a stored artifact.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
	// Location is a path or URL a human can open.
	Location string `json:"location"`
}

// Store is the minimal create-only surface used by snapshot export.
type Store interface {
	// Put stores a new artifact at key. It fails with ErrExists if the key is taken.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	// List returns artifacts whose key has the provided prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Open builds the store selected by cfg.Export. The filesystem driver is rooted
// at export.dir when set and at datasetDir otherwise.
func Open(ctx context.Context, cfg *config.Config, datasetDir string) (Store, error) {
	if cfg == nil {
		return nil, errors.New("artifact: config required")
	}
	switch cfg.Export.Driver {
	case config.ExportDriverFilesystem, "":
		root := cfg.Export.Dir
		if root == "" {
			root = datasetDir
		}
		return NewFilesystem(root)
	case config.ExportDriverS3:
		s3cfg := cfg.Export.S3
		return NewS3(ctx, S3Config{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			SessionToken:    s3cfg.SessionToken,
		})
	default:
		return nil, fmt.Errorf("artifact: unsupported driver %q", cfg.Export.Driver)
	}
}
