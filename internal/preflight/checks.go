package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"tracktor/internal/artifact"
	"tracktor/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckArtifact verifies that a dataset file exists and is readable.
func CheckArtifact(dir, name string) Result {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: "missing"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("stat: %v", err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: "is a directory"}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not readable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes", info.Size())}
}

// CheckExportTarget verifies the configured snapshot destination. The
// filesystem target is the export directory (or its nearest existing parent)
// or the dataset directory; the s3 target is probed with a HeadBucket call.
func CheckExportTarget(ctx context.Context, cfg *config.Config, datasetDir string) Result {
	const name = "Export target"
	switch cfg.Export.Driver {
	case config.ExportDriverS3:
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		store, err := artifact.Open(checkCtx, cfg, datasetDir)
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("s3 setup failed (%v)", err)}
		}
		pinger, ok := store.(interface{ Ping(context.Context) error })
		if !ok {
			return Result{Name: name, Passed: true, Detail: string(store.Driver())}
		}
		if err := pinger.Ping(checkCtx); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("bucket %s unreachable (%v)", cfg.Export.S3.Bucket, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("s3://%s reachable", cfg.Export.S3.Bucket)}
	default:
		target := cfg.Export.Dir
		if target == "" {
			target = datasetDir
		}
		for target != "" {
			if _, err := os.Stat(target); err == nil {
				break
			}
			parent := filepath.Dir(target)
			if parent == target {
				break
			}
			target = parent
		}
		return CheckDirectoryAccess(name, target)
	}
}
