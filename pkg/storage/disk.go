// Package storage stores uploaded files on the local filesystem or on an
// S3-compatible bucket (AWS S3, MinIO, R2).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"travel-booking/pkg/utils"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes r to path, creating parent directories as needed.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// PathFromURL is the inverse of URL; ok is false for URLs this disk did not produce.
	PathFromURL(url string) (path string, ok bool)
}

// New returns the disk selected by cfg.Driver.
func New(ctx context.Context, cfg utils.StorageConfig) (Disk, error) {
	switch cfg.Driver {
	case "", "local":
		disk, err := NewLocalDisk(cfg.LocalRoot, cfg.URL)
		if err != nil {
			return nil, err
		}
		return disk, nil
	case "s3":
		disk, err := NewS3Disk(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return disk, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

func trimPrefix(url, base string) (string, bool) {
	if base == "" || !strings.HasPrefix(url, base+"/") {
		return "", false
	}
	path := strings.TrimPrefix(url, base+"/")
	if path == "" || strings.Contains(path, "..") {
		return "", false
	}
	return path, true
}
