// ABOUTME: Upload targets for export files.
// ABOUTME: Exports go to an S3-compatible bucket or a local directory.
package backup

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Drivers.
const (
	DriverS3 = "s3"
	DriverFS = "fs"
)

// Store accepts export uploads.
type Store interface {
	// Put writes body under key and returns where it landed.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Options configures Open.
type Options struct {
	Driver    string
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
	Dir       string
}

// Open returns the store for the configured driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverS3:
		s, err := NewS3(ctx, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverFS, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("backup dir required for fs driver")
		}
		s, err := NewFS(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backup driver: %q", opts.Driver)
	}
}

// Key names an export uploaded at now.
func Key(ownerID, ext string, now time.Time) string {
	return fmt.Sprintf("betta/%s/export-%s.%s", ownerID, now.UTC().Format("20060102T150405Z"), ext)
}

// ContentType returns the MIME type for an export format.
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	case "csv":
		return "text/csv"
	case "markdown", "md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
