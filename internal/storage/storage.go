// Package storage wraps an S3-compatible object store used for report
// assets (the header logo) and the optional archive of dispatched reports.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("storage: object not found")

// PutObjectOptions carry optional upload parameters. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store contract. Implementations stream content and never touch local disk.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// ReportKey returns the archive key of a rendered report artifact: reports/{period}/{name}.
func ReportKey(period, name string) string {
	return path.Join("reports", period, name)
}
