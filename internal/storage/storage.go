// Package storage holds the blob backends for uploaded file bytes: a local
// directory and an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	// ErrObjectNotFound is returned (wrapped) by Get when the key does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that are not a plain file name.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the blob store used by the file service.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Put stores the reader's bytes under key. The object is visible to Get
	// only once it has been written completely.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object for streaming. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}

// checkKey accepts only plain file names so a key can never leave the
// backend's root or bucket prefix.
func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
