package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localStorage keeps each object as a file directly under root.
type localStorage struct {
	root string
}

// NewLocal creates the directory if needed and returns a disk-backed Storage.
func NewLocal(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("blob directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStorage{root: root}, nil
}

func (l *localStorage) path(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return filepath.Join(l.root, key), nil
}

// Put writes to a temp file in root and renames it into place.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	dst, err := l.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(l.root, ".upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return ObjectInfo{}, fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("failed to move file into place: %w", err)
	}

	info := ObjectInfo{Key: key, Size: size, ContentType: opt.ContentType}
	if st, err := os.Stat(dst); err == nil {
		info.LastModified = st.ModTime()
	}
	return info, nil
}

// Get opens the object file for reading.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	p, err := l.path(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return f, ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}
