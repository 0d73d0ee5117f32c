package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/google/uuid"
)

// LocalStore implements port.BlobStore on a single root directory. Handles
// are absolute paths under the root; size variants append `_<size>` to the
// primary handle.
type LocalStore struct {
	root string
}

var _ port.BlobStore = (*LocalStore)(nil)

// NewLocalStore creates the store rooted at dir, creating it if absent.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: filepath.Clean(dir)}, nil
}

// NewHandle returns a fresh handle under the root. Nothing exists at the
// handle until Write completes.
func (s *LocalStore) NewHandle() string {
	return filepath.Join(s.root, uuid.NewString())
}

// Write copies r into the file at handle, truncating any previous content.
// The destination is closed on all paths.
func (s *LocalStore) Write(ctx context.Context, handle string, r io.Reader) error {
	// The root can disappear between startup and write (tmp cleaners).
	if err := os.MkdirAll(filepath.Dir(handle), 0750); err != nil {
		return fmt.Errorf("failed to create storage root: %w", err)
	}

	f, err := os.Create(handle)
	if err != nil {
		return fmt.Errorf("failed to create blob %s: %w", handle, err)
	}

	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		return fmt.Errorf("failed to write blob %s: %w", handle, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to flush blob %s: %w", handle, closeErr)
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, handle string) bool {
	info, err := os.Stat(handle)
	return err == nil && !info.IsDir()
}

func (s *LocalStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	f, err := os.Open(handle)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", handle, err)
	}
	return f, nil
}
