package port

import (
	"context"
	"io"
)

//go:generate mockgen -destination=../service/mocks/blobstore_mock.go -package=mocks -source=blobstore.go

// BlobStore holds raw content bytes under opaque handles. A completed Write
// is visible to Exists/Open from any goroutine.
type BlobStore interface {
	// NewHandle returns a fresh unique handle for a primary write.
	NewHandle() string

	// Write stores the reader's bytes under handle, overwriting any previous
	// content. The destination is closed on every path.
	Write(ctx context.Context, handle string, r io.Reader) error

	Exists(ctx context.Context, handle string) bool

	Open(ctx context.Context, handle string) (io.ReadCloser, error)
}
