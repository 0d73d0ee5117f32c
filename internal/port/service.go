package port

import (
	"context"
	"io"

	"github.com/filekeeper/go-files-manager/internal/domain"
)

// CreateFileInput carries one upload request into the pipeline. Data is the
// base64-encoded content, empty for folders.
type CreateFileInput struct {
	Token    string
	Name     string
	Type     domain.FileType
	ParentID int64
	IsPublic bool
	Data     string
}

// ListFilesInput carries listing parameters. Nil ParentID/Page mean the
// parameter was not supplied at all, which selects the unscoped branch.
type ListFilesInput struct {
	Token    string
	ParentID *int64
	Page     *int
}

// FileService defines the business logic for file operations.
type FileService interface {
	// Create validates and ingests one upload, returning the created
	// record's public projection.
	Create(ctx context.Context, in CreateFileInput) (*domain.FileView, error)

	// Get returns one of the requester's records by id.
	Get(ctx context.Context, token string, fileID int64) (*domain.FileView, error)

	// List enumerates records, parent-filtered and paginated.
	List(ctx context.Context, in ListFilesInput) ([]domain.FileView, error)

	// SetPublic flips the visibility of one of the requester's records and
	// returns the refreshed projection.
	SetPublic(ctx context.Context, token string, fileID int64, public bool) (*domain.FileView, error)

	// Content resolves a record (optionally a derivative size) to a byte
	// stream and its content type. size 0 selects the primary content.
	Content(ctx context.Context, token string, fileID int64, size int) (io.ReadCloser, string, error)
}

// StatusReporter exposes backend liveness and collection counts.
type StatusReporter interface {
	Status(ctx context.Context) (redisOK, dbOK bool)
	Stats(ctx context.Context) (users, files int64, err error)
}

// UserService defines account and session logic.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.UserView, error)
	Me(ctx context.Context, token string) (*domain.UserView, error)

	// Connect verifies credentials and issues a session token.
	Connect(ctx context.Context, email, password string) (string, error)

	// Disconnect revokes the presented token.
	Disconnect(ctx context.Context, token string) error
}
