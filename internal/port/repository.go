package port

import (
	"context"

	"github.com/filekeeper/go-files-manager/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/repository_mock.go -package=mocks -source=repository.go

// FileRepository is the persistent collection of file records. Lookups that
// match nothing return ErrNotFound. Insert assigns the record id.
type FileRepository interface {
	Insert(ctx context.Context, rec *domain.FileRecord) error

	FindByID(ctx context.Context, id int64) (*domain.FileRecord, error)

	// FindByOwnerAndID scopes the lookup to one owner's records.
	FindByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.FileRecord, error)

	// FindByParent returns records under one parent in insertion order,
	// windowed by offset/limit. An out-of-range window yields an empty slice.
	FindByParent(ctx context.Context, parentID int64, offset, limit int) ([]domain.FileRecord, error)

	// FindAll returns every record in insertion order, regardless of owner.
	FindAll(ctx context.Context) ([]domain.FileRecord, error)

	// SetPublic patches only the is_public flag of an owner's record.
	SetPublic(ctx context.Context, ownerID, id int64, public bool) error

	CountFiles(ctx context.Context) (int64, error)
}

// UserRepository is the persistent collection of accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
