package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/filekeeper/go-files-manager/pkg/idgen"
	"gorm.io/gorm"
)

// FileRepository implements port.FileRepository on a Postgres files table.
// Record ids are snowflakes, so id order is insertion order.
type FileRepository struct {
	db    *gorm.DB
	idGen *idgen.Snowflake
}

var _ port.FileRepository = (*FileRepository)(nil)

func NewFileRepository(db *gorm.DB, idGen *idgen.Snowflake) *FileRepository {
	return &FileRepository{db: db, idGen: idGen}
}

// Insert assigns a fresh id and persists the record.
func (r *FileRepository) Insert(ctx context.Context, rec *domain.FileRecord) error {
	id, err := r.idGen.Next()
	if err != nil {
		return fmt.Errorf("failed to generate file id: %w", err)
	}
	rec.ID = id

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}
	return nil
}

func (r *FileRepository) FindByID(ctx context.Context, id int64) (*domain.FileRecord, error) {
	var rec domain.FileRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, translateLookupErr(err)
	}
	return &rec, nil
}

func (r *FileRepository) FindByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.FileRecord, error) {
	var rec domain.FileRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, translateLookupErr(err)
	}
	return &rec, nil
}

func (r *FileRepository) FindByParent(ctx context.Context, parentID int64, offset, limit int) ([]domain.FileRecord, error) {
	var recs []domain.FileRecord
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records by parent: %w", err)
	}
	return recs, nil
}

func (r *FileRepository) FindAll(ctx context.Context) ([]domain.FileRecord, error) {
	var recs []domain.FileRecord
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return recs, nil
}

func (r *FileRepository) SetPublic(ctx context.Context, ownerID, id int64, public bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.FileRecord{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("is_public", public)
	if res.Error != nil {
		return fmt.Errorf("failed to update visibility: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (r *FileRepository) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.FileRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return n, nil
}

func translateLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return port.ErrNotFound
	}
	return fmt.Errorf("repository lookup failed: %w", err)
}
