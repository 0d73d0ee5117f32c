package postgres

import (
	"context"
	"fmt"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/filekeeper/go-files-manager/pkg/idgen"
	"gorm.io/gorm"
)

// UserRepository implements port.UserRepository on a Postgres users table.
type UserRepository struct {
	db    *gorm.DB
	idGen *idgen.Snowflake
}

var _ port.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB, idGen *idgen.Snowflake) *UserRepository {
	return &UserRepository{db: db, idGen: idGen}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	id, err := r.idGen.Next()
	if err != nil {
		return fmt.Errorf("failed to generate user id: %w", err)
	}
	user.ID = id

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translateLookupErr(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateLookupErr(err)
	}
	return &user, nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
