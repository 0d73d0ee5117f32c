package service

import (
	"context"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/domain"
)

// publishService flips record visibility. Only the owner may publish or
// unpublish; everything except isPublic stays untouched.
type publishService struct {
	core *FileServiceImpl
}

// newPublishService creates the publish use-case service.
func newPublishService(core *FileServiceImpl) *publishService {
	return &publishService{core: core}
}

// setPublic patches the visibility flag and returns the refreshed
// projection. A record the requester doesn't own reads as not-found.
func (s *publishService) setPublic(ctx context.Context, token string, fileID int64, public bool) (*domain.FileView, error) {
	ownerID, err := s.core.resolveRequester(ctx, token)
	if err != nil {
		return nil, err
	}

	rec, err := s.core.files.FindByOwnerAndID(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.core.files.SetPublic(ctx, ownerID, fileID, public); err != nil {
		return nil, err
	}

	logger.Infow("Visibility changed", "file_id", fileID, "owner_id", ownerID, "is_public", public)

	rec.IsPublic = public
	view := rec.View()
	return &view, nil
}
