package service

import (
	"context"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
)

// pageSize is the fixed listing window; pages are 1-indexed.
const pageSize = 20

// listingService handles parent-filtered, paginated enumeration plus the
// owner-scoped single-record fetch.
type listingService struct {
	core *FileServiceImpl
}

// newListingService creates the listing use-case service.
func newListingService(core *FileServiceImpl) *listingService {
	return &listingService{core: core}
}

// get returns one of the requester's own records.
func (s *listingService) get(ctx context.Context, token string, fileID int64) (*domain.FileView, error) {
	ownerID, err := s.core.resolveRequester(ctx, token)
	if err != nil {
		return nil, err
	}

	rec, err := s.core.files.FindByOwnerAndID(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}

	view := rec.View()
	return &view, nil
}

// list enumerates records. When neither parentId nor page was supplied the
// listing is unscoped (every record, all owners); otherwise it is filtered
// by parent and windowed to one page.
func (s *listingService) list(ctx context.Context, in port.ListFilesInput) ([]domain.FileView, error) {
	if _, err := s.core.resolveRequester(ctx, in.Token); err != nil {
		return nil, err
	}

	if in.ParentID == nil && in.Page == nil {
		recs, err := s.core.files.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return toViews(recs), nil
	}

	parentID := domain.RootParentID
	if in.ParentID != nil {
		parentID = *in.ParentID
	}

	page := 1
	if in.Page != nil {
		page = *in.Page
	}
	if page < 1 {
		return []domain.FileView{}, nil
	}

	recs, err := s.core.files.FindByParent(ctx, parentID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return toViews(recs), nil
}

func toViews(recs []domain.FileRecord) []domain.FileView {
	views := make([]domain.FileView, 0, len(recs))
	for i := range recs {
		views = append(views, recs[i].View())
	}
	return views
}
