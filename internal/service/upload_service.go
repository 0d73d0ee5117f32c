package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
)

// uploadService orchestrates validation, placement, blob persistence, and
// derivative job enqueue for one creation request.
type uploadService struct {
	core *FileServiceImpl
}

// newUploadService creates the upload use-case service.
func newUploadService(core *FileServiceImpl) *uploadService {
	return &uploadService{core: core}
}

// create runs the full upload pipeline. Validation happens in order (name,
// type, data, parent) before any side effect, so a failed request leaves no
// partial writes behind.
func (s *uploadService) create(ctx context.Context, in port.CreateFileInput) (*domain.FileView, error) {
	ownerID, err := s.core.resolveRequester(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}

	if err := s.checkParent(ctx, in.ParentID); err != nil {
		return nil, err
	}

	rec := &domain.FileRecord{
		OwnerID:  ownerID,
		Name:     in.Name,
		Type:     in.Type,
		IsPublic: in.IsPublic,
		ParentID: in.ParentID,
	}

	if in.Type == domain.TypeFolder {
		if err := s.core.files.Insert(ctx, rec); err != nil {
			return nil, err
		}
		view := rec.View()
		return &view, nil
	}

	payload, err := base64.StdEncoding.DecodeString(in.Data)
	if err != nil {
		return nil, port.ErrInvalidData
	}

	handle := s.core.blobs.NewHandle()
	if err := s.core.blobs.Write(ctx, handle, bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("blob write failed: %w", err)
	}

	rec.LocalPath = handle
	if err := s.core.files.Insert(ctx, rec); err != nil {
		// The blob stays orphaned; no compensating delete is defined.
		logger.Warnw("Metadata insert failed after blob write", "handle", handle, "error", err.Error())
		return nil, err
	}

	if in.Type == domain.TypeImage {
		s.enqueueThumbnails(ctx, rec)
	}

	logger.Infow("File created", "file_id", rec.ID, "owner_id", ownerID, "type", rec.Type)
	view := rec.View()
	return &view, nil
}

// validateInput checks required fields in the contract's order.
func validateInput(in port.CreateFileInput) error {
	if in.Name == "" {
		return port.MissingField("name")
	}
	if !domain.IsValidType(in.Type) {
		return port.MissingField("type")
	}
	if in.Data == "" && in.Type != domain.TypeFolder {
		return port.MissingField("data")
	}
	return nil
}

// checkParent verifies a non-root parent exists and is a folder.
func (s *uploadService) checkParent(ctx context.Context, parentID int64) error {
	if parentID == domain.RootParentID {
		return nil
	}

	parent, err := s.core.files.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return port.ErrParentNotFound
		}
		return err
	}
	if parent.Type != domain.TypeFolder {
		return port.ErrParentNotFolder
	}
	return nil
}

// enqueueThumbnails queues derivative work for an image. A queue failure
// never fails the visible creation; the record exists, the derivatives just
// won't appear until a later pass.
func (s *uploadService) enqueueThumbnails(ctx context.Context, rec *domain.FileRecord) {
	job := domain.ThumbnailJob{UserID: rec.OwnerID, FileID: rec.ID}
	if err := s.core.queue.Enqueue(ctx, job); err != nil {
		logger.Warnw("Thumbnail enqueue failed", "file_id", rec.ID, "error", err.Error())
	}
}
