package service

import (
	"context"
	"io"
	"mime"
	"path/filepath"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
)

const fallbackContentType = "application/octet-stream"

// retrievalService resolves a record (optionally a derivative size) to a
// byte stream, gated by access control.
type retrievalService struct {
	core *FileServiceImpl
}

// newRetrievalService creates the retrieval use-case service.
func newRetrievalService(core *FileServiceImpl) *retrievalService {
	return &retrievalService{core: core}
}

// content returns the record's bytes and inferred content type. Anonymous
// requesters are allowed; they can only reach public records. A missing
// derivative reads as not-found, which is the normal not-ready-yet state.
func (s *retrievalService) content(ctx context.Context, token string, fileID int64, size int) (io.ReadCloser, string, error) {
	requester, err := s.core.resolveRequester(ctx, token)
	if err != nil {
		requester = anonymousID
	}

	rec, err := s.core.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	if !canRead(requester, rec) {
		return nil, "", port.ErrNotFound
	}
	if rec.Type == domain.TypeFolder {
		return nil, "", port.ErrFolderHasNoData
	}

	handle := rec.LocalPath
	if size != 0 {
		if !domain.IsValidThumbnailSize(size) {
			return nil, "", port.ErrNotFound
		}
		handle = domain.DerivativeHandle(rec.LocalPath, size)
	}

	if !s.core.blobs.Exists(ctx, handle) {
		return nil, "", port.ErrNotFound
	}

	stream, err := s.core.blobs.Open(ctx, handle)
	if err != nil {
		return nil, "", err
	}

	return stream, contentTypeFor(rec.Name), nil
}

// contentTypeFor infers a content type from the record name's extension,
// falling back to a generic binary type.
func contentTypeFor(name string) string {
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		return fallbackContentType
	}
	return ct
}
