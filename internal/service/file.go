package service

import (
	"context"
	"errors"
	"io"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
)

// FileServiceImpl is the facade that wires use-case services for file
// operations.
type FileServiceImpl struct {
	files    port.FileRepository
	blobs    port.BlobStore
	queue    port.JobProducer
	sessions port.SessionStore

	uploadUseCase    *uploadService
	listingUseCase   *listingService
	retrievalUseCase *retrievalService
	publishUseCase   *publishService
}

// Ensure FileServiceImpl implements port.FileService.
var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService builds the file service facade and all use-case services.
func NewFileService(files port.FileRepository, blobs port.BlobStore, queue port.JobProducer, sessions port.SessionStore) *FileServiceImpl {
	svc := &FileServiceImpl{
		files:    files,
		blobs:    blobs,
		queue:    queue,
		sessions: sessions,
	}

	svc.uploadUseCase = newUploadService(svc)
	svc.listingUseCase = newListingService(svc)
	svc.retrievalUseCase = newRetrievalService(svc)
	svc.publishUseCase = newPublishService(svc)

	return svc
}

// Create delegates upload ingestion to the upload use-case service.
func (s *FileServiceImpl) Create(ctx context.Context, in port.CreateFileInput) (*domain.FileView, error) {
	return s.uploadUseCase.create(ctx, in)
}

// Get delegates the owner-scoped record fetch to the listing use-case.
func (s *FileServiceImpl) Get(ctx context.Context, token string, fileID int64) (*domain.FileView, error) {
	return s.listingUseCase.get(ctx, token, fileID)
}

// List delegates enumeration to the listing use-case service.
func (s *FileServiceImpl) List(ctx context.Context, in port.ListFilesInput) ([]domain.FileView, error) {
	return s.listingUseCase.list(ctx, in)
}

// SetPublic delegates visibility changes to the publish use-case service.
func (s *FileServiceImpl) SetPublic(ctx context.Context, token string, fileID int64, public bool) (*domain.FileView, error) {
	return s.publishUseCase.setPublic(ctx, token, fileID, public)
}

// Content delegates byte retrieval to the retrieval use-case service.
func (s *FileServiceImpl) Content(ctx context.Context, token string, fileID int64, size int) (io.ReadCloser, string, error) {
	return s.retrievalUseCase.content(ctx, token, fileID, size)
}

// resolveRequester maps a bearer token to a user identity, reporting any
// unresolved token as ErrUnauthorized.
func (s *FileServiceImpl) resolveRequester(ctx context.Context, token string) (int64, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, port.ErrUnauthorized) {
			return 0, port.ErrUnauthorized
		}
		return 0, err
	}
	return userID, nil
}
