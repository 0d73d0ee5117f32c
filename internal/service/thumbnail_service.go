package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/disintegration/imaging"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/filekeeper/go-files-manager/pkg/resilience"
)

// ThumbnailService generates the fixed-size derivative set for queued
// image records. It runs in the worker process, decoupled from the API.
type ThumbnailService struct {
	files port.FileRepository
	blobs port.BlobStore
}

// NewThumbnailService builds the worker-side service.
func NewThumbnailService(files port.FileRepository, blobs port.BlobStore) *ThumbnailService {
	return &ThumbnailService{files: files, blobs: blobs}
}

// Process handles one dequeued job: validate, re-fetch the record, and
// generate every target size. Errors wrapping port.ErrTerminalJob mean the
// job can never succeed and must not be redelivered; any other error leaves
// the job to the queue's retry policy. Derivative writes overwrite, so a
// redelivered job is idempotent.
func (s *ThumbnailService) Process(ctx context.Context, job domain.ThumbnailJob) error {
	if job.FileID == 0 {
		return fmt.Errorf("%w: missing file_id", port.ErrTerminalJob)
	}
	if job.UserID == 0 {
		return fmt.Errorf("%w: missing user_id", port.ErrTerminalJob)
	}

	rec, err := s.files.FindByOwnerAndID(ctx, job.UserID, job.FileID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return fmt.Errorf("%w: file not found", port.ErrTerminalJob)
		}
		return err
	}

	src, err := s.blobs.Open(ctx, rec.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open primary content for file %d: %w", rec.ID, err)
	}
	defer func() { _ = src.Close() }()

	img, err := imaging.Decode(src)
	if err != nil {
		return fmt.Errorf("%w: cannot decode source image: %v", port.ErrTerminalJob, err)
	}

	format, err := imaging.FormatFromFilename(rec.Name)
	if err != nil {
		format = imaging.JPEG
	}

	if err := s.generateAll(ctx, rec, img, format); err != nil {
		return err
	}

	logger.Infow("Thumbnails generated", "file_id", rec.ID, "owner_id", rec.OwnerID, "sizes", domain.ThumbnailSizes)
	return nil
}

// generateAll runs the target sizes concurrently and waits for all three
// attempts before reporting. Partial sets are visible to readers as
// not-ready sizes; a failed job is retried whole.
func (s *ThumbnailService) generateAll(ctx context.Context, rec *domain.FileRecord, img image.Image, format imaging.Format) error {
	pool := resilience.NewWorkerPool(len(domain.ThumbnailSizes), len(domain.ThumbnailSizes))

	var genErr error
	var errOnce sync.Once
	reportErr := func(err error) {
		errOnce.Do(func() { genErr = err })
	}

	for _, size := range domain.ThumbnailSizes {
		size := size
		err := pool.Submit(ctx, func() {
			if err := s.generate(ctx, rec, img, format, size); err != nil {
				reportErr(err)
			}
		})
		if err != nil {
			reportErr(err)
			break
		}
	}

	pool.Close()
	pool.Wait()
	return genErr
}

// generate writes one size variant next to the primary handle.
func (s *ThumbnailService) generate(ctx context.Context, rec *domain.FileRecord, img image.Image, format imaging.Format, size int) error {
	thumb := resizeLongEdge(img, size)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return fmt.Errorf("failed to encode %d variant of file %d: %w", size, rec.ID, err)
	}

	handle := domain.DerivativeHandle(rec.LocalPath, size)
	if err := s.blobs.Write(ctx, handle, &buf); err != nil {
		return fmt.Errorf("failed to store %d variant of file %d: %w", size, rec.ID, err)
	}
	return nil
}

// resizeLongEdge scales the image so its long edge hits target, preserving
// aspect ratio.
func resizeLongEdge(img image.Image, target int) image.Image {
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, target, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, target, imaging.Lanczos)
}
