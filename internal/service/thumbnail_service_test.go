package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/filekeeper/go-files-manager/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

// memBlobStore keeps blobs in a map so generated derivatives can be
// inspected without touching the filesystem.
type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) NewHandle() string { return "mem-handle" }

func (m *memBlobStore) Write(_ context.Context, handle string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[handle] = data
	return nil
}

func (m *memBlobStore) Exists(_ context.Context, handle string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[handle]
	return ok
}

func (m *memBlobStore) Open(_ context.Context, handle string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[handle]
	if !ok {
		return nil, port.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailService_Process(t *testing.T) {
	rec := &domain.FileRecord{ID: 7, OwnerID: 42, Name: "cat.png", Type: domain.TypeImage, LocalPath: "blob-7"}

	t.Run("generates every size with preserved aspect ratio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		blobs := newMemBlobStore()
		blobs.blobs["blob-7"] = pngBytes(t, 80, 40)

		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(rec, nil)

		svc := NewThumbnailService(files, blobs)
		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, size := range domain.ThumbnailSizes {
			handle := domain.DerivativeHandle("blob-7", size)
			if !blobs.Exists(context.Background(), handle) {
				t.Fatalf("missing derivative %s", handle)
			}
		}

		thumb, err := imaging.Decode(bytes.NewReader(blobs.blobs["blob-7_100"]))
		if err != nil {
			t.Fatalf("decode derivative: %v", err)
		}
		b := thumb.Bounds()
		if b.Dx() != 100 || b.Dy() != 50 {
			t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("tall image scales its height to the target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		tall := &domain.FileRecord{ID: 8, OwnerID: 42, Name: "tower.png", Type: domain.TypeImage, LocalPath: "blob-8"}
		blobs := newMemBlobStore()
		blobs.blobs["blob-8"] = pngBytes(t, 40, 80)

		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(8)).Return(tall, nil)

		svc := NewThumbnailService(files, blobs)
		if err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 8}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		thumb, err := imaging.Decode(bytes.NewReader(blobs.blobs["blob-8_100"]))
		if err != nil {
			t.Fatalf("decode derivative: %v", err)
		}
		b := thumb.Bounds()
		if b.Dx() != 50 || b.Dy() != 100 {
			t.Fatalf("expected 50x100, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("redelivered job overwrites cleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		blobs := newMemBlobStore()
		blobs.blobs["blob-7"] = pngBytes(t, 80, 40)

		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(rec, nil).Times(2)

		svc := NewThumbnailService(files, blobs)
		if err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7}); err != nil {
			t.Fatalf("first run: %v", err)
		}
		if err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7}); err != nil {
			t.Fatalf("second run: %v", err)
		}
	})

	t.Run("missing file_id is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewThumbnailService(mocks.NewMockFileRepository(ctrl), newMemBlobStore())

		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42})
		if !errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected terminal error, got %v", err)
		}
	})

	t.Run("missing user_id is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewThumbnailService(mocks.NewMockFileRepository(ctrl), newMemBlobStore())

		err := svc.Process(context.Background(), domain.ThumbnailJob{FileID: 7})
		if !errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected terminal error, got %v", err)
		}
	})

	t.Run("vanished record is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(nil, port.ErrNotFound)

		svc := NewThumbnailService(files, newMemBlobStore())
		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7})
		if !errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected terminal error, got %v", err)
		}
	})

	t.Run("repository outage is retryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(nil, errors.New("connection reset"))

		svc := NewThumbnailService(files, newMemBlobStore())
		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7})
		if err == nil || errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected retryable error, got %v", err)
		}
	})

	t.Run("missing blob is retryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(rec, nil)

		svc := NewThumbnailService(files, newMemBlobStore())
		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7})
		if err == nil || errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected retryable error, got %v", err)
		}
	})

	t.Run("undecodable content is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		files := mocks.NewMockFileRepository(ctrl)
		blobs := newMemBlobStore()
		blobs.blobs["blob-7"] = []byte("not an image at all")

		files.EXPECT().FindByOwnerAndID(gomock.Any(), int64(42), int64(7)).Return(rec, nil)

		svc := NewThumbnailService(files, blobs)
		err := svc.Process(context.Background(), domain.ThumbnailJob{UserID: 42, FileID: 7})
		if !errors.Is(err, port.ErrTerminalJob) {
			t.Fatalf("expected terminal error, got %v", err)
		}
	})
}
