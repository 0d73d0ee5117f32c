package http_handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filekeeper/go-files-manager/internal/config"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileService struct {
	create    func(ctx context.Context, in port.CreateFileInput) (*domain.FileView, error)
	get       func(ctx context.Context, token string, fileID int64) (*domain.FileView, error)
	list      func(ctx context.Context, in port.ListFilesInput) ([]domain.FileView, error)
	setPublic func(ctx context.Context, token string, fileID int64, public bool) (*domain.FileView, error)
	content   func(ctx context.Context, token string, fileID int64, size int) (io.ReadCloser, string, error)
}

func (f *fakeFileService) Create(ctx context.Context, in port.CreateFileInput) (*domain.FileView, error) {
	return f.create(ctx, in)
}

func (f *fakeFileService) Get(ctx context.Context, token string, fileID int64) (*domain.FileView, error) {
	return f.get(ctx, token, fileID)
}

func (f *fakeFileService) List(ctx context.Context, in port.ListFilesInput) ([]domain.FileView, error) {
	return f.list(ctx, in)
}

func (f *fakeFileService) SetPublic(ctx context.Context, token string, fileID int64, public bool) (*domain.FileView, error) {
	return f.setPublic(ctx, token, fileID, public)
}

func (f *fakeFileService) Content(ctx context.Context, token string, fileID int64, size int) (io.ReadCloser, string, error) {
	return f.content(ctx, token, fileID, size)
}

type fakeUserService struct {
	register   func(ctx context.Context, email, password string) (*domain.UserView, error)
	me         func(ctx context.Context, token string) (*domain.UserView, error)
	connect    func(ctx context.Context, email, password string) (string, error)
	disconnect func(ctx context.Context, token string) error
}

func (f *fakeUserService) Register(ctx context.Context, email, password string) (*domain.UserView, error) {
	return f.register(ctx, email, password)
}

func (f *fakeUserService) Me(ctx context.Context, token string) (*domain.UserView, error) {
	return f.me(ctx, token)
}

func (f *fakeUserService) Connect(ctx context.Context, email, password string) (string, error) {
	return f.connect(ctx, email, password)
}

func (f *fakeUserService) Disconnect(ctx context.Context, token string) error {
	return f.disconnect(ctx, token)
}

type fakeStatus struct {
	redisOK, dbOK bool
	users, files  int64
	err           error
}

func (f *fakeStatus) Status(context.Context) (bool, bool) { return f.redisOK, f.dbOK }

func (f *fakeStatus) Stats(context.Context) (int64, int64, error) {
	return f.users, f.files, f.err
}

func newTestServer(files port.FileService, users port.UserService, status port.StatusReporter) *Server {
	return NewServer(config.DefaultConfig(), files, users, status)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestServer_Status(t *testing.T) {
	srv := newTestServer(nil, nil, &fakeStatus{redisOK: true, dbOK: true, users: 4, files: 30})

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["redis"])
	assert.True(t, body["db"])

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.NoError(t, err)
	var stats map[string]int64
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(4), stats["users"])
	assert.Equal(t, int64(30), stats["files"])
}

func TestServer_IndexQueryPresence(t *testing.T) {
	var seen port.ListFilesInput
	files := &fakeFileService{
		list: func(_ context.Context, in port.ListFilesInput) ([]domain.FileView, error) {
			seen = in
			return []domain.FileView{}, nil
		},
	}
	srv := newTestServer(files, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set(headerToken, "tok")
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, seen.ParentID)
	assert.Nil(t, seen.Page)
	assert.Equal(t, "tok", seen.Token)

	// parentId=0 is a real filter on the root, not the unscoped listing.
	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/files?parentId=0&page=1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, seen.ParentID)
	require.NotNil(t, seen.Page)
	assert.Equal(t, int64(0), *seen.ParentID)
	assert.Equal(t, 1, *seen.Page)
}

func TestServer_DataContentType(t *testing.T) {
	files := &fakeFileService{
		content: func(_ context.Context, _ string, fileID int64, size int) (io.ReadCloser, string, error) {
			assert.Equal(t, int64(7), fileID)
			assert.Equal(t, 250, size)
			return io.NopCloser(strings.NewReader("thumb bytes")), "image/png", nil
		},
	}
	srv := newTestServer(files, nil, nil)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/files/7/data?size=250", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "thumb bytes", string(data))
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not found", port.ErrNotFound, http.StatusNotFound, "Not found"},
		{"unauthorized", port.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"missing field", port.MissingField("name"), http.StatusBadRequest, "Missing name"},
		{"parent not found", port.ErrParentNotFound, http.StatusBadRequest, "Parent not found"},
		{"parent not folder", port.ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
		{"folder content", port.ErrFolderHasNoData, http.StatusBadRequest, "A folder doesn't have content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &fakeFileService{
				create: func(context.Context, port.CreateFileInput) (*domain.FileView, error) {
					return nil, tt.err
				},
			}
			srv := newTestServer(files, nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(`{"name":"x","type":"file"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := srv.app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.wantMessage, body["error"])
		})
	}
}

func TestServer_NonNumericIDReadsAsAbsent(t *testing.T) {
	srv := newTestServer(&fakeFileService{}, nil, nil)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/files/not-a-number", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Connect(t *testing.T) {
	users := &fakeUserService{
		connect: func(_ context.Context, email, password string) (string, error) {
			assert.Equal(t, "bob@dylan.com", email)
			assert.Equal(t, "toto1234!", password)
			return "session-token", nil
		},
	}
	srv := newTestServer(nil, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	creds := base64.StdEncoding.EncodeToString([]byte("bob@dylan.com:toto1234!"))
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "session-token", body["token"])
}

func TestServer_ConnectRejectsMalformedAuth(t *testing.T) {
	srv := newTestServer(nil, &fakeUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.Header.Set("Authorization", "Bearer nope")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_Disconnect(t *testing.T) {
	users := &fakeUserService{
		disconnect: func(_ context.Context, token string) error {
			assert.Equal(t, "tok", token)
			return nil
		},
	}
	srv := newTestServer(nil, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
	req.Header.Set(headerToken, "tok")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServer_Register(t *testing.T) {
	users := &fakeUserService{
		register: func(_ context.Context, email, _ string) (*domain.UserView, error) {
			return &domain.UserView{ID: 42, Email: email}, nil
		},
	}
	srv := newTestServer(nil, users, nil)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"bob@dylan.com","password":"toto1234!"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "bob@dylan.com", body["email"])
}
