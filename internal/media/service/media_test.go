package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	mediaerrors "staybook/internal/media/errors"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStore) Save(ctx context.Context, name string, body io.ReadSeeker, size int64, contentType string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	m.types[name] = contentType
	return nil
}

func (m *memoryStore) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	return mediaerrors.ErrNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Log:               logger.Discard(),
		MaxUploadFiles:    3,
		MaxUploadSize:     1024,
		MediaFetchTimeout: 5 * time.Second,
	}
}

func newTestService(store *memoryStore) *mediaService {
	svc := NewMediaService(store, http.DefaultClient, testConfig()).(*mediaService)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode())
}

func TestIngestFromURL_StoresImageWithBrowserAgent(t *testing.T) {
	var gotAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer upstream.Close()

	store := newMemoryStore()
	svc := newTestService(store)

	name, err := svc.IngestFromURL(context.Background(), upstream.URL+"/photo")
	require.NoError(t, err)

	assert.Equal(t, "id-1.jpg", name)
	assert.Equal(t, BrowserUserAgent, gotAgent)
	assert.Equal(t, []byte("jpeg-bytes"), store.objects[name])
	assert.Equal(t, "image/jpeg", store.types[name])
}

func TestIngestFromURL_Failures(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	huge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 2048))
	}))
	defer huge.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name       string
		link       string
		wantStatus int
	}{
		{name: "empty link", link: "", wantStatus: http.StatusBadRequest},
		{name: "ftp scheme", link: "ftp://example.com/a.jpg", wantStatus: http.StatusBadRequest},
		{name: "file scheme", link: "file:///etc/passwd", wantStatus: http.StatusBadRequest},
		{name: "upstream 404", link: notFound.URL + "/missing.jpg", wantStatus: http.StatusBadGateway},
		{name: "unreachable host", link: closedURL, wantStatus: http.StatusBadGateway},
		{name: "too large", link: huge.URL, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			svc := newTestService(store)

			_, err := svc.IngestFromURL(context.Background(), tt.link)
			requireStatus(t, err, tt.wantStatus)
			assert.Empty(t, store.objects, "nothing should be stored")
		})
	}
}

func buildFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := mw.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}

func TestIngestUploads_KeepsExtensions(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	names, err := svc.IngestUploads(context.Background(), buildFiles(t, "beach.PNG", "room.photo.jpeg", "noext"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1.PNG", "id-2.jpeg", "id-3"}, names)
	assert.Equal(t, []byte("content of room.photo.jpeg"), store.objects["id-2.jpeg"])
	for _, n := range names {
		assert.NotContains(t, n, "/")
		assert.NotContains(t, n, `\`)
	}
}

func TestIngestUploads_TooManyFiles(t *testing.T) {
	svc := newTestService(newMemoryStore())

	_, err := svc.IngestUploads(context.Background(), buildFiles(t, "a.jpg", "b.jpg", "c.jpg", "d.jpg"))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestIngestUploads_EmptyAndStoreFailure(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	names, err := svc.IngestUploads(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	store.saveErr = errors.New("disk full")
	_, err = svc.IngestUploads(context.Background(), buildFiles(t, "a.jpg"))
	requireStatus(t, err, http.StatusInternalServerError)
}

func TestExtensionOf(t *testing.T) {
	tests := map[string]string{
		"a.jpg":             ".jpg",
		"archive.tar.gz":    ".gz",
		"noext":             "",
		"weird.j p g":       "",
		`C:\dir\photo.webp`: ".webp",
		"trailingdot.":      "",
		strings.Repeat("a", 5) + ".averyveryverylongext": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, extensionOf(in), "extensionOf(%q)", in)
	}
}
