package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mediaerrors "staybook/internal/media/errors"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndServe(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	payload := []byte("\xff\xd8\xff fake jpeg")
	require.NoError(t, store.Save(context.Background(), "abc.jpg", bytes.NewReader(payload), int64(len(payload)), "image/jpeg"))

	onDisk, err := os.ReadFile(filepath.Join(dir, "uploads", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/abc.jpg", nil)
	require.NoError(t, store.Serve(rec, req, "abc.jpg"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())

	entries, err := os.ReadDir(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../evil.jpg", "a/b.jpg", `..\evil.jpg`, "", ".."} {
		err := store.Save(context.Background(), name, strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, mediaerrors.ErrInvalidName, "name %q", name)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/x", nil)
	assert.ErrorIs(t, store.Serve(rec, req, "../../etc/passwd"), mediaerrors.ErrNotFound)
}

func TestDiskStore_ServeMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/nope.jpg", nil)
	assert.ErrorIs(t, store.Serve(rec, req, "nope.jpg"), mediaerrors.ErrNotFound)
	assert.Equal(t, 0, rec.Body.Len(), "nothing should be written for a missing file")
}

type fakeS3 struct {
	putInput     *s3.PutObjectInput
	putBody      []byte
	putErr       error
	presignInput *s3.GetObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putInput = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.putBody = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.presignInput = params
	return &v4.PresignedHTTPRequest{
		URL:    "https://media.example.com/" + *params.Key + "?X-Amz-Signature=abc",
		Method: http.MethodGet,
	}, nil
}

func newFakeS3Store(fake *fakeS3) *S3Store {
	return &S3Store{client: fake, presigner: fake, bucket: "media", expiry: time.Minute}
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	store := newFakeS3Store(fake)

	require.NoError(t, store.Save(context.Background(), "abc.png", strings.NewReader("png"), 3, "image/png"))

	require.NotNil(t, fake.putInput)
	assert.Equal(t, "media", *fake.putInput.Bucket)
	assert.Equal(t, "abc.png", *fake.putInput.Key)
	assert.Equal(t, "image/png", *fake.putInput.ContentType)
	assert.Equal(t, int64(3), *fake.putInput.ContentLength)
	assert.Equal(t, []byte("png"), fake.putBody)
}

func TestS3Store_SaveErrors(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("access denied")}
	store := newFakeS3Store(fake)

	err := store.Save(context.Background(), "abc.png", strings.NewReader("png"), 3, "")
	assert.ErrorContains(t, err, "access denied")

	err = store.Save(context.Background(), "dir/abc.png", strings.NewReader("png"), 3, "")
	assert.ErrorIs(t, err, mediaerrors.ErrInvalidName)
}

func TestS3Store_ServeRedirectsToPresignedURL(t *testing.T) {
	fake := &fakeS3{}
	store := newFakeS3Store(fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/abc.png", nil)
	require.NoError(t, store.Serve(rec, req, "abc.png"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://media.example.com/abc.png?X-Amz-Signature=abc", rec.Header().Get("Location"))
	assert.Equal(t, "abc.png", *fake.presignInput.Key)
}
