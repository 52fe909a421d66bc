package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	mediaerrors "staybook/internal/media/errors"
	"staybook/pkg/sanitizer"
)

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(name string) (string, error) {
	clean := sanitizer.MediaRef(name)
	if clean == "" || clean != name {
		return "", fmt.Errorf("%w: %q", mediaerrors.ErrInvalidName, name)
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *DiskStore) Save(ctx context.Context, name string, body io.ReadSeeker, size int64, contentType string) error {
	target, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

func (s *DiskStore) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	target, err := s.path(name)
	if err != nil {
		return mediaerrors.ErrNotFound
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mediaerrors.ErrNotFound
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return mediaerrors.ErrNotFound
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}
