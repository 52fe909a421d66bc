package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	mediaerrors "staybook/internal/media/errors"
	"staybook/internal/media/storage"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/sanitizer"

	"github.com/google/uuid"
)

// BrowserUserAgent is sent when fetching remote images; several image hosts
// refuse requests without a browser-like agent.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.6045.200 Safari/537.3"

const linkExtension = ".jpg"

var extensionRegex = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

type MediaService interface {
	IngestFromURL(ctx context.Context, link string) (string, error)
	IngestUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type mediaService struct {
	store  storage.Store
	client HTTPDoer
	cfg    *config.Config
	newID  func() string
}

func NewMediaService(store storage.Store, client HTTPDoer, cfg *config.Config) MediaService {
	return &mediaService{
		store:  store,
		client: client,
		cfg:    cfg,
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *mediaService) IngestFromURL(ctx context.Context, link string) (string, error) {
	link = strings.TrimSpace(link)
	target, err := url.Parse(link)
	if err != nil || target.Host == "" {
		return "", apperrors.InvalidInput("A valid image link is required")
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return "", apperrors.InvalidInput(mediaerrors.ErrUnsupportedScheme.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.MediaFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", apperrors.InvalidInput("A valid image link is required")
	}
	req.Header.Set("User-Agent", BrowserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.cfg.Log.Warn("Image download failed", "host", target.Host, "error", err)
		return "", apperrors.BadGateway(mediaerrors.ErrUpstream.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.cfg.Log.Warn("Image host answered with an error", "host", target.Host, "status", resp.StatusCode)
		return "", apperrors.BadGateway(mediaerrors.ErrUpstream.Error(),
			fmt.Errorf("%w: upstream status %d", mediaerrors.ErrUpstream, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxUploadSize+1))
	if err != nil {
		return "", apperrors.BadGateway(mediaerrors.ErrUpstream.Error(), err)
	}
	if int64(len(data)) > s.cfg.MaxUploadSize {
		return "", apperrors.Validation(mediaerrors.ErrTooLarge.Error(), map[string]any{"limit": s.cfg.MaxUploadSize})
	}

	name := s.newID() + linkExtension
	if err := s.store.Save(ctx, name, bytes.NewReader(data), int64(len(data)), resp.Header.Get("Content-Type")); err != nil {
		s.cfg.Log.Error("Failed to store downloaded image", "name", name, "error", err)
		return "", apperrors.Internal("Failed to store image", err)
	}

	s.cfg.Log.Info("Image ingested from link", "name", name, "host", target.Host, "bytes", len(data))
	return name, nil
}

func (s *mediaService) IngestUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.cfg.MaxUploadFiles {
		return nil, apperrors.InvalidInput(fmt.Sprintf("At most %d files can be uploaded at once", s.cfg.MaxUploadFiles))
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		name := s.newID() + extensionOf(fh.Filename)
		if err := s.saveUpload(ctx, name, fh); err != nil {
			s.cfg.Log.Error("Failed to store upload", "name", name, "original", fh.Filename, "error", err)
			return nil, apperrors.Internal("Failed to store upload", err)
		}
		names = append(names, sanitizer.MediaRef(name))
	}

	s.cfg.Log.Info("Files uploaded", "count", len(names))
	return names, nil
}

func (s *mediaService) saveUpload(ctx context.Context, name string, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return s.store.Save(ctx, name, f, fh.Size, fh.Header.Get("Content-Type"))
}

// extensionOf keeps the client's file extension when it looks like one.
func extensionOf(filename string) string {
	ext := path.Ext(sanitizer.MediaRef(filename))
	if !extensionRegex.MatchString(ext) {
		return ""
	}
	return ext
}

// IsNotFound reports whether err means the requested media does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, mediaerrors.ErrNotFound)
}
