package handler

import (
	"errors"
	"net/http"

	"staybook/internal/media/service"
	"staybook/internal/media/storage"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const (
	uploadField     = "photos"
	multipartMemory = 32 << 20
)

type MediaHandler struct {
	service service.MediaService
	store   storage.Store
	cfg     *config.Config
	log     *logger.Logger
}

func NewMediaHandler(service service.MediaService, store storage.Store, cfg *config.Config) *MediaHandler {
	return &MediaHandler{
		service: service,
		store:   store,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

type uploadByLinkRequest struct {
	Link string `json:"link"`
}

func (h *MediaHandler) UploadByLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req uploadByLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "UploadByLink", err)
		return
	}

	name, err := h.service.IngestFromURL(r.Context(), req.Link)
	if err != nil {
		h.writeError(w, "UploadByLink", err)
		return
	}

	if err := httputil.WriteSuccess(w, name); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadByLink", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Upload", apperrors.InvalidInput("Upload too large"))
			return
		}
		h.writeError(w, "Upload", apperrors.InvalidInput("Expected a multipart form"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	names, err := h.service.IngestUploads(r.Context(), r.MultipartForm.File[uploadField])
	if err != nil {
		h.writeError(w, "Upload", err)
		return
	}

	if err := httputil.WriteSuccess(w, names); err != nil {
		h.log.Error("failed to write success response", "handler", "Upload", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	if err := h.store.Serve(w, r, name); err != nil {
		if service.IsNotFound(err) {
			h.writeError(w, "Serve", apperrors.NotFound("Media"))
			return
		}
		h.log.Error("failed to serve media", "name", name, "error", err)
		h.writeError(w, "Serve", apperrors.Internal("Failed to serve media", err))
	}
}

func (h *MediaHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *MediaHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/upload-by-link", h.UploadByLink)
	router.POST("/upload", h.Upload)
	router.GET("/uploads/:name", h.Serve)
	router.HEAD("/uploads/:name", h.Serve)
}
