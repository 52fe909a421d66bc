package handler

import (
	"net/http"

	"staybook/internal/places/service"
	"staybook/pkg/auth"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PlaceHandler struct {
	service  service.PlaceService
	resolver *auth.Resolver
	log      *logger.Logger
}

func NewPlaceHandler(service service.PlaceService, resolver *auth.Resolver, log *logger.Logger) *PlaceHandler {
	return &PlaceHandler{
		service:  service,
		resolver: resolver,
		log:      log,
	}
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFrom(r.Context())

	var input model.PlaceInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	place, err := h.service.Create(r.Context(), identity.UserID, &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFrom(r.Context())

	var update model.PlaceUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	place, err := h.service.Update(r.Context(), identity.UserID, &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFrom(r.Context())

	places, err := h.service.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	place, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, place); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	places, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, places); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PlaceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/places", h.resolver.Protect(h.Create))
	router.PUT("/places", h.resolver.Protect(h.Update))
	router.GET("/places", h.resolver.Protect(h.ListMine))
	router.GET("/places/:id", h.GetByID)
	router.GET("/allplaces", h.ListAll)
}
