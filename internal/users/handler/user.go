package handler

import (
	"net/http"

	"staybook/internal/users/service"
	"staybook/pkg/auth"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service  service.UserService
	resolver *auth.Resolver
	cookies  *auth.CookieIssuer
	log      *logger.Logger
}

func NewUserHandler(service service.UserService, resolver *auth.Resolver, cookies *auth.CookieIssuer, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		resolver: resolver,
		cookies:  cookies,
		log:      log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Register", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	h.cookies.Set(w, token)
	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

// Profile answers null for anonymous callers rather than 401, which the web
// client uses to probe whether a session exists.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result := h.resolver.Resolve(r)

	switch result.Status {
	case auth.Unauthenticated:
		if err := httputil.WriteNull(w); err != nil {
			h.log.Error("failed to write null response", "handler", "Profile", "operation", "WriteNull", "error", err)
		}
		return
	case auth.Invalid:
		_, err := result.Require()
		h.writeError(w, "Profile", err)
		return
	}

	profile, err := h.service.Profile(r.Context(), result.Identity.UserID)
	if err != nil {
		h.writeError(w, "Profile", err)
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Profile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.cookies.Clear(w)
	if err := httputil.WriteMessage(w, "Logged out successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "Logout", "operation", "WriteMessage", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/profile", h.Profile)
	router.POST("/logout", h.Logout)
}
