package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AuthStatus int

const (
	Unauthenticated AuthStatus = iota
	Authenticated
	Invalid
)

func (s AuthStatus) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Invalid:
		return "invalid"
	default:
		return "unauthenticated"
	}
}

// AuthResult is the outcome of resolving a request's session token. Every
// route handles all three states explicitly.
type AuthResult struct {
	Status   AuthStatus
	Identity Identity
	Err      error
}

// Require converts anything but Authenticated into a 401.
func (r AuthResult) Require() (Identity, error) {
	switch r.Status {
	case Authenticated:
		return r.Identity, nil
	case Invalid:
		return Identity{}, apperrors.Unauthorized("Invalid session token")
	default:
		return Identity{}, apperrors.Unauthorized("Authentication required")
	}
}

type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

type Resolver struct {
	tokens     TokenVerifier
	cookieName string
	log        *logger.Logger
}

func NewResolver(tokens TokenVerifier, cookieName string, log *logger.Logger) *Resolver {
	return &Resolver{
		tokens:     tokens,
		cookieName: cookieName,
		log:        log,
	}
}

// Resolve reads the session cookie, falling back to a bearer Authorization
// header, and verifies it.
func (res *Resolver) Resolve(r *http.Request) AuthResult {
	token := res.extractToken(r)
	if token == "" {
		return AuthResult{Status: Unauthenticated}
	}

	identity, err := res.tokens.Verify(token)
	if err != nil {
		res.log.Warn("Session token rejected", "path", r.URL.Path, "error", err)
		return AuthResult{Status: Invalid, Err: err}
	}
	return AuthResult{Status: Authenticated, Identity: identity}
}

func (res *Resolver) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(res.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authz := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// Protect wraps a route so it only runs for authenticated callers; the
// identity is available through IdentityFrom.
func (res *Resolver) Protect(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, err := res.Resolve(r).Require()
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				res.log.Error("failed to write error response", "handler", "Protect", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
	}
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
