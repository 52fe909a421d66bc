package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"staybook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "token"

func newTestResolver(t *testing.T) (*Resolver, *TokenService) {
	t.Helper()
	tokens := NewTokenService("test-secret", 0)
	return NewResolver(tokens, testCookie, logger.Discard()), tokens
}

func TestResolver_Resolve(t *testing.T) {
	resolver, tokens := newTestResolver(t)
	identity := Identity{UserID: "u1", Email: "a@x.com"}
	token, err := tokens.Issue(identity)
	require.NoError(t, err)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus AuthStatus
	}{
		{
			name:       "no token",
			prepare:    func(r *http.Request) {},
			wantStatus: Unauthenticated,
		},
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookie, Value: token})
			},
			wantStatus: Authenticated,
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: Authenticated,
		},
		{
			name: "invalid cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookie, Value: "forged"})
			},
			wantStatus: Invalid,
		},
		{
			name: "non-bearer header ignored",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
			wantStatus: Unauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			tt.prepare(req)

			result := resolver.Resolve(req)
			assert.Equal(t, tt.wantStatus, result.Status, "status %s", result.Status)
			if tt.wantStatus == Authenticated {
				assert.Equal(t, identity, result.Identity)
			}
			if tt.wantStatus == Invalid {
				assert.ErrorIs(t, result.Err, ErrInvalidToken)
			}
		})
	}
}

func TestAuthResult_Require(t *testing.T) {
	_, err := AuthResult{Status: Unauthenticated}.Require()
	assert.Error(t, err)

	_, err = AuthResult{Status: Invalid, Err: ErrInvalidToken}.Require()
	assert.Error(t, err)

	identity, err := AuthResult{Status: Authenticated, Identity: Identity{UserID: "u1"}}.Require()
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
}

func TestResolver_Protect(t *testing.T) {
	resolver, tokens := newTestResolver(t)
	token, err := tokens.Issue(Identity{UserID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	var seen Identity
	handler := resolver.Protect(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("rejects anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/places", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects forged token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/places", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token + "x"})
		w := httptest.NewRecorder()
		handler(w, req, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes identity through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/places", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
		w := httptest.NewRecorder()
		handler(w, req, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "u1", seen.UserID)
	})
}

func TestCookieIssuer(t *testing.T) {
	w := httptest.NewRecorder()
	NewCookieIssuer(testCookie, true).Set(w, "abc")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)

	w = httptest.NewRecorder()
	NewCookieIssuer(testCookie, false).Clear(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
