package auth

import "net/http"

type CookieIssuer struct {
	name   string
	secure bool
}

// NewCookieIssuer builds session cookies. Secure cookies use SameSite=None so
// a cross-origin frontend sending credentials still receives them.
func NewCookieIssuer(name string, secure bool) *CookieIssuer {
	return &CookieIssuer{name: name, secure: secure}
}

func (c *CookieIssuer) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, 0))
}

// Clear instructs the client to discard its session. The token itself stays
// valid server-side.
func (c *CookieIssuer) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c *CookieIssuer) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if c.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: sameSite,
	}
}
