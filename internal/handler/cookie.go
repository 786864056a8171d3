package handler

import (
	"net/http"
	"time"

	"edu-backoffice/internal/middleware"
)

// CookieTransport writes and clears the session cookie. Set and Clear share
// one attribute set so the browser always matches the cookie on logout.
type CookieTransport struct {
	Domain string
	Secure bool
}

func NewCookieTransport(domain string, secure bool) *CookieTransport {
	return &CookieTransport{Domain: domain, Secure: secure}
}

func (c *CookieTransport) Set(w http.ResponseWriter, token string, ttl time.Duration) {
	cookie := c.base()
	cookie.Value = token
	cookie.MaxAge = int(ttl.Seconds())
	cookie.Expires = time.Now().Add(ttl).UTC()
	http.SetCookie(w, cookie)
}

func (c *CookieTransport) Clear(w http.ResponseWriter) {
	cookie := c.base()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, cookie)
}

func (c *CookieTransport) base() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
