package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieTransportSetAndClearMatch(t *testing.T) {
	transport := NewCookieTransport("example.com", true)

	setRec := httptest.NewRecorder()
	transport.Set(setRec, "signed-token", time.Hour)
	setCookies := setRec.Result().Cookies()
	require.Len(t, setCookies, 1)

	clearRec := httptest.NewRecorder()
	transport.Clear(clearRec)
	clearCookies := clearRec.Result().Cookies()
	require.Len(t, clearCookies, 1)

	set, cleared := setCookies[0], clearCookies[0]

	assert.Equal(t, "token", set.Name)
	assert.Equal(t, "signed-token", set.Value)
	assert.Equal(t, 3600, set.MaxAge)

	assert.Equal(t, set.Name, cleared.Name)
	assert.Equal(t, set.Domain, cleared.Domain)
	assert.Equal(t, set.Path, cleared.Path)
	assert.Equal(t, set.Secure, cleared.Secure)
	assert.Equal(t, set.HttpOnly, cleared.HttpOnly)
	assert.Equal(t, set.SameSite, cleared.SameSite)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.True(t, cleared.Expires.Before(time.Now()))

	header := clearRec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Domain=example.com")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Strict")
}

func TestCookieTransportInsecureForDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookieTransport("", false).Set(rec, "t", 24*time.Hour)

	cookie := rec.Result().Cookies()[0]
	assert.False(t, cookie.Secure)
	assert.Empty(t, cookie.Domain)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}
