package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SetCookie(t *testing.T) {
	assert := assert.New(t)

	rr := httptest.NewRecorder()
	SetCookie(rr, "tok", CookieOptions{Secure: true})

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(CookieName, c.Name)
	assert.Equal("tok", c.Value)
	assert.Equal("/", c.Path)
	assert.Equal(30*24*60*60, c.MaxAge)
	assert.True(c.HttpOnly)
	assert.True(c.Secure)
	assert.Equal(http.SameSiteLaxMode, c.SameSite)
}

func Test_ClearCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearCookie(rr, CookieOptions{})

	header := rr.Header().Get("Set-Cookie")
	assert.Contains(t, header, "session=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.NotContains(t, header, "Secure")
}

func Test_TokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	assert.Equal(t, "", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	assert.Equal(t, "abc", TokenFromRequest(r))
}
