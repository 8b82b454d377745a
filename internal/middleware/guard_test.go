package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	return r
}

func Test_GuardRequireAdmin(t *testing.T) {
	c := newCodec(t, testSecret, &testClock{t: time.Now()})
	g := NewGuard(c)

	t.Run("no token", func(t *testing.T) {
		_, err := g.RequireAdmin(requestWithToken(""))
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, StatusFor(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := g.RequireAdmin(requestWithToken("garbage"))
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := g.RequireAdmin(requestWithToken(nonAdminToken(t)))
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, http.StatusForbidden, StatusFor(err))
	})

	t.Run("admin", func(t *testing.T) {
		s, err := g.RequireAdmin(requestWithToken(adminToken(t, c)))
		require.NoError(t, err)
		assert.Equal(t, model.Session{UID: 1, Phone: "79990000000", IsAdmin: true}, s)
	})

	t.Run("misconfigured", func(t *testing.T) {
		_, err := NewGuard(&session.Codec{}).RequireAdmin(requestWithToken("x"))
		assert.ErrorIs(t, err, session.ErrSecretNotSet)
		assert.Equal(t, http.StatusInternalServerError, StatusFor(err))
	})
}

func Test_StatusForUnknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}
