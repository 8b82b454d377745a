package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "gate-secret"

var protectedPaths = []string{"/orders", "/boxes", "/unit", "/api/orders", "/api/esi/allBoxes", "/"}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func newCodec(t *testing.T, secret string, clk *testClock) *session.Codec {
	t.Helper()
	c, err := session.NewCodec(secret, session.WithClock(clk.now))
	require.NoError(t, err)
	return c
}

func adminToken(t *testing.T, c *session.Codec) string {
	t.Helper()
	token, err := c.Sign(model.Session{UID: 1, Phone: "79990000000", IsAdmin: true})
	require.NoError(t, err)
	return token
}

func nonAdminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      2,
		"phone":    "79991111111",
		"is_admin": false,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func serve(g *Gate, path, token string) (*httptest.ResponseRecorder, bool) {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rr := httptest.NewRecorder()

	calledNext := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calledNext = true
		w.WriteHeader(http.StatusOK)
	})

	g.Wrap(next).ServeHTTP(rr, r)
	return rr, calledNext
}

func assertLoginRedirect(t *testing.T, rr *httptest.ResponseRecorder, calledNext bool, path string) {
	t.Helper()
	assert.False(t, calledNext, path)
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code, path)

	loc, err := url.Parse(rr.Result().Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, path, loc.Query().Get("next"))
}

func Test_GateProtectedWithoutCookie(t *testing.T) {
	g := NewGate(newCodec(t, testSecret, &testClock{t: time.Now()}), DefaultRoutes(), zap.NewNop())

	for _, p := range protectedPaths {
		rr, calledNext := serve(g, p, "")
		assertLoginRedirect(t, rr, calledNext, p)
	}
}

func Test_GateProtectedRejectsBadTokens(t *testing.T) {
	clk := &testClock{t: time.Now()}
	c := newCodec(t, testSecret, clk)
	g := NewGate(c, DefaultRoutes(), zap.NewNop())

	foreign := adminToken(t, newCodec(t, "other-secret", clk))
	expired := adminToken(t, newCodec(t, testSecret, &testClock{t: time.Now().Add(-31 * 24 * time.Hour)}))

	for _, token := range []string{"garbage", foreign, expired, nonAdminToken(t)} {
		for _, p := range protectedPaths {
			rr, calledNext := serve(g, p, token)
			assertLoginRedirect(t, rr, calledNext, p)
		}
	}
}

func Test_GateProtectedAllowsAdmin(t *testing.T) {
	c := newCodec(t, testSecret, &testClock{t: time.Now()})
	g := NewGate(c, DefaultRoutes(), zap.NewNop())
	token := adminToken(t, c)

	for _, p := range protectedPaths {
		rr, calledNext := serve(g, p, token)
		assert.True(t, calledNext, p)
		assert.Equal(t, http.StatusOK, rr.Code, p)
	}
}

func Test_GateLoginPage(t *testing.T) {
	c := newCodec(t, testSecret, &testClock{t: time.Now()})
	g := NewGate(c, DefaultRoutes(), zap.NewNop())

	t.Run("admin is sent to landing without query", func(t *testing.T) {
		rr, calledNext := serve(g, "/login?next=/boxes&x=1", adminToken(t, c))
		assert.False(t, calledNext)
		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Equal(t, "/orders", rr.Result().Header.Get("Location"))
	})

	for name, token := range map[string]string{
		"no cookie":      "",
		"invalid cookie": "garbage",
		"non admin":      nonAdminToken(t),
	} {
		t.Run(name+" renders login", func(t *testing.T) {
			rr, calledNext := serve(g, "/login?next=/orders", token)
			assert.True(t, calledNext)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func Test_GatePublicRoutes(t *testing.T) {
	g := NewGate(newCodec(t, testSecret, &testClock{t: time.Now()}), DefaultRoutes(), zap.NewNop())

	for _, p := range []string{"/api/auth/login", "/api/auth/logout", "/static/app.css", "/favicon.ico"} {
		for _, token := range []string{"", "garbage"} {
			rr, calledNext := serve(g, p, token)
			assert.True(t, calledNext, p)
			assert.Equal(t, http.StatusOK, rr.Code, p)
		}
	}
}

func Test_GateScenario(t *testing.T) {
	clk := &testClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	c := newCodec(t, testSecret, clk)
	g := NewGate(c, DefaultRoutes(), zap.NewNop())

	token := adminToken(t, c)

	_, calledNext := serve(g, "/orders", token)
	assert.True(t, calledNext)

	rr, calledNext := serve(g, "/orders", "garbage")
	assertLoginRedirect(t, rr, calledNext, "/orders")

	clk.t = clk.t.Add(30*24*time.Hour + time.Second)
	rr, calledNext = serve(g, "/orders", token)
	assertLoginRedirect(t, rr, calledNext, "/orders")
}

func Test_GateMisconfiguredCodec(t *testing.T) {
	g := NewGate(&session.Codec{}, DefaultRoutes(), zap.NewNop())

	for _, p := range []string{"/orders", "/login"} {
		rr, calledNext := serve(g, p, "some-token")
		assert.False(t, calledNext, p)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, p)
	}

	_, calledNext := serve(g, "/api/auth/login", "some-token")
	assert.True(t, calledNext)
}

func Test_DecideIsPure(t *testing.T) {
	require := require.New(t)
	g := NewGate(newCodec(t, testSecret, &testClock{t: time.Now()}), DefaultRoutes(), zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/unit?dateFrom=2026-01-01", nil)
	d, err := g.Decide(r)
	require.NoError(err)
	require.Equal(RedirectToLogin, d.Action)
	require.Equal("/login?next=%2Funit", d.Location)
}
