package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/middleware"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/repository"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "dashboard-secret"

func ptr[T any](v T) *T { return &v }

type fakeRepo struct {
	users   map[string]*model.User
	orders  []model.Order
	finance []model.FinanceByBox
	series  []model.SeriesRow
	top     []model.TopProduct
	boxes   []model.Box
	meta    map[string]model.BoxMeta
	err     error

	lastOrders  repository.OrdersQuery
	lastFilter  repository.FinanceFilter
	lastGroupBy report.GroupBy
	lastLimit   int
}

var _ repository.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) UserByPhone(_ context.Context, phone string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[phone]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListOrders(_ context.Context, q repository.OrdersQuery) ([]model.Order, error) {
	f.lastOrders = q
	return f.orders, f.err
}

func (f *fakeRepo) FinanceByBoxes(_ context.Context, ff repository.FinanceFilter) ([]model.FinanceByBox, error) {
	f.lastFilter = ff
	return f.finance, f.err
}

func (f *fakeRepo) FinanceSeries(_ context.Context, ff repository.FinanceFilter, g report.GroupBy) ([]model.SeriesRow, error) {
	f.lastFilter = ff
	f.lastGroupBy = g
	return f.series, f.err
}

func (f *fakeRepo) TopProducts(_ context.Context, ff repository.FinanceFilter, limit int) ([]model.TopProduct, error) {
	f.lastFilter = ff
	f.lastLimit = limit
	return f.top, f.err
}

func (f *fakeRepo) Boxes(_ context.Context) ([]model.Box, error) {
	return f.boxes, f.err
}

func (f *fakeRepo) BoxesMeta(_ context.Context) (map[string]model.BoxMeta, error) {
	return f.meta, f.err
}

type fakeSource struct {
	machines map[string]model.Machine
	err      error
}

func (f *fakeSource) Machines(_ context.Context) (map[string]model.Machine, error) {
	return f.machines, f.err
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		users: map[string]*model.User{
			"79990000000": {ID: 1, Phone: "79990000000", IsAdmin: true},
			"79991111111": {ID: 2, Phone: "79991111111", IsAdmin: false},
		},
		meta: map[string]model.BoxMeta{
			"PST_0702": {ID: 7, Name: ptr("Ленина 1"), FullAddress: ptr("Казань, Ленина 1")},
		},
	}
}

func newSource() *fakeSource {
	return &fakeSource{machines: map[string]model.Machine{
		"PST_0702": {Online: true, Cells: map[string]model.Cell{
			"10": {State: "vacant", Pin: "1010"},
			"2":  {State: "occupied", Open: true, Pin: "2222"},
			"S":  {State: "broken"},
		}},
		"PST_0701": {Online: false, Cells: map[string]model.Cell{}},
	}}
}

func newTestCodec(t *testing.T) *session.Codec {
	t.Helper()
	c, err := session.NewCodec(testSecret)
	require.NoError(t, err)
	return c
}

func newTestServer(t *testing.T, codec *session.Codec, repo *fakeRepo, src *fakeSource) *Server {
	t.Helper()

	ctrl, err := NewController(ControllerParams{
		Logger: zap.NewNop(),
		Repo:   repo,
		ESI:    src,
		Signer: codec,
	})
	require.NoError(t, err)

	routes := middleware.DefaultRoutes()
	s, err := New(Params{
		Log:        zap.NewNop(),
		Config:     &config.Config{},
		Controller: ctrl,
		Gate:       middleware.NewGate(codec, routes, zap.NewNop()),
		Guard:      middleware.NewGuard(codec),
		Routes:     routes,
	})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) }
	return s
}

func adminToken(t *testing.T, codec *session.Codec) string {
	t.Helper()
	token, err := codec.Sign(model.Session{UID: 1, Phone: "79990000000", IsAdmin: true})
	require.NoError(t, err)
	return token
}

func do(s *Server, r *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
