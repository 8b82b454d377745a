package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/esi"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrPhoneRequired     = errors.New("phone is required")
	ErrUserNotFound      = errors.New("user not found")
	ErrNotAdmin          = errors.New("forbidden")
	ErrMachineIDRequired = errors.New("machineId is required")
)

// dashboardStatuses are the orders shown on the orders page.
var dashboardStatuses = []string{model.StatusPaid, model.StatusReceived}

// Signer issues session tokens.
type Signer interface {
	Sign(s model.Session) (string, error)
}

// upstreamError marks a failure of the vendor API.
type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string { return e.err.Error() }
func (e *upstreamError) Unwrap() error { return e.err }

type Controller struct {
	repo   repository.Repository
	esi    esi.Source
	signer Signer
	log    *zap.Logger
}

type ControllerParams struct {
	fx.In

	Logger *zap.Logger
	Repo   repository.Repository
	ESI    esi.Source
	Signer Signer
}

func NewController(p ControllerParams) (*Controller, error) {
	return &Controller{
		log:    p.Logger,
		repo:   p.Repo,
		esi:    p.ESI,
		signer: p.Signer,
	}, nil
}

// Login issues a session token for the admin owning phone.
func (c *Controller) Login(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ErrPhoneRequired
	}

	u, err := c.repo.UserByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !u.IsAdmin {
		return "", ErrNotAdmin
	}

	return c.signer.Sign(model.Session{
		UID:     u.ID,
		Phone:   u.Phone,
		IsAdmin: true,
	})
}

type OrdersMeta struct {
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
	Count    int      `json:"count"`
	Statuses []string `json:"statuses"`
}

type OrdersResult struct {
	Meta OrdersMeta    `json:"meta"`
	Rows []model.Order `json:"rows"`
}

// Orders lists paid and received orders, newest payment first.
func (c *Controller) Orders(ctx context.Context, limit, offset int) (*OrdersResult, error) {
	rows, err := c.repo.ListOrders(ctx, repository.OrdersQuery{
		Statuses: dashboardStatuses,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &OrdersResult{
		Meta: OrdersMeta{
			Limit:    limit,
			Offset:   offset,
			Count:    len(rows),
			Statuses: dashboardStatuses,
		},
		Rows: rows,
	}, nil
}

type FinanceResult struct {
	Meta   FinanceQuery         `json:"meta"`
	Rows   []model.FinanceByBox `json:"rows"`
	Totals model.FinanceTotals  `json:"totals"`
}

func (c *Controller) Finance(ctx context.Context, q FinanceQuery) (*FinanceResult, error) {
	rows, err := c.repo.FinanceByBoxes(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("finance by boxes: %w", err)
	}

	return &FinanceResult{
		Meta:   q,
		Rows:   rows,
		Totals: report.Summarize(rows),
	}, nil
}

type SeriesResult struct {
	Meta   FinanceQuery        `json:"meta"`
	Rows   []model.SeriesRow   `json:"rows"`
	Points []model.SeriesPoint `json:"points,omitempty"`
}

// Series returns revenue per bucket. Points, the gap-free version, are
// only available when the range is bounded on both ends, and a range
// wider than report.MaxFillDays is rejected.
func (c *Controller) Series(ctx context.Context, q FinanceQuery) (*SeriesResult, error) {
	if q.From != nil && q.To != nil {
		if err := report.CheckFillRange(*q.From, *q.To); err != nil {
			return nil, err
		}
	}

	rows, err := c.repo.FinanceSeries(ctx, q.filter(), q.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("finance series: %w", err)
	}

	res := &SeriesResult{Meta: q, Rows: rows}
	if q.From != nil && q.To != nil {
		res.Points = report.FillSeries(rows, *q.From, *q.To, q.GroupBy)
	}
	return res, nil
}

type TopProductsResult struct {
	Meta FinanceQuery       `json:"meta"`
	Rows []model.TopProduct `json:"rows"`
}

func (c *Controller) TopProducts(ctx context.Context, q FinanceQuery) (*TopProductsResult, error) {
	rows, err := c.repo.TopProducts(ctx, q.filter(), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return &TopProductsResult{Meta: q, Rows: rows}, nil
}

func (c *Controller) Boxes(ctx context.Context) ([]model.Box, error) {
	boxes, err := c.repo.Boxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	return boxes, nil
}

func (c *Controller) machines(ctx context.Context) (map[string]model.Machine, error) {
	machines, err := c.esi.Machines(ctx)
	if err != nil && !errors.Is(err, esi.ErrTokenNotSet) {
		return nil, &upstreamError{err: err}
	}
	return machines, err
}

// BoxesOverview merges live machine state with the boxes table.
func (c *Controller) BoxesOverview(ctx context.Context) ([]model.BoxOverview, error) {
	machines, err := c.machines(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := c.repo.BoxesMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("boxes meta: %w", err)
	}

	return report.Overview(machines, meta), nil
}

func (c *Controller) Machines(ctx context.Context) ([]model.MachineStats, error) {
	machines, err := c.machines(ctx)
	if err != nil {
		return nil, err
	}
	return report.AllStats(machines), nil
}

// MachineCells lists the cells of one machine with their pins.
func (c *Controller) MachineCells(ctx context.Context, machineID string) ([]model.CellPin, error) {
	machineID = strings.TrimSpace(machineID)
	if machineID == "" {
		return nil, ErrMachineIDRequired
	}

	machines, err := c.machines(ctx)
	if err != nil {
		return nil, err
	}

	m, ok := machines[machineID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", esi.ErrMachineNotFound, machineID)
	}

	return report.CellPins(m), nil
}
