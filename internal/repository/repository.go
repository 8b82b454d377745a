package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
)

var (
	ErrNotFound = errors.New("not found")
)

type Repository interface {
	UserByPhone(ctx context.Context, phone string) (*model.User, error)
	ListOrders(ctx context.Context, q OrdersQuery) ([]model.Order, error)
	FinanceByBoxes(ctx context.Context, f FinanceFilter) ([]model.FinanceByBox, error)
	FinanceSeries(ctx context.Context, f FinanceFilter, groupBy report.GroupBy) ([]model.SeriesRow, error)
	TopProducts(ctx context.Context, f FinanceFilter, limit int) ([]model.TopProduct, error)
	Boxes(ctx context.Context) ([]model.Box, error)
	BoxesMeta(ctx context.Context) (map[string]model.BoxMeta, error)
}

type OrdersQuery struct {
	Statuses []string
	Limit    int
	Offset   int
}

// FinanceFilter narrows the revenue reports. Zero fields do not filter.
// To is inclusive: orders paid at any time on that day match.
type FinanceFilter struct {
	From     *time.Time
	To       *time.Time
	BoxIDs   []int64
	Statuses []string
}
