package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Postgres implements Repository on the production schema (users,
// orders, products, cells, boxes).
type Postgres struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

var _ Repository = (*Postgres)(nil)

type postgresParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// NewPostgres opens the connection pool and closes it when the app stops.
func NewPostgres(p postgresParams) (Repository, error) {
	dsn, err := p.Config.DatabaseURL()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	r := &Postgres{pool: pool, log: p.Log}

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				// only log, the pool reconnects on demand
				r.log.Warn("postgres is not reachable yet", zap.Error(err))
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			pool.Close()
			return nil
		},
	})

	return r, nil
}

// NewPostgresFromPool wraps an existing pool.
func NewPostgresFromPool(pool *pgxpool.Pool, log *zap.Logger) *Postgres {
	return &Postgres{pool: pool, log: log}
}

func (r *Postgres) UserByPhone(ctx context.Context, phone string) (*model.User, error) {
	var (
		u       model.User
		isAdmin *bool
	)
	err := r.pool.QueryRow(ctx, `
		select id, phone, is_admin
		from public.users
		where phone = $1
		limit 1
	`, phone).Scan(&u.ID, &u.Phone, &isAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.IsAdmin = isAdmin != nil && *isAdmin
	return &u, nil
}

func (r *Postgres) ListOrders(ctx context.Context, q OrdersQuery) ([]model.Order, error) {
	statuses := nonEmpty(q.Statuses)
	if len(statuses) == 0 {
		return []model.Order{}, nil
	}
	limit := clamp(q.Limit, defaultOrdersLimit, 1, maxOrdersLimit)
	offset := clamp(q.Offset, 0, 0, maxOrdersOffset)

	rows, err := r.pool.Query(ctx, `
		select
			o.id, o.user_id, o.receiving_code, o.return_code, o.product_id,
			o.cell_id, o.total_price, o.days, o.status::text, o.refund_date, o.paid_at,
			u.id, u.first_name, u.last_name, u.email, u.phone,
			p.id, p.name,
			b.id, b.name
		from orders o
		join users u on u.id = o.user_id
		join products p on p.id = o.product_id
		left join cells c on c.id = o.cell_id
		left join boxes b on b.id = c.box_id
		where o.status::text = any($1::text[])
		order by o.paid_at desc nulls last, o.id desc
		limit $2 offset $3
	`, statuses, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.ReceivingCode, &o.ReturnCode, &o.ProductID,
			&o.CellID, &o.TotalPrice, &o.Days, &o.Status, &o.RefundDate, &o.PaidAt,
			&o.User.ID, &o.User.FirstName, &o.User.LastName, &o.User.Email, &o.User.Phone,
			&o.Product.ID, &o.Product.Name,
			&o.Box.ID, &o.Box.Name,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func nonEmpty(statuses []string) []string {
	var out []string
	for _, s := range statuses {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Postgres) FinanceByBoxes(ctx context.Context, f FinanceFilter) ([]model.FinanceByBox, error) {
	w, ok := financeWhere(f, financeOpts{statuses: true})
	if !ok {
		return []model.FinanceByBox{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		select
			b.id as box_id,
			b.name as box_name,
			count(o.id) as orders_count,
			sum(o.total_price)::float8 as total_sum
		from orders o
		left join cells c on c.id = o.cell_id
		left join boxes b on b.id = c.box_id
		where `+w.String()+`
		group by b.id, b.name
		order by total_sum desc nulls last
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FinanceByBox{}
	for rows.Next() {
		var (
			row model.FinanceByBox
			sum *float64
		)
		if err := rows.Scan(&row.BoxID, &row.BoxName, &row.OrdersCount, &sum); err != nil {
			return nil, err
		}
		if sum != nil {
			row.TotalSum = *sum
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Postgres) FinanceSeries(ctx context.Context, f FinanceFilter, groupBy report.GroupBy) ([]model.SeriesRow, error) {
	w, ok := financeWhere(f, financeOpts{statuses: true, requirePaid: true})
	if !ok {
		return []model.SeriesRow{}, nil
	}

	// groupBy is one of two constants, never user text.
	trunc := string(report.ParseGroupBy(string(groupBy)))

	rows, err := r.pool.Query(ctx, `
		select
			to_char(date_trunc('`+trunc+`', o.paid_at)::date, 'YYYY-MM-DD') as period_start,
			sum(o.total_price)::float8 as total_sum
		from orders o
		left join cells c on c.id = o.cell_id
		left join boxes b on b.id = c.box_id
		where `+w.String()+`
		group by 1
		order by 1 asc
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SeriesRow{}
	for rows.Next() {
		var (
			row model.SeriesRow
			sum *float64
		)
		if err := rows.Scan(&row.PeriodStart, &sum); err != nil {
			return nil, err
		}
		if sum != nil {
			row.TotalSum = *sum
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Postgres) TopProducts(ctx context.Context, f FinanceFilter, limit int) ([]model.TopProduct, error) {
	f.Statuses = nil
	w, _ := financeWhere(f, financeOpts{requirePaid: true})
	args := append(w.args, clamp(limit, defaultTopLimit, 1, maxTopLimit))

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		select
			p.name as product_name,
			count(o.id) as orders_count,
			sum(o.total_price)::float8 as total_sum
		from orders o
		join products p on p.id = o.product_id
		left join cells c on c.id = o.cell_id
		left join boxes b on b.id = c.box_id
		where %s
		group by p.name
		order by total_sum desc nulls last
		limit $%d
	`, w.String(), len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TopProduct{}
	for rows.Next() {
		var (
			row model.TopProduct
			sum *float64
		)
		if err := rows.Scan(&row.ProductName, &row.OrdersCount, &sum); err != nil {
			return nil, err
		}
		if sum != nil {
			row.TotalSum = *sum
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Postgres) Boxes(ctx context.Context) ([]model.Box, error) {
	rows, err := r.pool.Query(ctx, `
		select id, name, internal_number, city_id, full_address, latitude::float8, longitude::float8
		from public.boxes
		order by id asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Box{}
	for rows.Next() {
		var b model.Box
		if err := rows.Scan(&b.ID, &b.Name, &b.InternalNumber, &b.CityID, &b.FullAddress, &b.Latitude, &b.Longitude); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Postgres) BoxesMeta(ctx context.Context) (map[string]model.BoxMeta, error) {
	rows, err := r.pool.Query(ctx, `
		select internal_number, id, name, full_address
		from public.boxes
		where internal_number is not null
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]model.BoxMeta{}
	for rows.Next() {
		var (
			number string
			meta   model.BoxMeta
		)
		if err := rows.Scan(&number, &meta.ID, &meta.Name, &meta.FullAddress); err != nil {
			return nil, err
		}
		out[number] = meta
	}
	return out, rows.Err()
}
