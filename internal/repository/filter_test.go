package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_financeWhereDefaults(t *testing.T) {
	w, ok := financeWhere(FinanceFilter{}, financeOpts{statuses: true})
	require.True(t, ok)
	assert.Equal(t, "o.status <> 'canceled' and o.total_price is not null", w.String())
	assert.Empty(t, w.args)
}

func Test_financeWhereAllFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	w, ok := financeWhere(FinanceFilter{
		From:     &from,
		To:       &to,
		BoxIDs:   []int64{4, 9},
		Statuses: []string{"paid", "canceled", "received"},
	}, financeOpts{statuses: true, requirePaid: true})
	require.True(t, ok)

	assert.Equal(t, "o.status <> 'canceled' and o.total_price is not null and o.paid_at is not null"+
		" and o.status::text = any($1::text[])"+
		" and o.paid_at >= $2::date"+
		" and o.paid_at < ($3::date + interval '1 day')"+
		" and b.id = any($4::bigint[])", w.String())
	assert.Equal(t, []any{[]string{"paid", "received"}, from, to, []int64{4, 9}}, w.args)
}

func Test_financeWhereOnlyCanceled(t *testing.T) {
	_, ok := financeWhere(FinanceFilter{Statuses: []string{"canceled"}}, financeOpts{statuses: true})
	assert.False(t, ok)
}

func Test_financeWhereIgnoresStatusesWhenDisabled(t *testing.T) {
	w, ok := financeWhere(FinanceFilter{Statuses: []string{"canceled"}}, financeOpts{requirePaid: true})
	require.True(t, ok)
	assert.Empty(t, w.args)
}

func Test_clamp(t *testing.T) {
	assert.Equal(t, 50, clamp(0, 50, 1, 200))
	assert.Equal(t, 1, clamp(-3, 50, 1, 200))
	assert.Equal(t, 200, clamp(500, 50, 1, 200))
	assert.Equal(t, 0, clamp(0, 0, 0, 10))
}
