package repository

import (
	"fmt"
	"strings"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
)

const (
	defaultOrdersLimit = 50
	maxOrdersLimit     = 200
	maxOrdersOffset    = 1_000_000

	defaultTopLimit = 5
	maxTopLimit     = 50
)

func clamp(v, def, min, max int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// where accumulates SQL conditions with positional arguments.
type where struct {
	clauses []string
	args    []any
}

// add appends a condition; %s in cond is replaced with the placeholder
// of arg.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(cond, fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addRaw(cond string) {
	w.clauses = append(w.clauses, cond)
}

func (w *where) String() string {
	return strings.Join(w.clauses, " and ")
}

// nonCanceled drops the canceled status, which never counts as revenue.
func nonCanceled(statuses []string) []string {
	var out []string
	for _, s := range statuses {
		if s != "" && s != model.StatusCanceled {
			out = append(out, s)
		}
	}
	return out
}

type financeOpts struct {
	statuses    bool
	requirePaid bool
}

// financeWhere builds the shared revenue filter. ok is false when the
// caller asked for statuses that are all excluded, so nothing can match.
func financeWhere(f FinanceFilter, opts financeOpts) (w *where, ok bool) {
	w = &where{}
	w.addRaw("o.status <> 'canceled'")
	w.addRaw("o.total_price is not null")
	if opts.requirePaid {
		w.addRaw("o.paid_at is not null")
	}

	if opts.statuses {
		statuses := nonCanceled(f.Statuses)
		if len(statuses) > 0 {
			w.add("o.status::text = any(%s::text[])", statuses)
		} else if len(f.Statuses) > 0 {
			return nil, false
		}
	}

	if f.From != nil {
		w.add("o.paid_at >= %s::date", *f.From)
	}
	if f.To != nil {
		w.add("o.paid_at < (%s::date + interval '1 day')", *f.To)
	}
	if len(f.BoxIDs) > 0 {
		w.add("b.id = any(%s::bigint[])", f.BoxIDs)
	}

	return w, true
}
