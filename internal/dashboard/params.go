package dashboard

import (
	"net/url"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/repository"
)

const (
	defaultOrdersLimit = 50
	maxOrdersLimit     = 200
	maxOrdersOffset    = 1_000_000
	defaultTopLimit    = 5
	maxTopLimit        = 50
)

// FinanceQuery is the parsed form of the finance query string. It is
// echoed back as the response meta.
type FinanceQuery struct {
	DateFrom string         `json:"dateFrom,omitempty"`
	DateTo   string         `json:"dateTo,omitempty"`
	BoxIDs   []int64        `json:"boxIds"`
	Statuses []string       `json:"statuses"`
	GroupBy  report.GroupBy `json:"groupBy,omitempty"`
	Limit    int            `json:"limit,omitempty"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (q FinanceQuery) filter() repository.FinanceFilter {
	return repository.FinanceFilter{
		From:     q.From,
		To:       q.To,
		BoxIDs:   q.BoxIDs,
		Statuses: q.Statuses,
	}
}

// parseFinanceQuery reads dateFrom, dateTo, boxIds and statuses. Only
// malformed dates are rejected.
func parseFinanceQuery(v url.Values) (FinanceQuery, error) {
	from, err := report.ParseDate(v.Get("dateFrom"))
	if err != nil {
		return FinanceQuery{}, err
	}
	to, err := report.ParseDate(v.Get("dateTo"))
	if err != nil {
		return FinanceQuery{}, err
	}

	q := FinanceQuery{
		From:     from,
		To:       to,
		BoxIDs:   report.ParseIDs(v.Get("boxIds")),
		Statuses: report.ParseList(v.Get("statuses")),
	}
	if from != nil {
		q.DateFrom = from.Format(report.DateLayout)
	}
	if to != nil {
		q.DateTo = to.Format(report.DateLayout)
	}
	if q.BoxIDs == nil {
		q.BoxIDs = []int64{}
	}
	if q.Statuses == nil {
		q.Statuses = []string{}
	}
	return q, nil
}

func parsePage(v url.Values) (limit, offset int) {
	limit = report.ClampInt(v.Get("limit"), defaultOrdersLimit, 1, maxOrdersLimit)
	offset = report.ClampInt(v.Get("offset"), 0, 0, maxOrdersOffset)
	return limit, offset
}
