package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
)

type GroupBy string

const (
	GroupByDay  GroupBy = "day"
	GroupByWeek GroupBy = "week"
)

// ParseGroupBy accepts "week"; anything else groups by day.
func ParseGroupBy(v string) GroupBy {
	if GroupBy(v) == GroupByWeek {
		return GroupByWeek
	}
	return GroupByDay
}

// maxDailyRange is the widest inclusive range still shown per day.
const maxDailyRange = 31

// MaxFillDays is the widest inclusive range a series is filled over.
const MaxFillDays = 3 * 366

var ErrRangeTooLarge = errors.New("date range is too large")

// CheckFillRange rejects ranges FillSeries would refuse to expand.
func CheckFillRange(from, to time.Time) error {
	if n := RangeDays(from, to); n > MaxFillDays {
		return fmt.Errorf("%w: %d days, at most %d", ErrRangeTooLarge, n, MaxFillDays)
	}
	return nil
}

// RangeDays counts the days of the inclusive range [from, to].
func RangeDays(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours()/24) + 1
}

// AutoGroupBy picks week buckets for ranges longer than a month.
func AutoGroupBy(from, to time.Time) GroupBy {
	if RangeDays(from, to) > maxDailyRange {
		return GroupByWeek
	}
	return GroupByDay
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dateOf(t).AddDate(0, 0, -offset)
}

// FillSeries expands database buckets into one point per bucket over
// [from, to], with zero for buckets that had no orders. Week buckets
// start on Monday, so the first one may begin before from. Ranges wider
// than MaxFillDays yield nil.
func FillSeries(rows []model.SeriesRow, from, to time.Time, groupBy GroupBy) []model.SeriesPoint {
	if CheckFillRange(from, to) != nil {
		return nil
	}

	values := make(map[string]float64, len(rows))
	for _, r := range rows {
		values[r.PeriodStart] += r.TotalSum
	}

	start, end := dateOf(from), dateOf(to)
	step := 1
	if groupBy == GroupByWeek {
		start = weekStart(start)
		step = 7
	}

	var out []model.SeriesPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, step) {
		key := d.Format(DateLayout)
		out = append(out, model.SeriesPoint{
			Start: key,
			End:   d.AddDate(0, 0, step-1).Format(DateLayout),
			Value: values[key],
		})
	}
	return out
}

// Summarize totals per-box rows and derives the average check.
func Summarize(rows []model.FinanceByBox) model.FinanceTotals {
	var t model.FinanceTotals
	for _, r := range rows {
		t.Orders += r.OrdersCount
		t.Sum += r.TotalSum
	}
	if t.Orders > 0 {
		t.AvgCheck = t.Sum / float64(t.Orders)
	}
	return t
}
