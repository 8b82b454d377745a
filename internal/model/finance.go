package model

type FinanceByBox struct {
	BoxID       *int64  `json:"box_id"`
	BoxName     *string `json:"box_name"`
	OrdersCount int64   `json:"orders_count"`
	TotalSum    float64 `json:"total_sum"`
}

// SeriesRow is one bucket as returned by the database, PeriodStart is
// formatted YYYY-MM-DD.
type SeriesRow struct {
	PeriodStart string  `json:"period_start"`
	TotalSum    float64 `json:"total_sum"`
}

// SeriesPoint is a bucket of a gap-free series covering a date range.
type SeriesPoint struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Value float64 `json:"value"`
}

type TopProduct struct {
	ProductName *string `json:"product_name"`
	OrdersCount int64   `json:"orders_count"`
	TotalSum    float64 `json:"total_sum"`
}

type FinanceTotals struct {
	Orders   int64   `json:"orders"`
	Sum      float64 `json:"sum"`
	AvgCheck float64 `json:"avg_check"`
}
