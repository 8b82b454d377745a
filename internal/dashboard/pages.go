package dashboard

import (
	"net/http"
	"time"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/template"
	"go.uber.org/zap"
)

// defaultUnitRange is how far back the unit page looks without dates.
const defaultUnitRange = 7 * 24 * time.Hour

type ordersPage struct {
	Rows       []model.Order
	Limit      int
	Prev       bool
	Next       bool
	PrevOffset int
	NextOffset int
}

type boxesPage struct {
	Boxes     []model.BoxOverview
	MachineID string
	Cells     []model.CellPin
}

type unitPage struct {
	DateFrom string
	DateTo   string
	GroupBy  report.GroupBy
	Totals   model.FinanceTotals
	Points   []model.SeriesPoint
	Rows     []model.FinanceByBox
	Top      []model.TopProduct
}

// page renders tmpl for an admin. The body callback returns the page
// body; its error is shown on the page with the matching status.
func (s *Server) page(tmpl, title string, body func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.guard.RequireAdmin(r)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				s.log.Error("page guard", zap.Error(err))
				http.Error(w, http.StatusText(status), status)
				return
			}
			http.Redirect(w, r, s.routes.LoginURL(r.URL.Path), http.StatusTemporaryRedirect)
			return
		}

		td := &template.Data{PageTitle: title, Phone: sess.Phone}
		status := http.StatusOK

		b, err := body(r)
		if err != nil {
			status = statusFor(err)
			td.Error = err.Error()
			if status >= http.StatusInternalServerError {
				s.log.Error("page failed", zap.String("page", tmpl), zap.Error(err))
			}
		}
		td.Body = b

		if err := template.Render(w, r, status, tmpl, td); err != nil {
			s.log.Error("render page", zap.String("page", tmpl), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func (s *Server) ordersPage(r *http.Request) (any, error) {
	limit, offset := parsePage(r.URL.Query())
	p := &ordersPage{Limit: limit}

	res, err := s.ctrl.Orders(r.Context(), limit, offset)
	if err != nil {
		return p, err
	}

	p.Rows = res.Rows
	p.Prev = offset > 0
	p.PrevOffset = max(offset-limit, 0)
	p.Next = len(res.Rows) == limit
	p.NextOffset = offset + limit
	return p, nil
}

func (s *Server) boxesPage(r *http.Request) (any, error) {
	p := &boxesPage{MachineID: r.URL.Query().Get("machineId")}

	boxes, err := s.ctrl.BoxesOverview(r.Context())
	if err != nil {
		return p, err
	}
	p.Boxes = boxes

	if p.MachineID != "" {
		p.Cells, err = s.ctrl.MachineCells(r.Context(), p.MachineID)
	}
	return p, err
}

func (s *Server) unitPage(r *http.Request) (any, error) {
	p := &unitPage{}

	q, err := parseFinanceQuery(r.URL.Query())
	if err != nil {
		return p, err
	}

	today := s.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if q.To == nil {
		q.To = &today
	}
	if q.From == nil {
		from := q.To.Add(-defaultUnitRange)
		q.From = &from
	}
	q.DateFrom = q.From.Format(report.DateLayout)
	q.DateTo = q.To.Format(report.DateLayout)
	q.GroupBy = report.AutoGroupBy(*q.From, *q.To)
	q.Limit = defaultTopLimit

	p.DateFrom, p.DateTo, p.GroupBy = q.DateFrom, q.DateTo, q.GroupBy

	fin, err := s.ctrl.Finance(r.Context(), q)
	if err != nil {
		return p, err
	}
	p.Rows, p.Totals = fin.Rows, fin.Totals

	series, err := s.ctrl.Series(r.Context(), q)
	if err != nil {
		return p, err
	}
	p.Points = series.Points

	top, err := s.ctrl.TopProducts(r.Context(), q)
	if err != nil {
		return p, err
	}
	p.Top = top.Rows

	return p, nil
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.routes.LandingPath, http.StatusFound)
}
