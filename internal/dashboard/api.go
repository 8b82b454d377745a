package dashboard

import (
	"net/http"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
)

type boxesBody struct {
	OK    bool        `json:"ok"`
	Boxes []model.Box `json:"boxes"`
}

type overviewBody struct {
	OK    bool                `json:"ok"`
	Boxes []model.BoxOverview `json:"boxes"`
}

type machinesBody struct {
	OK       bool                 `json:"ok"`
	Machines []model.MachineStats `json:"machines"`
}

type cellsBody struct {
	OK        bool            `json:"ok"`
	MachineID string          `json:"machineId"`
	Cells     []model.CellPin `json:"cells"`
}

type ordersBody struct {
	OK bool `json:"ok"`
	*OrdersResult
}

type financeBody struct {
	OK bool `json:"ok"`
	*FinanceResult
}

type seriesBody struct {
	OK bool `json:"ok"`
	*SeriesResult
}

type topProductsBody struct {
	OK bool `json:"ok"`
	*TopProductsResult
}

// admin runs h only for requests carrying an admin session.
func (s *Server) admin(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.guard.RequireAdmin(r); err != nil {
			writeError(w, s.log, err)
			return
		}
		h(w, r)
	}
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r.URL.Query())

	res, err := s.ctrl.Orders(r.Context(), limit, offset)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersBody{OK: true, OrdersResult: res})
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	q, err := parseFinanceQuery(r.URL.Query())
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	res, err := s.ctrl.Finance(r.Context(), q)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, financeBody{OK: true, FinanceResult: res})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q, err := parseFinanceQuery(r.URL.Query())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	q.GroupBy = report.ParseGroupBy(r.URL.Query().Get("groupBy"))

	res, err := s.ctrl.Series(r.Context(), q)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesBody{OK: true, SeriesResult: res})
}

func (s *Server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseFinanceQuery(r.URL.Query())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	q.Limit = report.ClampInt(r.URL.Query().Get("limit"), defaultTopLimit, 1, maxTopLimit)

	res, err := s.ctrl.TopProducts(r.Context(), q)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, topProductsBody{OK: true, TopProductsResult: res})
}

func (s *Server) handleBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := s.ctrl.Boxes(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, boxesBody{OK: true, Boxes: boxes})
}

func (s *Server) handleBoxesName(w http.ResponseWriter, r *http.Request) {
	boxes, err := s.ctrl.BoxesOverview(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, overviewBody{OK: true, Boxes: boxes})
}

func (s *Server) handleAllMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := s.ctrl.Machines(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, machinesBody{OK: true, Machines: machines})
}

func (s *Server) handleMachineCells(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("machineId")

	cells, err := s.ctrl.MachineCells(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cellsBody{OK: true, MachineID: id, Cells: cells})
}
