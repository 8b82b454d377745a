package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/middleware"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log    *zap.Logger
	ctrl   *Controller
	guard  *middleware.Guard
	routes middleware.Routes
	cookie session.CookieOptions
	now    func() time.Time
	server *http.Server
}

type Params struct {
	fx.In

	Log        *zap.Logger
	Config     *config.Config
	Controller *Controller
	Gate       *middleware.Gate
	Guard      *middleware.Guard
	Routes     middleware.Routes
}

func New(p Params) (*Server, error) {
	s := &Server{
		log:    p.Log,
		ctrl:   p.Controller,
		guard:  p.Guard,
		routes: p.Routes,
		cookie: session.CookieOptions{Secure: p.Config.Production()},
		now:    time.Now,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID, chimw.Recoverer)
	root.Use(p.Gate.Wrap)

	root.Handle("/static/*", template.Static())
	root.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	root.Get("/", s.handleLanding)
	root.Get(s.routes.LoginPath, s.handleLoginPage)
	root.Get("/orders", s.page("orders.html", "Заказы", s.ordersPage))
	root.Get("/boxes", s.page("boxes.html", "Постаматы", s.boxesPage))
	root.Get("/unit", s.page("unit.html", "Юнит-экономика", s.unitPage))

	root.Route("/api", func(api chi.Router) {
		api.Use(noStore)

		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/logout", s.handleLogout)

		api.Get("/orders", s.admin(s.handleOrders))
		api.Get("/orders/finance", s.admin(s.handleFinance))
		api.Get("/orders/finance/series", s.admin(s.handleSeries))
		api.Get("/orders/topProducts", s.admin(s.handleTopProducts))
		api.Get("/boxes", s.admin(s.handleBoxes))
		api.Get("/boxesName", s.admin(s.handleBoxesName))
		api.Get("/esi/allBoxes", s.admin(s.handleAllMachines))
		api.Get("/esi/getMachineCells", s.admin(s.handleMachineCells))
	})

	s.server = &http.Server{
		Addr:              p.Config.HTTP.Addr,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the router for in-process use.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}
