package middleware

import (
	"errors"
	"net/http"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"go.uber.org/zap"
)

type Action int

const (
	Allow Action = iota
	RedirectToLogin
	RedirectToLanding
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToLanding:
		return "redirect-to-landing"
	}
	return "unknown"
}

// Decision is the outcome of the gate for a single request. Location is
// set for redirects only.
type Decision struct {
	Action   Action
	Location string
}

// Verifier is the part of the token codec the gate and guard rely on.
type Verifier interface {
	Verify(token string) (model.Session, error)
}

// Gate runs in front of every handler and lets through only public
// routes and requests carrying a valid admin session.
type Gate struct {
	codec  Verifier
	routes Routes
	log    *zap.Logger
}

func NewGate(codec Verifier, routes Routes, log *zap.Logger) *Gate {
	return &Gate{
		codec:  codec,
		routes: routes,
		log:    log,
	}
}

// Decide classifies the request. The only error it returns is a
// configuration error from the codec.
func (g *Gate) Decide(r *http.Request) (Decision, error) {
	path := r.URL.Path

	if path == g.routes.LoginPath {
		token := session.TokenFromRequest(r)
		if token == "" {
			return Decision{Action: Allow}, nil
		}
		s, err := g.codec.Verify(token)
		if errors.Is(err, session.ErrSecretNotSet) {
			return Decision{}, err
		}
		if err == nil && s.IsAdmin {
			return Decision{Action: RedirectToLanding, Location: g.routes.LandingPath}, nil
		}
		return Decision{Action: Allow}, nil
	}

	if g.routes.isPublic(path) {
		return Decision{Action: Allow}, nil
	}

	token := session.TokenFromRequest(r)
	if token == "" {
		return g.toLogin(path), nil
	}

	s, err := g.codec.Verify(token)
	if errors.Is(err, session.ErrSecretNotSet) {
		return Decision{}, err
	}
	if err != nil || !s.IsAdmin {
		return g.toLogin(path), nil
	}

	return Decision{Action: Allow}, nil
}

func (g *Gate) toLogin(path string) Decision {
	return Decision{
		Action:   RedirectToLogin,
		Location: g.routes.LoginURL(path),
	}
}

func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := g.Decide(r)
		if err != nil {
			g.log.Error("session gate misconfigured", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		g.log.Debug("session gate",
			zap.String("path", r.URL.Path),
			zap.Stringer("action", d.Action),
		)

		if d.Action != Allow {
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}
