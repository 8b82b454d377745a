package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
)

var (
	ErrUnauthorized = errors.New("UNAUTHORIZED")
	ErrForbidden    = errors.New("FORBIDDEN")
)

// Guard re-checks the session inside protected operations, independent
// of the gate.
type Guard struct {
	codec Verifier
}

func NewGuard(codec Verifier) *Guard {
	return &Guard{codec: codec}
}

// RequireAdmin returns the admin session of the request, ErrUnauthorized
// when there is no valid session and ErrForbidden when the session is
// not an admin one.
func (g *Guard) RequireAdmin(r *http.Request) (model.Session, error) {
	token := session.TokenFromRequest(r)
	if token == "" {
		return model.Session{}, ErrUnauthorized
	}

	s, err := g.codec.Verify(token)
	if errors.Is(err, session.ErrSecretNotSet) {
		return model.Session{}, fmt.Errorf("verify session: %w", err)
	}
	if err != nil {
		return model.Session{}, ErrUnauthorized
	}

	if !s.IsAdmin {
		return model.Session{}, ErrForbidden
	}

	return s, nil
}

// StatusFor maps a guard failure to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
