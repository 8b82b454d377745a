package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/esi"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/middleware"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/report"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"go.uber.org/zap"
)

type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// statusFor maps an operation error to the HTTP status it is reported
// with.
func statusFor(err error) int {
	var upstream *upstreamError
	switch {
	case errors.Is(err, middleware.ErrUnauthorized),
		errors.Is(err, middleware.ErrForbidden):
		return middleware.StatusFor(err)
	case errors.Is(err, session.ErrSecretNotSet),
		errors.Is(err, esi.ErrTokenNotSet):
		return http.StatusInternalServerError
	case errors.Is(err, ErrPhoneRequired),
		errors.Is(err, ErrMachineIDRequired),
		errors.Is(err, report.ErrInvalidDate),
		errors.Is(err, report.ErrRangeTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, esi.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{OK: false, Error: err.Error()})
}

// noStore keeps responses carrying session state or admin data out of
// caches.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
