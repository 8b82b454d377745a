package dashboard

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/template"
	"go.uber.org/zap"
)

type okBody struct {
	OK bool `json:"ok"`
}

type loginRequest struct {
	Phone any `json:"phone"`
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

// phoneFromJSON accepts the phone as a string or a number. A body that
// does not decode is treated as carrying no phone.
func phoneFromJSON(r *http.Request) string {
	var req loginRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return ""
	}
	switch v := req.Phone.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// safeNext returns next when it is a local absolute path other than the
// login page, and the landing page otherwise.
func (s *Server) safeNext(next string) string {
	login := s.routes.LoginPath
	switch {
	case !strings.HasPrefix(next, "/"),
		strings.HasPrefix(next, "//"),
		strings.HasPrefix(next, `/\`),
		next == login,
		strings.HasPrefix(next, login+"?"),
		strings.HasPrefix(next, login+"/"):
		return s.routes.LandingPath
	}
	return next
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := isForm(r)

	var phone string
	if form {
		phone = r.PostFormValue("phone")
	} else {
		phone = phoneFromJSON(r)
	}

	token, err := s.ctrl.Login(r.Context(), phone)
	if err != nil {
		if form {
			s.renderLogin(w, r, statusFor(err), r.PostFormValue("next"), err.Error())
			return
		}
		writeError(w, s.log, err)
		return
	}

	session.SetCookie(w, token, s.cookie)
	s.log.Info("admin logged in", zap.String("phone", strings.TrimSpace(phone)))

	if form {
		http.Redirect(w, r, s.safeNext(r.PostFormValue("next")), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, s.cookie)

	if isForm(r) {
		http.Redirect(w, r, s.routes.LoginPath, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, next, msg string) {
	err := template.Render(w, r, status, "login.html", &template.Data{
		PageTitle: "Вход",
		Error:     msg,
		Body:      s.safeNext(next),
	})
	if err != nil {
		s.log.Error("render login", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, r, http.StatusOK, r.URL.Query().Get("next"), "")
}
