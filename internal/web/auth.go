package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/carrental/internal/auth"
	"github.com/erazemk/carrental/internal/service"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if actor := ActorFrom(r.Context()); actor != nil {
		http.Redirect(w, r, dashboardPath(actor.Role), http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, http.StatusOK, "login.html", &struct {
		PageData
		Username string
	}{PageData: s.page(w, r, "Sign in")})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	fail := func(status int, msg string) {
		s.Templates.Render(w, status, "login.html", &struct {
			PageData
			Username string
		}{
			PageData: PageData{Title: "Sign in", Error: msg},
			Username: username,
		})
	}

	if username == "" || password == "" {
		fail(http.StatusBadRequest, "Enter your username and password.")
		return
	}

	token, actor, err := s.Services.Sessions.Login(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		slog.Warn("failed login", "user", username)
		fail(http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err != nil {
		slog.Error("failed to log in", "user", username, "error", err)
		fail(http.StatusInternalServerError, "Sign in failed, please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	http.Redirect(w, r, dashboardPath(actor.Role), http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if token := tokenFrom(r.Context()); token != "" {
		if err := s.Services.Sessions.Logout(r.Context(), token); err != nil {
			slog.Error("failed to revoke session", "error", err)
		}
	}
	clearAuthCookie(w)
	redirectWith(w, r, "/login", flashSuccess, "You have been signed out.")
}
