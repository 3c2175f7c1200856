package web

import (
	"net/http"

	"github.com/erazemk/carrental/internal/service"
)

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "settings.html", &struct{ PageData }{s.page(w, r, "Settings")})
}

// SettingsSubmit handles POST /settings.
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	actor := ActorFrom(r.Context())
	current := r.FormValue("current_password")
	next := r.FormValue("new_password")

	if next != r.FormValue("confirm_password") {
		s.Templates.Render(w, http.StatusBadRequest, "settings.html", &struct{ PageData }{
			PageData{Title: "Settings", User: actor, Error: "The new passwords do not match."},
		})
		return
	}

	if err := s.Services.Accounts.ChangePassword(r.Context(), *actor, current, next); err != nil {
		s.Templates.Render(w, service.HTTPStatus(err), "settings.html", &struct{ PageData }{
			PageData{Title: "Settings", User: actor, Error: userMessage(err, "change password")},
		})
		return
	}

	redirectWith(w, r, "/settings", flashSuccess, "Password changed.")
}
