package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

type managerForm struct {
	PageData
	Action string
	Form   url.Values
	Edit   bool
}

// ManagersPage handles GET /admin/managers.
func (s *Server) ManagersPage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "Managers")
	managers, err := s.Services.Accounts.ListManagers(r.Context())
	if err != nil {
		pd.Error = userMessage(err, "list managers")
	}

	s.Templates.Render(w, http.StatusOK, "managers.html", &struct {
		PageData
		Managers []model.User
	}{PageData: pd, Managers: managers})
}

// ManagerAddPage handles GET /admin/managers/add.
func (s *Server) ManagerAddPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "manager_form.html", &managerForm{
		PageData: s.page(w, r, "Add manager"),
		Action:   "/admin/managers/add",
		Form:     url.Values{},
	})
}

// ManagerAddSubmit handles POST /admin/managers/add.
func (s *Server) ManagerAddSubmit(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	actor := ActorFrom(r.Context())

	_, err := s.Services.Accounts.CreateManager(r.Context(), *actor, form.Get("username"), form.Get("password"))
	if err != nil {
		pd := PageData{Title: "Add manager", User: actor, Error: userMessage(err, "create manager")}
		form.Del("password")
		s.Templates.Render(w, service.HTTPStatus(err), "manager_form.html", &managerForm{
			PageData: pd,
			Action:   "/admin/managers/add",
			Form:     form,
		})
		return
	}

	redirectWith(w, r, "/admin/managers", flashSuccess, "Manager created.")
}

// ManagerEditPage handles GET /admin/managers/edit/{id}.
func (s *Server) ManagerEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/admin/managers", flashError, "Manager not found.")
		return
	}

	user, err := s.Services.Accounts.GetManager(r.Context(), id)
	if err != nil {
		redirectWith(w, r, "/admin/managers", flashError, userMessage(err, "get manager"))
		return
	}

	s.Templates.Render(w, http.StatusOK, "manager_form.html", &managerForm{
		PageData: s.page(w, r, "Edit manager"),
		Action:   "/admin/managers/edit/" + strconv.FormatInt(id, 10),
		Form:     url.Values{"username": {user.Username}},
		Edit:     true,
	})
}

// ManagerEditSubmit handles POST /admin/managers/edit/{id}.
func (s *Server) ManagerEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/admin/managers", flashError, "Manager not found.")
		return
	}
	form := formValues(r)
	actor := ActorFrom(r.Context())

	_, err := s.Services.Accounts.UpdateManager(r.Context(), *actor, id, form.Get("username"), form.Get("password"))
	if errors.Is(err, service.ErrUnknownUser) {
		redirectWith(w, r, "/admin/managers", flashError, userMessage(err, "update manager"))
		return
	}
	if err != nil {
		form.Del("password")
		s.Templates.Render(w, service.HTTPStatus(err), "manager_form.html", &managerForm{
			PageData: PageData{Title: "Edit manager", User: actor, Error: userMessage(err, "update manager")},
			Action:   "/admin/managers/edit/" + strconv.FormatInt(id, 10),
			Form:     form,
			Edit:     true,
		})
		return
	}

	redirectWith(w, r, "/admin/managers", flashSuccess, "Manager updated.")
}

// ManagerDeleteSubmit handles POST /admin/managers/delete/{id}.
func (s *Server) ManagerDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/admin/managers", flashError, "Manager not found.")
		return
	}

	if err := s.Services.Accounts.DeleteManager(r.Context(), *ActorFrom(r.Context()), id); err != nil {
		redirectWith(w, r, "/admin/managers", flashError, userMessage(err, "delete manager"))
		return
	}
	redirectWith(w, r, "/admin/managers", flashSuccess, "Manager deleted.")
}
