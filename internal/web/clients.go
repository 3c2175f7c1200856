package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

type clientForm struct {
	PageData
	Action string
	Form   url.Values
}

func clientInput(form url.Values) service.ClientInput {
	return service.ClientInput{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Phone:   form.Get("phone"),
		Address: form.Get("address"),
	}
}

// ClientsPage handles GET /manager/clients.
func (s *Server) ClientsPage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "Clients")
	clients, err := s.Services.Clients.List(r.Context())
	if err != nil {
		pd.Error = userMessage(err, "list clients")
	}

	s.Templates.Render(w, http.StatusOK, "clients.html", &struct {
		PageData
		Clients []model.Client
	}{PageData: pd, Clients: clients})
}

// ClientAddPage handles GET /manager/clients/add.
func (s *Server) ClientAddPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "client_form.html", &clientForm{
		PageData: s.page(w, r, "Add client"),
		Action:   "/manager/clients/add",
		Form:     url.Values{},
	})
}

// ClientAddSubmit handles POST /manager/clients/add.
func (s *Server) ClientAddSubmit(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	actor := ActorFrom(r.Context())

	if _, err := s.Services.Clients.Create(r.Context(), *actor, clientInput(form)); err != nil {
		s.Templates.Render(w, service.HTTPStatus(err), "client_form.html", &clientForm{
			PageData: PageData{Title: "Add client", User: actor, Error: userMessage(err, "create client")},
			Action:   "/manager/clients/add",
			Form:     form,
		})
		return
	}
	redirectWith(w, r, "/manager/clients", flashSuccess, "Client added.")
}

// ClientEditPage handles GET /manager/clients/edit/{id}.
func (s *Server) ClientEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/clients", flashError, "Client not found.")
		return
	}

	client, err := s.Services.Clients.Get(r.Context(), id)
	if err != nil {
		redirectWith(w, r, "/manager/clients", flashError, userMessage(err, "get client"))
		return
	}

	s.Templates.Render(w, http.StatusOK, "client_form.html", &clientForm{
		PageData: s.page(w, r, "Edit client"),
		Action:   "/manager/clients/edit/" + strconv.FormatInt(id, 10),
		Form: url.Values{
			"name":    {client.Name},
			"email":   {client.Email},
			"phone":   {client.Phone},
			"address": {client.Address},
		},
	})
}

// ClientEditSubmit handles POST /manager/clients/edit/{id}.
func (s *Server) ClientEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/clients", flashError, "Client not found.")
		return
	}
	form := formValues(r)
	actor := ActorFrom(r.Context())

	_, err := s.Services.Clients.Update(r.Context(), *actor, id, clientInput(form))
	if errors.Is(err, service.ErrUnknownClient) {
		redirectWith(w, r, "/manager/clients", flashError, userMessage(err, "update client"))
		return
	}
	if err != nil {
		s.Templates.Render(w, service.HTTPStatus(err), "client_form.html", &clientForm{
			PageData: PageData{Title: "Edit client", User: actor, Error: userMessage(err, "update client")},
			Action:   "/manager/clients/edit/" + strconv.FormatInt(id, 10),
			Form:     form,
		})
		return
	}
	redirectWith(w, r, "/manager/clients", flashSuccess, "Client updated.")
}

// ClientDeleteSubmit handles POST /manager/clients/delete/{id}.
func (s *Server) ClientDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/clients", flashError, "Client not found.")
		return
	}

	if err := s.Services.Clients.Delete(r.Context(), *ActorFrom(r.Context()), id); err != nil {
		redirectWith(w, r, "/manager/clients", flashError, userMessage(err, "delete client"))
		return
	}
	redirectWith(w, r, "/manager/clients", flashSuccess, "Client deleted.")
}
