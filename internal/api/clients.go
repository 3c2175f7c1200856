package api

import (
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// ClientsHandler handles client endpoints.
type ClientsHandler struct {
	Clients *service.Clients
}

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (req clientRequest) input() service.ClientInput {
	return service.ClientInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
}

// List handles GET /api/clients.
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List(r.Context())
	if err != nil {
		serviceError(w, err, "list clients")
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	jsonResponse(w, http.StatusOK, clients)
}

// Get handles GET /api/clients/{id}.
func (h *ClientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	client, err := h.Clients.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get client")
		return
	}
	jsonResponse(w, http.StatusOK, client)
}

// Create handles POST /api/clients.
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.Clients.Create(r.Context(), *GetActor(r.Context()), req.input())
	if err != nil {
		serviceError(w, err, "create client")
		return
	}
	jsonResponse(w, http.StatusCreated, client)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.Clients.Update(r.Context(), *GetActor(r.Context()), id, req.input())
	if err != nil {
		serviceError(w, err, "update client")
		return
	}
	jsonResponse(w, http.StatusOK, client)
}

// Delete handles DELETE /api/clients/{id}.
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Clients.Delete(r.Context(), *GetActor(r.Context()), id); err != nil {
		serviceError(w, err, "delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
