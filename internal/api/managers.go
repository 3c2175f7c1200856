package api

import (
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// ManagersHandler handles manager account endpoints (admin only).
type ManagersHandler struct {
	Accounts *service.Accounts
}

type managerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// List handles GET /api/managers.
func (h *ManagersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListManagers(r.Context())
	if err != nil {
		serviceError(w, err, "list managers")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/managers.
func (h *ManagersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req managerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Accounts.CreateManager(r.Context(), *GetActor(r.Context()), req.Username, req.Password)
	if err != nil {
		serviceError(w, err, "create manager")
		return
	}
	jsonResponse(w, http.StatusCreated, user)
}

// Update handles PUT /api/managers/{id}. An empty password keeps the current one.
func (h *ManagersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req managerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Accounts.UpdateManager(r.Context(), *GetActor(r.Context()), id, req.Username, req.Password)
	if err != nil {
		serviceError(w, err, "update manager")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /api/managers/{id}.
func (h *ManagersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Accounts.DeleteManager(r.Context(), *GetActor(r.Context()), id); err != nil {
		serviceError(w, err, "delete manager")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
