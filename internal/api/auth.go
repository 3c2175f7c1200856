package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/carrental/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Sessions *service.Sessions
	Accounts *service.Accounts
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	token, actor, err := h.Sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if service.HTTPStatus(err) == http.StatusUnauthorized {
			slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		}
		serviceError(w, err, "log in")
		return
	}

	jsonResponse(w, http.StatusOK, loginResponse{Token: token, Username: actor.Username, Role: actor.Role})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), getToken(r.Context())); err != nil {
		serviceError(w, err, "log out")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Accounts.ChangePassword(r.Context(), *GetActor(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err, "change password")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
