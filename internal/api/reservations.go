package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// ReservationsHandler handles reservation endpoints.
type ReservationsHandler struct {
	Reservations *service.Reservations
}

type createReservationRequest struct {
	CarID     int64  `json:"car_id"`
	ClientID  int64  `json:"client_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type transitionResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// List handles GET /api/reservations.
func (h *ReservationsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reservations.List(r.Context())
	if err != nil {
		serviceError(w, err, "list reservations")
		return
	}
	if list == nil {
		list = []model.Reservation{}
	}
	jsonResponse(w, http.StatusOK, list)
}

// Get handles GET /api/reservations/{id}.
func (h *ReservationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get reservation")
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Create handles POST /api/reservations.
func (h *ReservationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Reservations.Create(r.Context(), *GetActor(r.Context()), req.CarID, req.ClientID, req.StartDate, req.EndDate)
	if err != nil {
		serviceError(w, err, "create reservation")
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

// Transition handles POST /api/reservations/{id}/{action}.
func (h *ReservationsHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	status, err := h.Reservations.Transition(r.Context(), *GetActor(r.Context()), id, chi.URLParam(r, "action"))
	if err != nil {
		serviceError(w, err, "change reservation status")
		return
	}
	jsonResponse(w, http.StatusOK, transitionResponse{ID: id, Status: status})
}
