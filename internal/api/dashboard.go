package api

import (
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// DashboardHandler serves back-office statistics.
type DashboardHandler struct {
	Dashboard *service.Dashboard
}

type statsResponse struct {
	Managers            int                 `json:"managers"`
	Cars                int                 `json:"cars"`
	Clients             int                 `json:"clients"`
	Reservations        int                 `json:"reservations"`
	PendingReservations int                 `json:"pending_reservations"`
	CarsByStatus        map[string]int      `json:"cars_by_status"`
	Revenue             model.Cents         `json:"revenue"`
	Recent              []model.Reservation `json:"recent_reservations"`
}

// Stats handles GET /api/dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		serviceError(w, err, "load dashboard stats")
		return
	}

	recent := st.Recent
	if recent == nil {
		recent = []model.Reservation{}
	}
	jsonResponse(w, http.StatusOK, statsResponse{
		Managers:            st.Managers,
		Cars:                st.Cars,
		Clients:             st.Clients,
		Reservations:        st.Reservations,
		PendingReservations: st.PendingReservations,
		CarsByStatus:        st.CarsByStatus,
		Revenue:             st.Revenue,
		Recent:              recent,
	})
}
