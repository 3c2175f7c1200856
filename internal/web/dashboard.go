package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

type dashboardPage struct {
	PageData
	Stats       *service.Stats
	CarStatuses []string
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, name string) {
	pd := s.page(w, r, "Dashboard")

	stats, err := s.Services.Dashboard.Stats(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard stats", "error", err)
		pd.Error = internalErrorMessage
		stats = &service.Stats{CarsByStatus: map[string]int{}}
	}

	s.Templates.Render(w, http.StatusOK, name, &dashboardPage{
		PageData:    pd,
		Stats:       stats,
		CarStatuses: model.CarStatuses,
	})
}

// AdminDashboard handles GET /admin/dashboard.
func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "admin_dashboard.html")
}

// ManagerDashboard handles GET /manager/dashboard.
func (s *Server) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "manager_dashboard.html")
}
