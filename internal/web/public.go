package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// AvailableCars handles GET / and GET /cars/available.
func (s *Server) AvailableCars(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "Available cars")
	cars, err := s.Services.Fleet.Available(r.Context())
	if err != nil {
		pd.Error = userMessage(err, "list available cars")
	}

	s.Templates.Render(w, http.StatusOK, "public_cars.html", &struct {
		PageData
		Cars []model.Car
	}{PageData: pd, Cars: cars})
}

// CarImage handles GET /cars/{id}/image.
func (s *Server) CarImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := s.Services.Fleet.Photo(r.Context(), id)
	if errors.Is(err, service.ErrUnknownCar) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get car photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}
