package api

import (
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// CarsHandler handles car endpoints.
type CarsHandler struct {
	Fleet *service.Fleet
}

type carRequest struct {
	Make               string      `json:"make"`
	Model              string      `json:"model"`
	Year               int         `json:"year"`
	RegistrationNumber string      `json:"registration_number"`
	DailyRate          model.Cents `json:"daily_rate"`
	Status             string      `json:"status"`
	ImageURL           string      `json:"image_url"`
}

func (req carRequest) input() service.CarInput {
	return service.CarInput{
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		RegistrationNumber: req.RegistrationNumber,
		DailyRate:          req.DailyRate,
		Status:             req.Status,
		ImageURL:           req.ImageURL,
	}
}

// Available handles GET /api/cars/available.
func (h *CarsHandler) Available(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Fleet.Available(r.Context())
	if err != nil {
		serviceError(w, err, "list available cars")
		return
	}
	if cars == nil {
		cars = []model.Car{}
	}
	jsonResponse(w, http.StatusOK, cars)
}

// List handles GET /api/cars.
func (h *CarsHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Fleet.List(r.Context())
	if err != nil {
		serviceError(w, err, "list cars")
		return
	}
	if cars == nil {
		cars = []model.Car{}
	}
	jsonResponse(w, http.StatusOK, cars)
}

// Get handles GET /api/cars/{id}.
func (h *CarsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	car, err := h.Fleet.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get car")
		return
	}
	jsonResponse(w, http.StatusOK, car)
}

// Create handles POST /api/cars.
func (h *CarsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	car, err := h.Fleet.Create(r.Context(), *GetActor(r.Context()), req.input())
	if err != nil {
		serviceError(w, err, "create car")
		return
	}
	jsonResponse(w, http.StatusCreated, car)
}

// Update handles PUT /api/cars/{id}.
func (h *CarsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	car, err := h.Fleet.Update(r.Context(), *GetActor(r.Context()), id, req.input())
	if err != nil {
		serviceError(w, err, "update car")
		return
	}
	jsonResponse(w, http.StatusOK, car)
}

// Delete handles DELETE /api/cars/{id}.
func (h *CarsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Fleet.Delete(r.Context(), *GetActor(r.Context()), id); err != nil {
		serviceError(w, err, "delete car")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
