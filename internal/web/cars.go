package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/erazemk/carrental/internal/imaging"
	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

type carForm struct {
	PageData
	Action   string
	Form     url.Values
	Statuses []string
	Car      *model.Car
}

// carInput reads a car form. Malformed numbers are reported before the
// service validates the rest.
func carInput(form url.Values) (service.CarInput, string) {
	in := service.CarInput{
		Make:               form.Get("make"),
		Model:              form.Get("model"),
		RegistrationNumber: form.Get("registration_number"),
		Status:             form.Get("status"),
		ImageURL:           form.Get("image_url"),
	}

	year, err := strconv.Atoi(strings.TrimSpace(form.Get("year")))
	if err != nil {
		return in, "Year must be a whole number."
	}
	in.Year = year

	rate, err := model.ParseCents(form.Get("daily_rate"))
	if err != nil {
		return in, "Daily rate must be a number."
	}
	in.DailyRate = rate

	return in, ""
}

func carValues(c *model.Car) url.Values {
	return url.Values{
		"make":                {c.Make},
		"model":               {c.Model},
		"year":                {strconv.Itoa(c.Year)},
		"registration_number": {c.RegistrationNumber},
		"daily_rate":          {c.DailyRate.String()},
		"status":              {c.Status},
		"image_url":           {c.ImageURL},
	}
}

// CarsPage handles GET /manager/cars.
func (s *Server) CarsPage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "Cars")
	cars, err := s.Services.Fleet.List(r.Context())
	if err != nil {
		pd.Error = userMessage(err, "list cars")
	}

	s.Templates.Render(w, http.StatusOK, "cars.html", &struct {
		PageData
		Cars []model.Car
	}{PageData: pd, Cars: cars})
}

// CarAddPage handles GET /manager/cars/add.
func (s *Server) CarAddPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "car_form.html", &carForm{
		PageData: s.page(w, r, "Add car"),
		Action:   "/manager/cars/add",
		Form:     url.Values{"status": {model.CarStatusAvailable}},
		Statuses: model.CarStatuses,
	})
}

// CarAddSubmit handles POST /manager/cars/add.
func (s *Server) CarAddSubmit(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	actor := ActorFrom(r.Context())

	rerender := func(status int, msg string) {
		s.Templates.Render(w, status, "car_form.html", &carForm{
			PageData: PageData{Title: "Add car", User: actor, Error: msg},
			Action:   "/manager/cars/add",
			Form:     form,
			Statuses: model.CarStatuses,
		})
	}

	in, problem := carInput(form)
	if problem != "" {
		rerender(http.StatusBadRequest, problem)
		return
	}

	if _, err := s.Services.Fleet.Create(r.Context(), *actor, in); err != nil {
		rerender(service.HTTPStatus(err), userMessage(err, "create car"))
		return
	}
	redirectWith(w, r, "/manager/cars", flashSuccess, "Car added.")
}

// CarEditPage handles GET /manager/cars/edit/{id}.
func (s *Server) CarEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/cars", flashError, "Car not found.")
		return
	}

	car, err := s.Services.Fleet.Get(r.Context(), id)
	if err != nil {
		redirectWith(w, r, "/manager/cars", flashError, userMessage(err, "get car"))
		return
	}

	s.Templates.Render(w, http.StatusOK, "car_form.html", &carForm{
		PageData: s.page(w, r, "Edit car"),
		Action:   "/manager/cars/edit/" + strconv.FormatInt(id, 10),
		Form:     carValues(car),
		Statuses: model.CarStatuses,
		Car:      car,
	})
}

// CarEditSubmit handles POST /manager/cars/edit/{id}.
func (s *Server) CarEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/cars", flashError, "Car not found.")
		return
	}
	form := formValues(r)
	actor := ActorFrom(r.Context())

	rerender := func(status int, msg string) {
		car, _ := s.Services.Fleet.Get(r.Context(), id)
		s.Templates.Render(w, status, "car_form.html", &carForm{
			PageData: PageData{Title: "Edit car", User: actor, Error: msg},
			Action:   "/manager/cars/edit/" + strconv.FormatInt(id, 10),
			Form:     form,
			Statuses: model.CarStatuses,
			Car:      car,
		})
	}

	in, problem := carInput(form)
	if problem != "" {
		rerender(http.StatusBadRequest, problem)
		return
	}

	_, err := s.Services.Fleet.Update(r.Context(), *actor, id, in)
	if errors.Is(err, service.ErrUnknownCar) {
		redirectWith(w, r, "/manager/cars", flashError, userMessage(err, "update car"))
		return
	}
	if err != nil {
		rerender(service.HTTPStatus(err), userMessage(err, "update car"))
		return
	}
	redirectWith(w, r, "/manager/cars", flashSuccess, "Car updated.")
}

// CarDeleteSubmit handles POST /manager/cars/delete/{id}.
func (s *Server) CarDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/cars", flashError, "Car not found.")
		return
	}

	if err := s.Services.Fleet.Delete(r.Context(), *ActorFrom(r.Context()), id); err != nil {
		redirectWith(w, r, "/manager/cars", flashError, userMessage(err, "delete car"))
		return
	}
	redirectWith(w, r, "/manager/cars", flashSuccess, "Car deleted.")
}

// CarImageSubmit handles POST /manager/cars/{id}/image.
func (s *Server) CarImageSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/cars", flashError, "Car not found.")
		return
	}
	back := "/manager/cars/edit/" + strconv.FormatInt(id, 10)

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		redirectWith(w, r, back, flashError, "The photo is too large (max 5 MB).")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		redirectWith(w, r, back, flashError, "Choose a photo to upload.")
		return
	}
	defer file.Close()

	if err := s.Services.Fleet.SetPhoto(r.Context(), *ActorFrom(r.Context()), id, file); err != nil {
		redirectWith(w, r, back, flashError, userMessage(err, "upload car photo"))
		return
	}
	redirectWith(w, r, back, flashSuccess, "Photo uploaded.")
}
