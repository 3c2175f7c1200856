package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// reservationRow is a reservation with the actions its status allows.
type reservationRow struct {
	model.Reservation
	Actions []string
}

var actionOrder = []string{model.ActionConfirm, model.ActionRefuse, model.ActionComplete}

// ReservationsPage handles GET /manager/reservations.
func (s *Server) ReservationsPage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(w, r, "Reservations")
	list, err := s.Services.Reservations.List(r.Context())
	if err != nil {
		pd.Error = userMessage(err, "list reservations")
	}

	rows := make([]reservationRow, 0, len(list))
	for _, res := range list {
		row := reservationRow{Reservation: res}
		for _, a := range actionOrder {
			if s.Services.Reservations.Allowed(res.Status, a) {
				row.Actions = append(row.Actions, a)
			}
		}
		rows = append(rows, row)
	}

	s.Templates.Render(w, http.StatusOK, "reservations.html", &struct {
		PageData
		Reservations []reservationRow
	}{PageData: pd, Reservations: rows})
}

type reservationNewPage struct {
	PageData
	Form    url.Values
	Cars    []model.Car
	Clients []model.Client
}

func (s *Server) renderReservationNew(w http.ResponseWriter, r *http.Request, status int, pd PageData, form url.Values) {
	cars, err := s.Services.Fleet.List(r.Context())
	if err != nil {
		slog.Error("failed to list cars", "error", err)
	}
	clients, err := s.Services.Clients.List(r.Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
	}

	s.Templates.Render(w, status, "reservation_new.html", &reservationNewPage{
		PageData: pd,
		Form:     form,
		Cars:     cars,
		Clients:  clients,
	})
}

// ReservationNewPage handles GET /manager/reservations/new.
func (s *Server) ReservationNewPage(w http.ResponseWriter, r *http.Request) {
	s.renderReservationNew(w, r, http.StatusOK, s.page(w, r, "New reservation"), url.Values{})
}

// ReservationNewSubmit handles POST /manager/reservations/new.
func (s *Server) ReservationNewSubmit(w http.ResponseWriter, r *http.Request) {
	form := formValues(r)
	actor := ActorFrom(r.Context())
	pd := PageData{Title: "New reservation", User: actor}

	carID, err := strconv.ParseInt(form.Get("car_id"), 10, 64)
	if err != nil {
		pd.Error = "Choose a car."
		s.renderReservationNew(w, r, http.StatusBadRequest, pd, form)
		return
	}
	clientID, err := strconv.ParseInt(form.Get("client_id"), 10, 64)
	if err != nil {
		pd.Error = "Choose a client."
		s.renderReservationNew(w, r, http.StatusBadRequest, pd, form)
		return
	}

	res, err := s.Services.Reservations.Create(r.Context(), *actor, carID, clientID, form.Get("start_date"), form.Get("end_date"))
	if err != nil {
		pd.Error = userMessage(err, "create reservation")
		s.renderReservationNew(w, r, service.HTTPStatus(err), pd, form)
		return
	}

	redirectWith(w, r, "/manager/reservations", flashSuccess,
		"Reservation created, total "+res.TotalPrice.String()+".")
}

// ReservationManageSubmit handles POST /manager/reservations/manage/{id}/{action}.
func (s *Server) ReservationManageSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		redirectWith(w, r, "/manager/reservations", flashError, "Reservation not found.")
		return
	}

	status, err := s.Services.Reservations.Transition(r.Context(), *ActorFrom(r.Context()), id, chi.URLParam(r, "action"))
	if err != nil {
		redirectWith(w, r, "/manager/reservations", flashError, userMessage(err, "change reservation status"))
		return
	}
	redirectWith(w, r, "/manager/reservations", flashSuccess, "Reservation "+status+".")
}
