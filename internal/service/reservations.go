package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/store"
)

// ReservationStore is the persistence needed by Reservations.
type ReservationStore interface {
	GetCar(ctx context.Context, id int64) (*model.Car, error)
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
	ListReservations(ctx context.Context, order store.ReservationOrder, limit int) ([]model.Reservation, error)
	ChangeReservationStatus(ctx context.Context, c store.StatusChange) (bool, error)
}

// Reservations prices, records and moves reservations through their lifecycle.
type Reservations struct {
	store ReservationStore
	opts  Options
}

// NewReservations returns a reservation engine.
func NewReservations(s ReservationStore, opts Options) *Reservations {
	return &Reservations{store: s, opts: opts}
}

// transitions lists the actions allowed from each status in strict mode.
var transitions = map[string][]string{
	model.ReservationPending:   {model.ActionConfirm, model.ActionRefuse},
	model.ReservationConfirmed: {model.ActionComplete},
}

// Allowed reports whether action may be applied to a reservation in status.
func (r *Reservations) Allowed(status, action string) bool {
	if _, ok := model.ActionTarget[action]; !ok {
		return false
	}
	if !r.opts.StrictTransitions {
		return true
	}
	return slices.Contains(transitions[status], action)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// RentalDays counts the days between start and end, both inclusive. Both
// must be midnight UTC, as returned by ParseDate.
func RentalDays(start, end time.Time) int64 {
	return (end.Unix()-start.Unix())/secondsPerDay + 1
}

const secondsPerDay = 24 * 60 * 60

// Price is the total for renting at dailyRate from start to end inclusive.
// Totals that do not fit in Cents are rejected.
func Price(start, end time.Time, dailyRate model.Cents) (model.Cents, error) {
	days := RentalDays(start, end)
	if dailyRate > 0 && days > math.MaxInt64/int64(dailyRate) {
		return 0, newError(ErrInvalidInput, "total price for %d days is too large", days)
	}
	return model.Cents(days) * dailyRate, nil
}

// Create validates and prices a new reservation and stores it as pending.
// Existing bookings of the car are not consulted.
func (r *Reservations) Create(ctx context.Context, actor Actor, carID, clientID int64, startText, endText string) (*model.Reservation, error) {
	start, err := ParseDate(startText)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endText)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	car, err := r.store.GetCar(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("looking up car: %w", err)
	}
	if car == nil {
		return nil, ErrUnknownCar
	}

	client, err := r.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("looking up client: %w", err)
	}
	if client == nil {
		return nil, ErrUnknownClient
	}

	total, err := Price(start, end, car.DailyRate)
	if err != nil {
		return nil, err
	}

	res, err := r.store.CreateReservation(ctx, &model.Reservation{
		CarID:      car.ID,
		ClientID:   client.ID,
		ManagerID:  actor.UserID,
		StartDate:  start.Format(model.DateLayout),
		EndDate:    end.Format(model.DateLayout),
		TotalPrice: total,
		Status:     model.ReservationPending,
	})
	if err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	res.CarLabel = car.Label()
	res.ClientName = client.Name

	slog.Info("reservation created",
		"user", actor.Username,
		"reservation", res.ID,
		"car", res.CarLabel,
		"client", res.ClientName,
		"days", RentalDays(start, end),
		"total", res.TotalPrice.String(),
	)
	return res, nil
}

// Transition applies action to a reservation and returns its new status.
func (r *Reservations) Transition(ctx context.Context, actor Actor, id int64, action string) (string, error) {
	res, err := r.store.GetReservation(ctx, id)
	if err != nil {
		return "", fmt.Errorf("looking up reservation: %w", err)
	}
	if res == nil {
		return "", ErrUnknownReservation
	}

	target, ok := model.ActionTarget[action]
	if !ok {
		return "", newError(ErrInvalidAction, "unknown action %q", action)
	}
	if !r.Allowed(res.Status, action) {
		return "", newError(ErrInvalidAction, "cannot %s a %s reservation", action, res.Status)
	}

	change := store.StatusChange{
		ReservationID: id,
		To:            target,
		HandledBy:     actor.UserID,
	}
	if r.opts.StrictTransitions {
		change.From = res.Status
	}
	if r.opts.SyncCarStatus {
		change.CarID = res.CarID
		switch action {
		case model.ActionConfirm:
			change.CarStatus = model.CarStatusRented
		case model.ActionComplete:
			change.CarStatus = model.CarStatusAvailable
		}
	}

	applied, err := r.store.ChangeReservationStatus(ctx, change)
	if err != nil {
		return "", fmt.Errorf("changing reservation status: %w", err)
	}
	if !applied {
		if r.opts.StrictTransitions {
			return "", newError(ErrInvalidAction, "reservation was changed by someone else, reload and try again")
		}
		return "", ErrUnknownReservation
	}

	slog.Info("reservation status changed",
		"user", actor.Username,
		"reservation", id,
		"from", res.Status,
		"to", target,
	)
	return target, nil
}

// Get returns one enriched reservation.
func (r *Reservations) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := r.store.GetReservation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up reservation: %w", err)
	}
	if res == nil {
		return nil, ErrUnknownReservation
	}
	newEnricher(r.store).enrich(ctx, res)
	return res, nil
}

// List returns all reservations, latest start date first, enriched with car
// and client labels.
func (r *Reservations) List(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, store.ByStartDate, 0)
}

// Recent returns the n most recently created reservations, enriched.
func (r *Reservations) Recent(ctx context.Context, n int) ([]model.Reservation, error) {
	return r.list(ctx, store.ByCreated, n)
}

func (r *Reservations) list(ctx context.Context, order store.ReservationOrder, limit int) ([]model.Reservation, error) {
	list, err := r.store.ListReservations(ctx, order, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	e := newEnricher(r.store)
	for i := range list {
		e.enrich(ctx, &list[i])
	}
	return list, nil
}

// enricher resolves car and client labels, caching lookups for one call.
type enricher struct {
	store   ReservationStore
	cars    map[int64]string
	clients map[int64]string
}

func newEnricher(s ReservationStore) *enricher {
	return &enricher{store: s, cars: map[int64]string{}, clients: map[int64]string{}}
}

// enrich never fails: missing or unreadable records get placeholder labels.
func (e *enricher) enrich(ctx context.Context, res *model.Reservation) {
	label, ok := e.cars[res.CarID]
	if !ok {
		label = model.UnknownCarLabel
		car, err := e.store.GetCar(ctx, res.CarID)
		if err != nil {
			slog.Warn("failed to look up reservation car", "reservation", res.ID, "car", res.CarID, "error", err)
		} else if car != nil {
			label = car.Label()
		}
		e.cars[res.CarID] = label
	}
	res.CarLabel = label

	name, ok := e.clients[res.ClientID]
	if !ok {
		name = model.UnknownClientName
		client, err := e.store.GetClient(ctx, res.ClientID)
		if err != nil {
			slog.Warn("failed to look up reservation client", "reservation", res.ID, "client", res.ClientID, "error", err)
		} else if client != nil {
			name = client.Name
		}
		e.clients[res.ClientID] = name
	}
	res.ClientName = name
}
