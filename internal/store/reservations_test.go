package store

import (
	"context"
	"testing"

	"github.com/erazemk/carrental/internal/db"
	"github.com/erazemk/carrental/internal/model"
)

func newReservation(carID int64, start, end string, total model.Cents, status string) *model.Reservation {
	return &model.Reservation{
		CarID:      carID,
		ClientID:   1,
		ManagerID:  1,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     status,
	}
}

func TestCreateAndGetReservation(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	r, err := s.CreateReservation(ctx, newReservation(1, "2024-01-01", "2024-01-03", 15000, model.ReservationPending))
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if r.StartDate != "2024-01-01" || r.EndDate != "2024-01-03" {
		t.Errorf("unexpected dates %s..%s", r.StartDate, r.EndDate)
	}
	if r.TotalPrice != 15000 {
		t.Errorf("expected total 15000, got %d", r.TotalPrice)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	missing, err := s.GetReservation(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil, got %+v, %v", missing, err)
	}
}

func TestListReservationsOrder(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.CreateReservation(ctx, newReservation(1, "2024-03-01", "2024-03-02", 100, model.ReservationPending))
	s.CreateReservation(ctx, newReservation(1, "2024-05-01", "2024-05-02", 100, model.ReservationPending))
	s.CreateReservation(ctx, newReservation(1, "2024-01-01", "2024-01-02", 100, model.ReservationPending))

	byStart, err := s.ListReservations(ctx, ByStartDate, 0)
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	want := []string{"2024-05-01", "2024-03-01", "2024-01-01"}
	for i, r := range byStart {
		if r.StartDate != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], r.StartDate)
		}
	}

	// Same-second inserts fall back to id order, newest first.
	recent, _ := s.ListReservations(ctx, ByCreated, 2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent reservations, got %d", len(recent))
	}
	if recent[0].StartDate != "2024-01-01" {
		t.Errorf("expected newest reservation first, got %s", recent[0].StartDate)
	}
}

func TestChangeReservationStatus(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	car, _ := s.CreateCar(ctx, newCar("A-1"))
	r, _ := s.CreateReservation(ctx, newReservation(car.ID, "2024-01-01", "2024-01-02", 100, model.ReservationPending))

	ok, err := s.ChangeReservationStatus(ctx, StatusChange{
		ReservationID: r.ID,
		From:          model.ReservationPending,
		To:            model.ReservationConfirmed,
		HandledBy:     7,
		CarID:         car.ID,
		CarStatus:     model.CarStatusRented,
	})
	if err != nil || !ok {
		t.Fatalf("ChangeReservationStatus: %v, %v", ok, err)
	}

	got, _ := s.GetReservation(ctx, r.ID)
	if got.Status != model.ReservationConfirmed || got.ManagerID != 7 {
		t.Errorf("unexpected reservation after change: %+v", got)
	}
	gotCar, _ := s.GetCar(ctx, car.ID)
	if gotCar.Status != model.CarStatusRented {
		t.Errorf("expected car rented, got %s", gotCar.Status)
	}

	// Stale From does not apply.
	ok, err = s.ChangeReservationStatus(ctx, StatusChange{
		ReservationID: r.ID,
		From:          model.ReservationPending,
		To:            model.ReservationRefused,
		HandledBy:     7,
	})
	if err != nil {
		t.Fatalf("ChangeReservationStatus: %v", err)
	}
	if ok {
		t.Error("expected stale change to be rejected")
	}

	// Without From any status is overwritten.
	ok, _ = s.ChangeReservationStatus(ctx, StatusChange{ReservationID: r.ID, To: model.ReservationPending, HandledBy: 8})
	if !ok {
		t.Error("expected unconditional change to apply")
	}
}

func TestCountAndSumReservations(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	total, err := s.SumReservationTotals(ctx, model.ReservationCompleted)
	if err != nil {
		t.Fatalf("SumReservationTotals: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 revenue, got %d", total)
	}

	s.CreateReservation(ctx, newReservation(1, "2024-01-01", "2024-01-02", 10000, model.ReservationCompleted))
	s.CreateReservation(ctx, newReservation(1, "2024-02-01", "2024-02-02", 2550, model.ReservationCompleted))
	s.CreateReservation(ctx, newReservation(1, "2024-03-01", "2024-03-02", 99999, model.ReservationConfirmed))

	total, _ = s.SumReservationTotals(ctx, model.ReservationCompleted)
	if total != 12550 {
		t.Errorf("expected 12550, got %d", total)
	}

	if n, _ := s.CountReservations(ctx, ""); n != 3 {
		t.Errorf("expected 3 reservations, got %d", n)
	}
	if n, _ := s.CountReservations(ctx, model.ReservationConfirmed); n != 1 {
		t.Errorf("expected 1 confirmed, got %d", n)
	}
}
