package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/carrental/internal/model"
)

const reservationColumns = `id, car_id, client_id, manager_id, start_date, end_date,
	total_price_cents, status, created_at, updated_at`

// ReservationOrder selects the sort order of ListReservations.
type ReservationOrder int

const (
	// ByStartDate sorts by start date, latest first.
	ByStartDate ReservationOrder = iota
	// ByCreated sorts by creation time, newest first.
	ByCreated
)

func (o ReservationOrder) clause() string {
	if o == ByCreated {
		return `ORDER BY created_at DESC, id DESC`
	}
	return `ORDER BY start_date DESC, id DESC`
}

// StatusChange describes a reservation status update.
type StatusChange struct {
	ReservationID int64
	// From, when set, must equal the current status for the change to apply.
	From      string
	To        string
	HandledBy int64
	// CarID and CarStatus, when CarStatus is set, update the car in the same
	// transaction.
	CarID     int64
	CarStatus string
}

// CreateReservation inserts a reservation and returns the stored record.
func (s *Store) CreateReservation(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	result, err := s.db.NamedExecContext(ctx,
		`INSERT INTO reservations (car_id, client_id, manager_id, start_date, end_date, total_price_cents, status)
		 VALUES (:car_id, :client_id, :manager_id, :start_date, :end_date, :total_price_cents, :status)`,
		r,
	)
	if err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting reservation id: %w", err)
	}

	return s.GetReservation(ctx, id)
}

// GetReservation returns a reservation by ID.
func (s *Store) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	r := &model.Reservation{}
	err := s.db.GetContext(ctx, r, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reservation: %w", err)
	}
	return r, nil
}

// ListReservations returns reservations in the given order. A limit of 0
// returns all of them.
func (s *Store) ListReservations(ctx context.Context, order ReservationOrder, limit int) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ` + order.clause()
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var reservations []model.Reservation
	if err := s.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	return reservations, nil
}

// ChangeReservationStatus applies c atomically. It reports false when the
// reservation is missing or its status no longer matches c.From.
func (s *Store) ChangeReservationStatus(ctx context.Context, c StatusChange) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE reservations SET status = ?, manager_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args := []any{c.To, c.HandledBy, c.ReservationID}
	if c.From != "" {
		query += ` AND status = ?`
		args = append(args, c.From)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("updating reservation status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating reservation status: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if c.CarStatus != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE cars SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			c.CarStatus, c.CarID,
		); err != nil {
			return false, fmt.Errorf("updating car status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing status change: %w", err)
	}
	return true, nil
}

// CountReservations counts reservations, optionally restricted to one status.
func (s *Store) CountReservations(ctx context.Context, status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reservations`)
	} else {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reservations WHERE status = ?`, status)
	}
	if err != nil {
		return 0, fmt.Errorf("counting reservations: %w", err)
	}
	return n, nil
}

// SumReservationTotals sums total prices of reservations in the given status.
// The sum over no rows is zero.
func (s *Store) SumReservationTotals(ctx context.Context, status string) (model.Cents, error) {
	var total int64
	err := s.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total_price_cents), 0) FROM reservations WHERE status = ?`, status,
	)
	if err != nil {
		return 0, fmt.Errorf("summing reservation totals: %w", err)
	}
	return model.Cents(total), nil
}
