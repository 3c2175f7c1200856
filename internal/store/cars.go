package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/carrental/internal/model"
)

const carColumns = `id, make, model, year, registration_number, daily_rate_cents, status,
	image_url, image IS NOT NULL AS has_image, created_at, updated_at`

// CreateCar inserts a car and returns the stored record.
func (s *Store) CreateCar(ctx context.Context, c *model.Car) (*model.Car, error) {
	result, err := s.db.NamedExecContext(ctx,
		`INSERT INTO cars (make, model, year, registration_number, daily_rate_cents, status, image_url)
		 VALUES (:make, :model, :year, :registration_number, :daily_rate_cents, :status, :image_url)`,
		c,
	)
	if err != nil {
		return nil, writeErr("creating car", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting car id: %w", err)
	}

	return s.GetCar(ctx, id)
}

// GetCar returns a car by ID.
func (s *Store) GetCar(ctx context.Context, id int64) (*model.Car, error) {
	c := &model.Car{}
	err := s.db.GetContext(ctx, c, `SELECT `+carColumns+` FROM cars WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting car: %w", err)
	}
	return c, nil
}

// FindCarByRegistration returns the car with the given registration number.
func (s *Store) FindCarByRegistration(ctx context.Context, registration string) (*model.Car, error) {
	c := &model.Car{}
	err := s.db.GetContext(ctx, c,
		`SELECT `+carColumns+` FROM cars WHERE registration_number = ?`, registration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding car by registration: %w", err)
	}
	return c, nil
}

// ListCars returns all cars, optionally filtered by status.
func (s *Store) ListCars(ctx context.Context, status string) ([]model.Car, error) {
	var cars []model.Car
	var err error
	if status != "" {
		err = s.db.SelectContext(ctx, &cars,
			`SELECT `+carColumns+` FROM cars WHERE status = ? ORDER BY make, model, id`, status,
		)
	} else {
		err = s.db.SelectContext(ctx, &cars,
			`SELECT `+carColumns+` FROM cars ORDER BY make, model, id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	return cars, nil
}

// UpdateCar overwrites a car's editable fields.
func (s *Store) UpdateCar(ctx context.Context, c *model.Car) error {
	_, err := s.db.NamedExecContext(ctx,
		`UPDATE cars SET make = :make, model = :model, year = :year,
		 registration_number = :registration_number, daily_rate_cents = :daily_rate_cents,
		 status = :status, image_url = :image_url, updated_at = CURRENT_TIMESTAMP
		 WHERE id = :id`,
		c,
	)
	if err != nil {
		return writeErr("updating car", err)
	}
	return nil
}

// DeleteCar removes a car. Reservations referencing it are left untouched.
func (s *Store) DeleteCar(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting car: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting car: %w", err)
	}
	return n > 0, nil
}

// SetCarImage stores an uploaded car photo.
func (s *Store) SetCarImage(ctx context.Context, id int64, image []byte, mime string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE cars SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting car image: %w", err)
	}
	return nil
}

// GetCarImage returns a car's photo and MIME type, or nil data if none.
func (s *Store) GetCarImage(ctx context.Context, id int64) ([]byte, string, error) {
	var row struct {
		Image []byte         `db:"image"`
		MIME  sql.NullString `db:"image_mime"`
	}
	err := s.db.GetContext(ctx, &row, `SELECT image, image_mime FROM cars WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting car image: %w", err)
	}
	return row.Image, row.MIME.String, nil
}

// CountCars counts cars, optionally restricted to one status.
func (s *Store) CountCars(ctx context.Context, status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM cars`)
	} else {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM cars WHERE status = ?`, status)
	}
	if err != nil {
		return 0, fmt.Errorf("counting cars: %w", err)
	}
	return n, nil
}
