package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/erazemk/carrental/internal/imaging"
	"github.com/erazemk/carrental/internal/model"
)

// MinCarYear is the earliest accepted model year.
const MinCarYear = 1886

// CarStore is the persistence needed by Fleet.
type CarStore interface {
	CreateCar(ctx context.Context, c *model.Car) (*model.Car, error)
	GetCar(ctx context.Context, id int64) (*model.Car, error)
	FindCarByRegistration(ctx context.Context, registration string) (*model.Car, error)
	ListCars(ctx context.Context, status string) ([]model.Car, error)
	UpdateCar(ctx context.Context, c *model.Car) error
	DeleteCar(ctx context.Context, id int64) (bool, error)
	SetCarImage(ctx context.Context, id int64, image []byte, mime string) error
	GetCarImage(ctx context.Context, id int64) ([]byte, string, error)
}

// CarInput is the editable part of a car.
type CarInput struct {
	Make               string
	Model              string
	Year               int
	RegistrationNumber string
	DailyRate          model.Cents
	// Status defaults to available on create and to the current status on
	// update.
	Status string
	// ImageURL keeps the current value on update when empty.
	ImageURL string
}

// Fleet maintains the car catalogue.
type Fleet struct {
	store CarStore
	now   func() time.Time
}

// NewFleet returns a car catalogue service.
func NewFleet(s CarStore) *Fleet {
	return &Fleet{store: s, now: time.Now}
}

func (in *CarInput) normalize() {
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.RegistrationNumber = strings.ToUpper(strings.TrimSpace(in.RegistrationNumber))
	in.Status = strings.TrimSpace(in.Status)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (f *Fleet) validate(in CarInput) error {
	if in.Make == "" || in.Model == "" || in.RegistrationNumber == "" {
		return newError(ErrInvalidInput, "make, model and registration number are required")
	}
	if maxYear := f.now().Year() + 1; in.Year < MinCarYear || in.Year > maxYear {
		return newError(ErrInvalidInput, "year must be between %d and %d", MinCarYear, maxYear)
	}
	if in.DailyRate <= 0 {
		return newError(ErrInvalidInput, "daily rate must be positive")
	}
	if in.Status != "" && !model.ValidCarStatus(in.Status) {
		return newError(ErrInvalidInput, "unknown car status %q", in.Status)
	}
	return nil
}

// checkRegistration fails if another car already uses the registration.
func (f *Fleet) checkRegistration(ctx context.Context, registration string, selfID int64) error {
	existing, err := f.store.FindCarByRegistration(ctx, registration)
	if err != nil {
		return fmt.Errorf("checking registration: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return duplicateRegistration(registration)
	}
	return nil
}

func duplicateRegistration(registration string) error {
	return newError(ErrDuplicateKey, "a car with registration number %s already exists", registration)
}

// Create adds a car.
func (f *Fleet) Create(ctx context.Context, actor Actor, in CarInput) (*model.Car, error) {
	in.normalize()
	if in.Status == "" {
		in.Status = model.CarStatusAvailable
	}
	if err := f.validate(in); err != nil {
		return nil, err
	}
	if err := f.checkRegistration(ctx, in.RegistrationNumber, 0); err != nil {
		return nil, err
	}

	car, err := f.store.CreateCar(ctx, &model.Car{
		Make:               in.Make,
		Model:              in.Model,
		Year:               in.Year,
		RegistrationNumber: in.RegistrationNumber,
		DailyRate:          in.DailyRate,
		Status:             in.Status,
		ImageURL:           in.ImageURL,
	})
	if errors.Is(err, ErrDuplicateKey) {
		return nil, duplicateRegistration(in.RegistrationNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("creating car: %w", err)
	}

	slog.Info("car created", "user", actor.Username, "car", car.Label())
	return car, nil
}

// Update overwrites a car's details.
func (f *Fleet) Update(ctx context.Context, actor Actor, id int64, in CarInput) (*model.Car, error) {
	car, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if in.Status == "" {
		in.Status = car.Status
	}
	if in.ImageURL == "" {
		in.ImageURL = car.ImageURL
	}
	if err := f.validate(in); err != nil {
		return nil, err
	}
	if err := f.checkRegistration(ctx, in.RegistrationNumber, id); err != nil {
		return nil, err
	}

	car.Make = in.Make
	car.Model = in.Model
	car.Year = in.Year
	car.RegistrationNumber = in.RegistrationNumber
	car.DailyRate = in.DailyRate
	car.Status = in.Status
	car.ImageURL = in.ImageURL

	err = f.store.UpdateCar(ctx, car)
	if errors.Is(err, ErrDuplicateKey) {
		return nil, duplicateRegistration(in.RegistrationNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("updating car: %w", err)
	}

	slog.Info("car updated", "user", actor.Username, "car", car.Label(), "status", car.Status)
	return f.Get(ctx, id)
}

// Delete removes a car. Reservations that reference it keep their car ID.
func (f *Fleet) Delete(ctx context.Context, actor Actor, id int64) error {
	deleted, err := f.store.DeleteCar(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting car: %w", err)
	}
	if !deleted {
		return ErrUnknownCar
	}
	slog.Info("car deleted", "user", actor.Username, "car", id)
	return nil
}

// Get returns a car or ErrUnknownCar.
func (f *Fleet) Get(ctx context.Context, id int64) (*model.Car, error) {
	car, err := f.store.GetCar(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting car: %w", err)
	}
	if car == nil {
		return nil, ErrUnknownCar
	}
	return car, nil
}

// List returns every car.
func (f *Fleet) List(ctx context.Context) ([]model.Car, error) {
	return f.store.ListCars(ctx, "")
}

// Available returns cars whose status is available.
func (f *Fleet) Available(ctx context.Context) ([]model.Car, error) {
	return f.store.ListCars(ctx, model.CarStatusAvailable)
}

// SetPhoto normalises and stores an uploaded photo for a car.
func (f *Fleet) SetPhoto(ctx context.Context, actor Actor, id int64, r io.Reader) error {
	car, err := f.Get(ctx, id)
	if err != nil {
		return err
	}

	photo, err := imaging.Process(r)
	if err != nil {
		return newError(ErrInvalidInput, "%v", err)
	}
	if err := f.store.SetCarImage(ctx, id, photo.Data, photo.MIME); err != nil {
		return fmt.Errorf("saving car photo: %w", err)
	}

	slog.Info("car photo uploaded", "user", actor.Username, "car", car.Label(), "width", photo.Width, "height", photo.Height)
	return nil
}

// Photo returns a car's stored photo, or ErrUnknownCar when there is none.
func (f *Fleet) Photo(ctx context.Context, id int64) ([]byte, string, error) {
	data, mime, err := f.store.GetCarImage(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("getting car photo: %w", err)
	}
	if data == nil {
		return nil, "", ErrUnknownCar
	}
	return data, mime, nil
}
