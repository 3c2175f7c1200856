package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/carrental/internal/model"
)

func TestFleetCreateDefaults(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())

	car, err := env.fleet.Create(context.Background(), manager, CarInput{
		Make: " Renault ", Model: "Clio", Year: 2019, RegistrationNumber: "lj ab-123", DailyRate: 3500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renault", car.Make)
	assert.Equal(t, "LJ AB-123", car.RegistrationNumber)
	assert.Equal(t, model.CarStatusAvailable, car.Status)
}

func TestFleetDuplicateRegistration(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())
	ctx := context.Background()

	env.car(t, "AB-123", 5000)
	_, err := env.fleet.Create(ctx, manager, CarInput{
		Make: "VW", Model: "Golf", Year: 2021, RegistrationNumber: "AB-123", DailyRate: 6000,
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "AB-123")
}

func TestFleetUpdateExcludesSelf(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())
	ctx := context.Background()

	a := env.car(t, "A-1", 5000)
	env.car(t, "B-2", 5000)

	updated, err := env.fleet.Update(ctx, manager, a.ID, CarInput{
		Make: "Toyota", Model: "Yaris", Year: 2022, RegistrationNumber: "A-1", DailyRate: 4500,
		Status: model.CarStatusMaintenance, ImageURL: "https://example.com/yaris.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yaris", updated.Model)
	assert.Equal(t, model.CarStatusMaintenance, updated.Status)

	// Empty status and image URL keep the current values.
	updated, err = env.fleet.Update(ctx, manager, a.ID, CarInput{
		Make: "Toyota", Model: "Yaris", Year: 2022, RegistrationNumber: "A-1", DailyRate: 4500,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CarStatusMaintenance, updated.Status)
	assert.Equal(t, "https://example.com/yaris.jpg", updated.ImageURL)

	_, err = env.fleet.Update(ctx, manager, a.ID, CarInput{
		Make: "Toyota", Model: "Yaris", Year: 2022, RegistrationNumber: "B-2", DailyRate: 4500,
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = env.fleet.Update(ctx, manager, 9999, CarInput{})
	assert.ErrorIs(t, err, ErrUnknownCar)
}

func TestFleetValidation(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())
	valid := CarInput{Make: "VW", Model: "Up", Year: 2015, RegistrationNumber: "X-1", DailyRate: 2000}

	tests := map[string]func(in *CarInput){
		"missing make":   func(in *CarInput) { in.Make = "" },
		"missing reg":    func(in *CarInput) { in.RegistrationNumber = "  " },
		"ancient year":   func(in *CarInput) { in.Year = 1800 },
		"future year":    func(in *CarInput) { in.Year = 3000 },
		"zero rate":      func(in *CarInput) { in.DailyRate = 0 },
		"negative rate":  func(in *CarInput) { in.DailyRate = -100 },
		"unknown status": func(in *CarInput) { in.Status = "sold" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := env.fleet.Create(context.Background(), manager, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestFleetAvailableAndDelete(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())
	ctx := context.Background()

	a := env.car(t, "A-1", 5000)
	_, err := env.fleet.Create(ctx, manager, CarInput{
		Make: "VW", Model: "Golf", Year: 2021, RegistrationNumber: "B-2", DailyRate: 6000,
		Status: model.CarStatusRented,
	})
	require.NoError(t, err)

	available, err := env.fleet.Available(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, a.ID, available[0].ID)

	require.NoError(t, env.fleet.Delete(ctx, manager, a.ID))
	assert.ErrorIs(t, env.fleet.Delete(ctx, manager, a.ID), ErrUnknownCar)

	all, _ := env.fleet.List(ctx)
	assert.Len(t, all, 1)
}

func TestFleetPhoto(t *testing.T) {
	env := newTestEnv(t, DefaultOptions())
	ctx := context.Background()
	car := env.car(t, "A-1", 5000)

	_, _, err := env.fleet.Photo(ctx, car.ID)
	assert.ErrorIs(t, err, ErrUnknownCar)

	err = env.fleet.SetPhoto(ctx, manager, car.ID, strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	require.NoError(t, env.fleet.SetPhoto(ctx, manager, car.ID, &buf))

	data, mime, err := env.fleet.Photo(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.NotEmpty(t, data)

	got, _ := env.fleet.Get(ctx, car.ID)
	assert.True(t, got.HasImage)
}
