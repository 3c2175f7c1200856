package model

import (
	"fmt"
	"time"
)

// Car is a vehicle in the rental fleet.
type Car struct {
	ID                 int64     `db:"id" json:"id"`
	Make               string    `db:"make" json:"make"`
	Model              string    `db:"model" json:"model"`
	Year               int       `db:"year" json:"year"`
	RegistrationNumber string    `db:"registration_number" json:"registration_number"`
	DailyRate          Cents     `db:"daily_rate_cents" json:"daily_rate"`
	Status             string    `db:"status" json:"status"`
	ImageURL           string    `db:"image_url" json:"image_url,omitempty"`
	HasImage           bool      `db:"has_image" json:"has_image"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Car statuses.
const (
	CarStatusAvailable   = "available"
	CarStatusRented      = "rented"
	CarStatusMaintenance = "maintenance"
)

// CarStatuses lists car statuses in display order.
var CarStatuses = []string{CarStatusAvailable, CarStatusRented, CarStatusMaintenance}

// ValidCarStatus reports whether s is a known car status.
func ValidCarStatus(s string) bool {
	switch s {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance:
		return true
	}
	return false
}

// Label is the human-readable car description used on reservations.
func (c *Car) Label() string {
	return fmt.Sprintf("%s %s (%s)", c.Make, c.Model, c.RegistrationNumber)
}
