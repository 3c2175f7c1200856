package model

import "time"

// DateLayout is the calendar date format of reservation start and end dates.
const DateLayout = "2006-01-02"

// Reservation books a car for a client over an inclusive date range.
type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	CarID      int64     `db:"car_id" json:"car_id"`
	ClientID   int64     `db:"client_id" json:"client_id"`
	ManagerID  int64     `db:"manager_id" json:"manager_id"`
	StartDate  string    `db:"start_date" json:"start_date"`
	EndDate    string    `db:"end_date" json:"end_date"`
	TotalPrice Cents     `db:"total_price_cents" json:"total_price"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	// Filled by enrichment, never stored.
	CarLabel   string `db:"-" json:"car_label,omitempty"`
	ClientName string `db:"-" json:"client_name,omitempty"`
}

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationRefused   = "refused"
	ReservationCompleted = "completed"
)

// Reservation actions.
const (
	ActionConfirm  = "confirm"
	ActionRefuse   = "refuse"
	ActionComplete = "complete"
)

// ActionTarget maps each action to the status it produces.
var ActionTarget = map[string]string{
	ActionConfirm:  ReservationConfirmed,
	ActionRefuse:   ReservationRefused,
	ActionComplete: ReservationCompleted,
}

// Placeholders shown when a reservation points at a deleted car or client.
const (
	UnknownCarLabel   = "Unknown car"
	UnknownClientName = "Unknown client"
)
