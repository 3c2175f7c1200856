package service

import (
	"github.com/erazemk/carrental/internal/store"
)

// Services bundles everything the HTTP layers call into.
type Services struct {
	Sessions     *Sessions
	Accounts     *Accounts
	Fleet        *Fleet
	Clients      *Clients
	Reservations *Reservations
	Dashboard    *Dashboard
}

// New wires all services over one store.
func New(st *store.Store, jwtSecret string, opts Options) *Services {
	accounts := NewAccounts(st)
	reservations := NewReservations(st, opts)
	return &Services{
		Sessions:     NewSessions(accounts, st, jwtSecret),
		Accounts:     accounts,
		Fleet:        NewFleet(st),
		Clients:      NewClients(st),
		Reservations: reservations,
		Dashboard:    NewDashboard(st, reservations),
	}
}
