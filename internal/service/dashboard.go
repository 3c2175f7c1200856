package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/carrental/internal/model"
)

// RecentLimit is the number of reservations shown as recent activity.
const RecentLimit = 5

// StatsStore is the persistence needed by Dashboard.
type StatsStore interface {
	CountUsers(ctx context.Context, role string) (int, error)
	CountCars(ctx context.Context, status string) (int, error)
	CountClients(ctx context.Context) (int, error)
	CountReservations(ctx context.Context, status string) (int, error)
	SumReservationTotals(ctx context.Context, status string) (model.Cents, error)
}

// Stats is a snapshot of the back-office.
type Stats struct {
	Managers            int
	Cars                int
	Clients             int
	Reservations        int
	PendingReservations int
	CarsByStatus        map[string]int
	// Revenue is the sum of completed reservation totals.
	Revenue model.Cents
	Recent  []model.Reservation
}

// Dashboard computes Stats. Nothing is cached.
type Dashboard struct {
	store        StatsStore
	reservations *Reservations
}

// NewDashboard returns a dashboard aggregator.
func NewDashboard(s StatsStore, r *Reservations) *Dashboard {
	return &Dashboard{store: s, reservations: r}
}

// Stats gathers all counts concurrently.
func (d *Dashboard) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{CarsByStatus: make(map[string]int, len(model.CarStatuses))}
	byStatus := make([]int, len(model.CarStatuses))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Managers, err = d.store.CountUsers(gctx, model.RoleManager)
		return err
	})
	g.Go(func() (err error) {
		st.Cars, err = d.store.CountCars(gctx, "")
		return err
	})
	for i, status := range model.CarStatuses {
		g.Go(func() (err error) {
			byStatus[i], err = d.store.CountCars(gctx, status)
			return err
		})
	}
	g.Go(func() (err error) {
		st.Clients, err = d.store.CountClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.Reservations, err = d.store.CountReservations(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		st.PendingReservations, err = d.store.CountReservations(gctx, model.ReservationPending)
		return err
	})
	g.Go(func() (err error) {
		st.Revenue, err = d.store.SumReservationTotals(gctx, model.ReservationCompleted)
		return err
	})
	g.Go(func() (err error) {
		st.Recent, err = d.reservations.Recent(gctx, RecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing dashboard: %w", err)
	}

	for i, status := range model.CarStatuses {
		st.CarsByStatus[status] = byStatus[i]
	}
	return st, nil
}
