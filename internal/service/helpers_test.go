package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/carrental/internal/db"
	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/store"
)

var manager = Actor{UserID: 1, Username: "mgr", Role: model.RoleManager}

type testEnv struct {
	store        *store.Store
	reservations *Reservations
	dashboard    *Dashboard
	fleet        *Fleet
	clients      *Clients
	accounts     *Accounts
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	st := store.New(db.NewTestDB(t))
	accounts := NewAccounts(st)
	accounts.HashCost = bcrypt.MinCost
	res := NewReservations(st, opts)
	return &testEnv{
		store:        st,
		reservations: res,
		dashboard:    NewDashboard(st, res),
		fleet:        NewFleet(st),
		clients:      NewClients(st),
		accounts:     accounts,
	}
}

func (e *testEnv) car(t *testing.T, reg string, rate model.Cents) *model.Car {
	t.Helper()
	car, err := e.fleet.Create(context.Background(), manager, CarInput{
		Make: "Toyota", Model: "Corolla", Year: 2020, RegistrationNumber: reg, DailyRate: rate,
	})
	require.NoError(t, err)
	return car
}

func (e *testEnv) client(t *testing.T, name, email string) *model.Client {
	t.Helper()
	c, err := e.clients.Create(context.Background(), manager, ClientInput{Name: name, Email: email, Phone: "040 123 456"})
	require.NoError(t, err)
	return c
}

// mockReservationStore is a testify mock of ReservationStore.
type mockReservationStore struct {
	mock.Mock
}

func (m *mockReservationStore) GetCar(ctx context.Context, id int64) (*model.Car, error) {
	args := m.Called(ctx, id)
	car, _ := args.Get(0).(*model.Car)
	return car, args.Error(1)
}

func (m *mockReservationStore) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*model.Client)
	return client, args.Error(1)
}

func (m *mockReservationStore) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.Reservation)
	return res, args.Error(1)
}

func (m *mockReservationStore) CreateReservation(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	args := m.Called(ctx, r)
	res, _ := args.Get(0).(*model.Reservation)
	return res, args.Error(1)
}

func (m *mockReservationStore) ListReservations(ctx context.Context, order store.ReservationOrder, limit int) ([]model.Reservation, error) {
	args := m.Called(ctx, order, limit)
	list, _ := args.Get(0).([]model.Reservation)
	return list, args.Error(1)
}

func (m *mockReservationStore) ChangeReservationStatus(ctx context.Context, c store.StatusChange) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

// mockStatsStore is a testify mock of StatsStore.
type mockStatsStore struct {
	mock.Mock
}

func (m *mockStatsStore) CountUsers(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) CountCars(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) CountReservations(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *mockStatsStore) SumReservationTotals(ctx context.Context, status string) (model.Cents, error) {
	args := m.Called(ctx, status)
	total, _ := args.Get(0).(model.Cents)
	return total, args.Error(1)
}
