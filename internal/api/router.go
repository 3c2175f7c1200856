package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

// NewRouter creates the API router with all endpoints registered under /api.
func NewRouter(svc *service.Services) http.Handler {
	authHandler := &AuthHandler{Sessions: svc.Sessions, Accounts: svc.Accounts}
	carsHandler := &CarsHandler{Fleet: svc.Fleet}
	clientsHandler := &ClientsHandler{Clients: svc.Clients}
	reservationsHandler := &ReservationsHandler{Reservations: svc.Reservations}
	dashboardHandler := &DashboardHandler{Dashboard: svc.Dashboard}
	managersHandler := &ManagersHandler{Accounts: svc.Accounts}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Public.
		r.Post("/auth/login", authHandler.Login)
		r.Get("/cars/available", carsHandler.Available)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svc.Sessions))

			r.Post("/auth/logout", authHandler.Logout)
			r.Put("/auth/password", authHandler.ChangePassword)

			r.With(RequireRole(model.RoleAdmin, model.RoleManager)).Get("/dashboard", dashboardHandler.Stats)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(model.RoleAdmin))
				r.Get("/managers", managersHandler.List)
				r.Post("/managers", managersHandler.Create)
				r.Put("/managers/{id}", managersHandler.Update)
				r.Delete("/managers/{id}", managersHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(model.RoleManager))

				r.Get("/cars", carsHandler.List)
				r.Post("/cars", carsHandler.Create)
				r.Get("/cars/{id}", carsHandler.Get)
				r.Put("/cars/{id}", carsHandler.Update)
				r.Delete("/cars/{id}", carsHandler.Delete)

				r.Get("/clients", clientsHandler.List)
				r.Post("/clients", clientsHandler.Create)
				r.Get("/clients/{id}", clientsHandler.Get)
				r.Put("/clients/{id}", clientsHandler.Update)
				r.Delete("/clients/{id}", clientsHandler.Delete)

				r.Get("/reservations", reservationsHandler.List)
				r.Post("/reservations", reservationsHandler.Create)
				r.Get("/reservations/{id}", reservationsHandler.Get)
				r.Post("/reservations/{id}/{action}", reservationsHandler.Transition)
			})
		})
	})

	return r
}
