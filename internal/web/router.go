package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
	webembed "github.com/erazemk/carrental/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(svc *service.Services, secureCookies bool) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Services:      svc,
		Templates:     templates,
		SecureCookies: secureCookies,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware(svc.Sessions))

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	r.Get("/", s.AvailableCars)
	r.Get("/cars/available", s.AvailableCars)
	r.Get("/cars/{id}/image", s.CarImage)
	r.Get("/login", s.LoginPage)
	r.Post("/login", s.LoginSubmit)
	r.Post("/logout", s.Logout)

	r.Group(func(r chi.Router) {
		r.Use(RequireRole())
		r.Get("/settings", s.SettingsPage)
		r.Post("/settings", s.SettingsSubmit)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireRole(model.RoleAdmin))
		r.Get("/dashboard", s.AdminDashboard)
		r.Get("/managers", s.ManagersPage)
		r.Get("/managers/add", s.ManagerAddPage)
		r.Post("/managers/add", s.ManagerAddSubmit)
		r.Get("/managers/edit/{id}", s.ManagerEditPage)
		r.Post("/managers/edit/{id}", s.ManagerEditSubmit)
		r.Post("/managers/delete/{id}", s.ManagerDeleteSubmit)
	})

	r.Route("/manager", func(r chi.Router) {
		r.Use(RequireRole(model.RoleManager))
		r.Get("/dashboard", s.ManagerDashboard)

		r.Get("/cars", s.CarsPage)
		r.Get("/cars/add", s.CarAddPage)
		r.Post("/cars/add", s.CarAddSubmit)
		r.Get("/cars/edit/{id}", s.CarEditPage)
		r.Post("/cars/edit/{id}", s.CarEditSubmit)
		r.Post("/cars/delete/{id}", s.CarDeleteSubmit)
		r.Post("/cars/{id}/image", s.CarImageSubmit)

		r.Get("/clients", s.ClientsPage)
		r.Get("/clients/add", s.ClientAddPage)
		r.Post("/clients/add", s.ClientAddSubmit)
		r.Get("/clients/edit/{id}", s.ClientEditPage)
		r.Post("/clients/edit/{id}", s.ClientEditSubmit)
		r.Post("/clients/delete/{id}", s.ClientDeleteSubmit)

		r.Get("/reservations", s.ReservationsPage)
		r.Get("/reservations/new", s.ReservationNewPage)
		r.Post("/reservations/new", s.ReservationNewSubmit)
		r.Post("/reservations/manage/{id}/{action}", s.ReservationManageSubmit)
	})

	return r, nil
}
