package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
	webembed "github.com/erazemk/carrental/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// pages lists every page template; each is parsed together with the layout.
var pages = []string{
	"login.html",
	"public_cars.html",
	"admin_dashboard.html",
	"managers.html",
	"manager_form.html",
	"manager_dashboard.html",
	"cars.html",
	"car_form.html",
	"clients.html",
	"client_form.html",
	"reservations.html",
	"reservation_new.html",
	"settings.html",
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(c model.Cents) string { return c.String() },
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"roleName": func(role string) string {
			switch role {
			case model.RoleAdmin:
				return "Administrator"
			case model.RoleManager:
				return "Manager"
			default:
				return role
			}
		},
		"isAdmin": func(a *service.Actor) bool {
			return a != nil && a.Role == model.RoleAdmin
		},
		"isManager": func(a *service.Actor) bool {
			return a != nil && a.Role == model.RoleManager
		},
		"date": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layout, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		body, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl, err := template.New(page).Funcs(FuncMap()).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		if tmpl, err = tmpl.Parse(string(body)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a page with the given status code.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *service.Actor
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Services      *service.Services
	Templates     *Templates
	SecureCookies bool
}

// page builds the base page data for the current request and consumes any
// pending flash message.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string) PageData {
	pd := PageData{Title: title, User: ActorFrom(r.Context())}
	switch kind, msg := popFlash(w, r); kind {
	case flashError:
		pd.Error = msg
	case flashSuccess:
		pd.Success = msg
	}
	return pd
}
