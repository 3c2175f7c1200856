package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
)

type webContextKey string

const (
	webActorKey webContextKey = "webactor"
	webTokenKey webContextKey = "webtoken"
)

const tokenCookie = "token"

// SessionMiddleware resolves the session cookie, if any, into an Actor on the
// request context. Requests without a valid session pass through anonymously.
func SessionMiddleware(sessions *service.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokenCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, _, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrSessionExpired) {
					slog.Error("failed to resolve session", "error", err)
				}
				clearAuthCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), webActorKey, &actor)
			ctx = context.WithValue(ctx, webTokenKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole redirects to the login page unless the signed-in account has
// one of roles. With no roles any signed-in account passes.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFrom(r.Context())
			if actor == nil {
				redirectWith(w, r, "/login", flashError, "Please sign in to continue.")
				return
			}
			if len(roles) > 0 && !model.HasRole(actor.Role, roles...) {
				slog.Warn("access denied", "user", actor.Username, "role", actor.Role, "path", r.URL.Path)
				redirectWith(w, r, "/login", flashError, "You do not have access to that page.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ActorFrom returns the signed-in account, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *service.Actor {
	actor, _ := ctx.Value(webActorKey).(*service.Actor)
	return actor
}

// tokenFrom returns the raw session token of the request.
func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(webTokenKey).(string)
	return token
}

// dashboardPath is where an account lands after signing in.
func dashboardPath(role string) string {
	if role == model.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/manager/dashboard"
}
