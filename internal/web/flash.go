package web

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "flash"

const (
	flashError   = "error"
	flashSuccess = "success"
)

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    kind + ":" + url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending message.
func popFlash(w http.ResponseWriter, r *http.Request) (kind, message string) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	kind, escaped, ok := strings.Cut(c.Value, ":")
	if !ok {
		return "", ""
	}
	message, err = url.QueryUnescape(escaped)
	if err != nil {
		return "", ""
	}
	return kind, message
}

// redirectWith sets a flash message and redirects.
func redirectWith(w http.ResponseWriter, r *http.Request, path, kind, message string) {
	setFlash(w, kind, message)
	http.Redirect(w, r, path, http.StatusSeeOther)
}
