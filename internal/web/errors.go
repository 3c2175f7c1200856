package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/carrental/internal/service"
)

const internalErrorMessage = "Something went wrong, please try again."

// userMessage turns a service error into text for the page. Internal failures
// are logged and replaced by a generic message.
func userMessage(err error, op string) string {
	if msg, ok := service.Message(err); ok {
		return msg
	}
	slog.Error("failed to "+op, "error", err)
	return internalErrorMessage
}

// pathID parses a numeric route parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// formValues snapshots the submitted form for re-rendering after an error.
func formValues(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		return url.Values{}
	}
	return r.PostForm
}

