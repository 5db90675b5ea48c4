package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports a path that does not resolve to anything. It is
// used for unknown routes, unknown extension types and missing bundles alike.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Route %s doesn't exist.", e.Path)
}

type errorBody struct {
	Errors []errorItem `json:"errors"`
}

type errorItem struct {
	Message    string         `json:"message"`
	Extensions errorExtension `json:"extensions"`
}

type errorExtension struct {
	Code string `json:"code"`
}

// handlerFunc is an HTTP handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts h so that returned errors are rendered by writeError.
func (s *Server) handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	})
}

// writeError renders err as a JSON error document. Anything other than a
// NotFoundError becomes an opaque internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	item := errorItem{
		Message:    "An unexpected error occurred.",
		Extensions: errorExtension{Code: "INTERNAL_SERVER_ERROR"},
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		status = http.StatusNotFound
		item = errorItem{Message: nf.Error(), Extensions: errorExtension{Code: "ROUTE_NOT_FOUND"}}
	} else {
		s.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Errors: []errorItem{item}})
}
