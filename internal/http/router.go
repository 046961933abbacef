package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers HTTP routes.
func NewRouter(handler *Handler) nethttp.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/movies", handler.Movies).Methods(nethttp.MethodGet)
	r.HandleFunc("/movies/{id}", handler.MovieByID).Methods(nethttp.MethodGet)
	return r
}
