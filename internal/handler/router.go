package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP routes. auth guards every route except /health.
func NewRouter(h *Handler, auth, logging mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(logging)
	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(auth)
	authRouter.HandleFunc("/averages", h.GetAverages).Methods(http.MethodGet)
	authRouter.HandleFunc("/targets", h.GetTargets).Methods(http.MethodGet)
	authRouter.HandleFunc("/targets", h.SaveTargets).Methods(http.MethodPut)
	authRouter.HandleFunc("/targets/calculate", h.Calculate).Methods(http.MethodPost)
	authRouter.HandleFunc("/targets/scenarios", h.Scenarios).Methods(http.MethodPost)
	authRouter.HandleFunc("/targets/progress", h.Progress).Methods(http.MethodGet)
	authRouter.HandleFunc("/targets/milestones/check", h.CheckMilestones).Methods(http.MethodPost)
	return r
}
