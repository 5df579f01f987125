package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	requestmiddleware "github.com/blogem/record-engine/middleware"
)

// NewRouter configures all routes
func NewRouter(ctrl *Controllers, logger logrus.FieldLogger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestmiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "record-engine"})
	})
	r.Get("/schema", ctrl.Records.Schema)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", ctrl.Records.Index)
		r.Post("/", ctrl.Records.Create)
		r.Get("/{id}", ctrl.Records.Show)
		r.Put("/{id}", ctrl.Records.Update)
		r.Delete("/{id}", ctrl.Records.Delete)
	})

	r.Route("/report", func(r chi.Router) {
		r.Get("/export", ctrl.Records.Export)
		r.Post("/export", ctrl.Records.ExportToFile)
	})

	r.Get("/history", ctrl.Records.History)

	return r
}
