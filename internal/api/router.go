package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	MetricsEnabled bool
	MetricsPath    string
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.IndexHandler)
	r.Post("/", h.UploadHandler)
	r.Get("/chart.svg", h.ChartHandler)
	r.Get("/healthz", HealthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", h.SimulateHandler)
		r.Get("/assessment/sample", h.SampleHandler)
		r.Get("/schema/assessment", h.SchemaHandler)
	})

	if opts.MetricsEnabled {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}
	return r
}
