package api

import (
	"net/http"

	"github.com/go-chi/render"

	"riskly/risk-simulator/internal/chart"
	apperr "riskly/risk-simulator/internal/errors"
	"riskly/risk-simulator/internal/scanners"
)

// SimulateHandler is the JSON form of UploadHandler.
func (h *Handler) SimulateHandler(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		writeError(w, r, apperr.AsStandard(err))
		return
	}

	assessment, err := h.scanner.Scan(r.Context(), upload)
	if err != nil {
		writeError(w, r, apperr.NewSimulationCancelledError(err))
		return
	}
	render.JSON(w, r, assessment)
}

// SampleHandler returns the complete sample assessment without a scan.
func (h *Handler) SampleHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, scanners.SampleAssessment())
}

// SchemaHandler publishes the JSON schema of an assessment document.
func (h *Handler) SchemaHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write([]byte(AssessmentSchema))
}

// ChartHandler serves the sample bar chart as a standalone SVG.
func (h *Handler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	svg, err := chart.RenderBarSVG(scanners.SampleRows(), chart.DefaultOptions())
	if err != nil {
		h.log.WithError(err).Error("chart render failed", nil)
		writeError(w, r, apperr.NewRenderFailedError(err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(svg)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, r *http.Request, se *apperr.StandardError) {
	render.Status(r, se.HTTPStatus())
	render.JSON(w, r, map[string]any{"error": se})
}
