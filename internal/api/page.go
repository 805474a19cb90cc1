package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apperr "riskly/risk-simulator/internal/errors"
	"riskly/risk-simulator/internal/metrics"
	"riskly/risk-simulator/internal/model"
	"riskly/risk-simulator/internal/scanners"
)

// IndexHandler renders the page in its awaiting-upload state.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, scanners.PendingAssessment(), nil)
}

// UploadHandler accepts the upload form. Without a file it behaves like
// IndexHandler; with one it waits out the simulated scan and shows results.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		se := apperr.AsStandard(err)
		h.log.Warn("upload rejected", map[string]interface{}{
			"code":    string(se.Code),
			"details": se.Details,
		})
		render.Status(r, se.HTTPStatus())
		h.writePage(w, r, scanners.PendingAssessment(), se)
		return
	}

	assessment, err := h.scanner.Scan(r.Context(), upload)
	if err != nil {
		se := apperr.NewSimulationCancelledError(err)
		h.log.Info("client went away during simulation", map[string]interface{}{
			"details": se.Details,
		})
		render.Status(r, se.HTTPStatus())
		h.writePage(w, r, scanners.PendingAssessment(), se)
		return
	}
	h.writePage(w, r, assessment, nil)
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, a model.Assessment, viewErr *apperr.StandardError) {
	var sb strings.Builder
	if err := h.pages.Render(&sb, a, viewErr); err != nil {
		h.log.WithError(err).Error("page render failed", nil)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	metrics.PageRenders.WithLabelValues(string(a.State)).Inc()
	render.HTML(w, r, sb.String())
}
