package api

import (
	"riskly/risk-simulator/internal/logger"
	"riskly/risk-simulator/internal/page"
	"riskly/risk-simulator/internal/scanners"
	"riskly/risk-simulator/internal/security"
)

// Handler serves the simulator page and its JSON twin.
type Handler struct {
	scanner   scanners.Scanner
	pages     *page.Renderer
	limits    security.UploadLimits
	fieldName string
	log       logger.Logger
}

func NewHandler(
	scanner scanners.Scanner,
	pages *page.Renderer,
	limits security.UploadLimits,
	fieldName string,
	log logger.Logger,
) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		scanner:   scanner,
		pages:     pages,
		limits:    limits,
		fieldName: fieldName,
		log:       log,
	}
}
