package scanners

import (
	"context"

	"riskly/risk-simulator/internal/model"
)

// Scanner turns an optional upload into an assessment. A nil upload yields
// the awaiting-upload view.
type Scanner interface {
	Scan(ctx context.Context, upload *model.Upload) (model.Assessment, error)
}
