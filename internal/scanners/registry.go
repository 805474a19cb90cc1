package scanners

import (
	"strconv"

	"riskly/risk-simulator/internal/model"
)

// Sample summary shown for every upload. AvgRiskScore is a fixed headline
// figure and is not the mean of SampleRows.
const (
	AvgRiskScore  = 76.4
	CriticalFlags = 2
	AuditStatus   = "ACTION REQUIRED"

	PlaceholderValue  = "--"
	PlaceholderStatus = "Waiting for Data..."

	LabelAvgRiskScore      = "Avg Risk Score"
	LabelCriticalAnomalies = "Critical Anomalies"
	LabelAuditStatus       = "Audit Status"
)

var StatusColors = map[model.Status]string{
	model.StatusCritical: "#FF4B4B",
	model.StatusStable:   "#00E676",
	model.StatusSafe:     "#2979FF",
}

var sampleRows = [...]model.RiskRow{
	{Category: "Fraud", Score: 92, Status: model.StatusCritical},
	{Category: "Compliance", Score: 45, Status: model.StatusStable},
	{Category: "Operational", Score: 20, Status: model.StatusSafe},
	{Category: "Liquidity", Score: 35, Status: model.StatusStable},
	{Category: "Market", Score: 88, Status: model.StatusCritical},
}

// SampleRows returns a fresh copy of the five fixed risk rows.
func SampleRows() []model.RiskRow {
	rows := make([]model.RiskRow, len(sampleRows))
	copy(rows, sampleRows[:])
	return rows
}

func SampleMetrics() []model.Metric {
	return []model.Metric{
		{
			Label:      LabelAvgRiskScore,
			Value:      strconv.FormatFloat(AvgRiskScore, 'f', -1, 64),
			Delta:      "+12.5",
			DeltaColor: model.DeltaNormal,
		},
		{
			Label:      LabelCriticalAnomalies,
			Value:      strconv.Itoa(CriticalFlags),
			Delta:      "Immediate Action",
			DeltaColor: model.DeltaInverse,
		},
		{
			Label:      LabelAuditStatus,
			Value:      AuditStatus,
			Delta:      "Flagged",
			DeltaColor: model.DeltaNormal,
		},
	}
}

func PlaceholderMetrics() []model.Metric {
	return []model.Metric{
		{Label: LabelAvgRiskScore, Value: PlaceholderValue},
		{Label: LabelCriticalAnomalies, Value: PlaceholderValue},
		{Label: LabelAuditStatus, Value: PlaceholderStatus},
	}
}

func PendingAssessment() model.Assessment {
	return model.Assessment{
		State:   model.ViewAwaitingUpload,
		Metrics: PlaceholderMetrics(),
	}
}

// SampleAssessment is the complete view without an upload attached.
func SampleAssessment() model.Assessment {
	return model.Assessment{
		State:   model.ViewComplete,
		Metrics: SampleMetrics(),
		Rows:    SampleRows(),
	}
}
