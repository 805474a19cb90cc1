package model

type Status string

const (
	StatusCritical Status = "Critical"
	StatusStable   Status = "Stable"
	StatusSafe     Status = "Safe"
)

type RiskRow struct {
	Category string `json:"risk_category"`
	Score    int    `json:"risk_score"`
	Status   Status `json:"status"`
}

type DeltaColor string

const (
	DeltaNormal  DeltaColor = "normal"
	DeltaInverse DeltaColor = "inverse"
	DeltaOff     DeltaColor = "off"
)

// Metric is one summary card. An empty Delta hides the delta line.
type Metric struct {
	Label      string     `json:"label"`
	Value      string     `json:"value"`
	Delta      string     `json:"delta,omitempty"`
	DeltaColor DeltaColor `json:"delta_color,omitempty"`
}
