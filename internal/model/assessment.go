package model

import "time"

type ViewState string

const (
	ViewAwaitingUpload ViewState = "awaiting_upload"
	ViewComplete       ViewState = "complete"
)

type Assessment struct {
	ID        string     `json:"id,omitempty"`
	State     ViewState  `json:"state"`
	Upload    *Upload    `json:"upload,omitempty"`
	Metrics   []Metric   `json:"metrics"`
	Rows      []RiskRow  `json:"rows,omitempty"`
	ScannedAt *time.Time `json:"scanned_at,omitempty"`
}

func (a Assessment) Complete() bool {
	return a.State == ViewComplete
}
