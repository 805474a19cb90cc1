package model

// Upload describes a submitted audit trail. Only the multipart headers are
// recorded; the body is never opened.
type Upload struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	Extension   string `json:"extension"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
}
