package security

import "strings"

type UploadLimits struct {
	MaxBytes          int64
	AllowedExtensions []string
}

func DefaultUploadLimits() UploadLimits {
	return UploadLimits{
		MaxBytes:          200 << 20,
		AllowedExtensions: []string{"csv", "xlsx"},
	}
}

// Accept renders the limits as an <input accept> value, e.g. ".csv,.xlsx".
func (l UploadLimits) Accept() string {
	parts := make([]string, len(l.AllowedExtensions))
	for i, e := range l.AllowedExtensions {
		parts[i] = "." + e
	}
	return strings.Join(parts, ",")
}

// Allows reports whether ext (lower-case, no dot) is an accepted extension.
func (l UploadLimits) Allows(ext string) bool {
	for _, a := range l.AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
