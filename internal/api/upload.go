package api

import (
	"errors"
	"io"
	"net/http"

	apperr "riskly/risk-simulator/internal/errors"
	"riskly/risk-simulator/internal/metrics"
	"riskly/risk-simulator/internal/model"
	"riskly/risk-simulator/internal/security"
)

// bytes of multipart framing tolerated on top of the file limit
const formOverhead = 1 << 20

// metric label for uploads whose extension is not allowed or not yet known
const otherExtension = "other"

// readUpload streams the multipart body and keeps only the audit trail's part
// headers. It returns a nil upload when no file was chosen. File bytes are
// counted and discarded; nothing is buffered to memory or disk.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*model.Upload, error) {
	maxBody := h.limits.MaxBytes + formOverhead
	if r.ContentLength > maxBody {
		metrics.UploadsReceived.WithLabelValues(otherExtension, "too_large").Inc()
		return nil, apperr.NewUploadTooLargeError(r.ContentLength, h.limits.MaxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	mr, err := r.MultipartReader()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, h.malformed(err)
	}

	var upload *model.Upload
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, h.readFailed(err)
		}

		isFile := upload == nil && part.FormName() == h.fieldName && part.FileName() != ""
		n, err := io.Copy(io.Discard, part)
		_ = part.Close()
		if err != nil {
			return nil, h.readFailed(err)
		}
		if !isFile {
			continue
		}
		upload = &model.Upload{
			Field:       h.fieldName,
			Filename:    part.FileName(),
			Extension:   security.Extension(part.FileName()),
			ContentType: part.Header.Get("Content-Type"),
			Size:        n,
		}
	}
	if upload == nil {
		return nil, nil
	}

	if err := security.ValidateUpload(*upload, h.limits); err != nil {
		outcome := "rejected"
		if apperr.IsCode(err, apperr.ErrCodeUploadTooLarge) {
			outcome = "too_large"
		}
		metrics.UploadsReceived.WithLabelValues(h.extensionLabel(upload.Extension), outcome).Inc()
		return nil, err
	}
	metrics.UploadsReceived.WithLabelValues(upload.Extension, "accepted").Inc()
	return upload, nil
}

// readFailed maps a failed body read onto a too-large or malformed error.
func (h *Handler) readFailed(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		metrics.UploadsReceived.WithLabelValues(otherExtension, "too_large").Inc()
		return apperr.NewBodyTooLargeError(h.limits.MaxBytes)
	}
	return h.malformed(err)
}

func (h *Handler) malformed(err error) error {
	metrics.UploadsReceived.WithLabelValues(otherExtension, "malformed").Inc()
	return apperr.NewMalformedUploadError(err)
}

// extensionLabel keeps the extension label set bounded by the configured
// allow-list; client-chosen extensions collapse into "other".
func (h *Handler) extensionLabel(ext string) string {
	if h.limits.Allows(ext) {
		return ext
	}
	return otherExtension
}
