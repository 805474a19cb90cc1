// Package simulated implements the demo scanner: every upload, whatever it
// contains, produces the same sample assessment after a fixed pause.
package simulated

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"riskly/risk-simulator/internal/logger"
	"riskly/risk-simulator/internal/metrics"
	"riskly/risk-simulator/internal/model"
	"riskly/risk-simulator/internal/scanners"
)

const DefaultDelay = 2 * time.Second

type Scanner struct {
	delay  time.Duration
	log    logger.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

type Option func(*Scanner)

func WithDelay(d time.Duration) Option {
	return func(s *Scanner) { s.delay = d }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Scanner) { s.newID = fn }
}

func New(opts ...Option) *Scanner {
	s := &Scanner{
		delay:  DefaultDelay,
		log:    logger.NewNoOpLogger(),
		tracer: otel.Tracer("riskly/risk-simulator/scanners/simulated"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.delay < 0 {
		s.delay = 0
	}
	return s
}

var _ scanners.Scanner = (*Scanner)(nil)

func (s *Scanner) Delay() time.Duration {
	return s.delay
}

// Scan never reads the upload body. Only presence of upload decides the view.
func (s *Scanner) Scan(ctx context.Context, upload *model.Upload) (model.Assessment, error) {
	if upload == nil {
		return scanners.PendingAssessment(), nil
	}

	ctx, span := s.tracer.Start(ctx, "simulated.Scan", trace.WithAttributes(
		attribute.String("upload.filename", upload.Filename),
		attribute.String("upload.extension", upload.Extension),
		attribute.Int64("upload.size", upload.Size),
	))
	defer span.End()

	start := s.now()
	if err := s.wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		s.log.Warn("simulation cancelled", map[string]interface{}{
			"filename": upload.Filename,
			"error":    err.Error(),
		})
		return model.Assessment{}, err
	}

	scannedAt := s.now().UTC()
	a := scanners.SampleAssessment()
	a.ID = s.newID()
	u := *upload
	a.Upload = &u
	a.ScannedAt = &scannedAt

	metrics.SimulationDuration.Observe(scannedAt.Sub(start).Seconds())
	span.SetAttributes(attribute.String("assessment.id", a.ID))
	s.log.Info("simulation complete", map[string]interface{}{
		"assessment_id": a.ID,
		"filename":      upload.Filename,
		"extension":     upload.Extension,
		"size":          upload.Size,
	})
	return a, nil
}

func (s *Scanner) wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
