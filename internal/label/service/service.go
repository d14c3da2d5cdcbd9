// Package service runs one print request end to end: normalize, validate,
// render, submit.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"labelprint/internal/label"
	"labelprint/internal/label/metrics"
	"labelprint/internal/label/render"
	dErrors "labelprint/pkg/domain-errors"
	"labelprint/pkg/platform/sentinel"
	"labelprint/pkg/requestcontext"
)

// Submitter hands a rendered page to the print service.
type Submitter interface {
	Submit(ctx context.Context, pdf []byte, title string) (string, error)
}

// Result describes a submitted label.
type Result struct {
	Code        label.Code
	JobID       string
	FontSize    float64
	Overflow    bool
	SubmittedAt time.Time
}

// Outcome is passed to the after-print hook.
type Outcome struct {
	Raw    string
	Result *Result
	Err    error
}

// AfterPrintFunc runs after every Print call, whatever the outcome. Kiosk
// front ends use it to clear and re-arm the scan input.
type AfterPrintFunc func(ctx context.Context, outcome Outcome)

// Service is stateless between requests and safe for concurrent use.
type Service struct {
	policy     label.Policy
	renderer   *render.Renderer
	submitter  Submitter
	logger     *slog.Logger
	metrics    *metrics.Metrics
	afterPrint AfterPrintFunc
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAfterPrint(fn AfterPrintFunc) Option {
	return func(s *Service) {
		s.afterPrint = fn
	}
}

// New constructs a Service for the deployment's single policy.
func New(policy label.Policy, renderer *render.Renderer, submitter Submitter, opts ...Option) *Service {
	s := &Service{
		policy:    policy,
		renderer:  renderer,
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the active validation policy.
func (s *Service) Policy() label.Policy {
	return s.policy
}

// Print validates raw input, renders the label and submits it. Validation
// failures return before anything is rendered or submitted.
func (s *Service) Print(ctx context.Context, raw string) (res *Result, err error) {
	defer func() {
		if s.afterPrint != nil {
			s.afterPrint(ctx, Outcome{Raw: raw, Result: res, Err: err})
		}
	}()

	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	lbl, err := s.prepare(ctx, raw)
	if err != nil {
		return nil, err
	}

	submitStart := time.Now()
	jobID, err := s.submitter.Submit(ctx, lbl.PDF, lbl.Title)
	s.metrics.ObserveSubmitLatency(time.Since(submitStart))
	if err != nil {
		err = translateSubmitError(err)
		s.metrics.IncrementOutcome(outcomeFor(err), s.policy.Name)
		s.logger.ErrorContext(ctx, "print submission failed",
			"request_id", requestID,
			"code", lbl.Code,
			"error", err,
		)
		return nil, err
	}

	s.metrics.IncrementOutcome(metrics.OutcomePrinted, s.policy.Name)
	s.logger.InfoContext(ctx, "label printed",
		"request_id", requestID,
		"client_ip", requestcontext.ClientIP(ctx),
		"code", lbl.Code,
		"job_id", jobID,
		"font_size", lbl.Layout.FontSize,
		"overflow", lbl.Layout.Overflow,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		Code:        lbl.Code,
		JobID:       jobID,
		FontSize:    lbl.Layout.FontSize,
		Overflow:    lbl.Layout.Overflow,
		SubmittedAt: requestcontext.Now(ctx),
	}, nil
}

// Preview validates and renders without submitting.
func (s *Service) Preview(ctx context.Context, raw string) (*render.Label, error) {
	return s.prepare(ctx, raw)
}

func (s *Service) prepare(ctx context.Context, raw string) (*render.Label, error) {
	requestID := requestcontext.RequestID(ctx)

	code, err := s.policy.Parse(raw)
	if err != nil {
		s.metrics.IncrementOutcome(metrics.OutcomeRejected, s.policy.Name)
		s.logger.WarnContext(ctx, "code rejected",
			"request_id", requestID,
			"policy", s.policy.Name,
			"code", code,
		)
		return nil, err
	}

	renderStart := time.Now()
	lbl, err := s.renderer.Render(code, requestcontext.Now(ctx))
	s.metrics.ObserveRenderLatency(time.Since(renderStart))
	if err != nil {
		s.metrics.IncrementOutcome(outcomeFor(err), s.policy.Name)
		s.logger.WarnContext(ctx, "label render failed",
			"request_id", requestID,
			"code", code,
			"error", err,
		)
		return nil, err
	}
	s.metrics.ObserveLayout(lbl.Layout.FontSize, lbl.Layout.Overflow)
	if lbl.Layout.Overflow {
		s.logger.WarnContext(ctx, "label text overflows margins at minimum size",
			"request_id", requestID,
			"code", code,
			"text_width", lbl.Layout.TextWidth,
		)
	}

	return lbl, nil
}

// translateSubmitError folds submitter failures into domain errors. The
// downstream message carries PrintNode's status and body.
func translateSubmitError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrMisconfigured):
		return dErrors.Wrap(err, dErrors.CodeConfiguration, "print service is not configured")
	case dErrors.CodeOf(err) != dErrors.CodeInternal:
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeDownstream, err.Error())
	}
}

func outcomeFor(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation:
		return metrics.OutcomeRejected
	case dErrors.CodeDownstream:
		return metrics.OutcomeDownstream
	case dErrors.CodeConfiguration:
		return metrics.OutcomeConfig
	default:
		return metrics.OutcomeInternal
	}
}
