package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Print outcomes.
const (
	OutcomePrinted    = "printed"
	OutcomeRejected   = "rejected"
	OutcomeDownstream = "downstream_error"
	OutcomeConfig     = "configuration_error"
	OutcomeInternal   = "internal_error"
)

// Metrics provides observability for label printing.
type Metrics struct {
	// Print requests by outcome and policy
	PrintOutcome *prometheus.CounterVec

	// Chosen font size per rendered label
	FontSize prometheus.Histogram

	// Labels printed below the usable width floor
	Overflows prometheus.Counter

	RenderLatency prometheus.Histogram
	SubmitLatency prometheus.Histogram
}

// New creates label metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PrintOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "labelprint_print_outcomes_total",
			Help: "Print requests by outcome and validation policy",
		}, []string{"outcome", "policy"}),

		FontSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "labelprint_label_font_size_points",
			Help:    "Font size chosen by shrink-to-fit",
			Buckets: prometheus.LinearBuckets(24, 28, 8),
		}),

		Overflows: f.NewCounter(prometheus.CounterOpts{
			Name: "labelprint_label_overflows_total",
			Help: "Labels whose text overflowed the margins at the minimum font size",
		}),

		RenderLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "labelprint_render_duration_seconds",
			Help:    "Duration of layout and PDF generation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		SubmitLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "labelprint_submit_duration_seconds",
			Help:    "Duration of print job submission to PrintNode",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementOutcome records a print request outcome.
func (m *Metrics) IncrementOutcome(outcome, policy string) {
	if m != nil {
		m.PrintOutcome.WithLabelValues(outcome, policy).Inc()
	}
}

// ObserveLayout records the chosen font size and any overflow.
func (m *Metrics) ObserveLayout(size float64, overflow bool) {
	if m == nil {
		return
	}
	m.FontSize.Observe(size)
	if overflow {
		m.Overflows.Inc()
	}
}

// ObserveRenderLatency records render duration.
func (m *Metrics) ObserveRenderLatency(d time.Duration) {
	if m != nil {
		m.RenderLatency.Observe(d.Seconds())
	}
}

// ObserveSubmitLatency records submission duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}
