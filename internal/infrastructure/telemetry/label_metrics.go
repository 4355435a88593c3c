package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter.
var ErrMeterNil = &MetricsError{Op: "NewLabelMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// Label metric names
const (
	MetricLabelsGenerated = "labels_generated_total"
	MetricLabelFailures   = "label_failures_total"
	MetricRenderDuration  = "label_render_duration_seconds"
)

// LabelMetrics counts generated and failed labels and times PDF rendering.
type LabelMetrics struct {
	generated      *Counter
	failures       *Counter
	renderDuration *Histogram
}

// NewLabelMetrics registers the label instruments on meter.
func NewLabelMetrics(meter metric.Meter) (*LabelMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	generated, err := NewCounter(meter, MetricLabelsGenerated, "Number of label PDFs served", "{label}")
	if err != nil {
		return nil, err
	}
	failures, err := NewCounter(meter, MetricLabelFailures, "Number of label requests that produced no PDF", "{label}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricRenderDuration,
		Description: "Time spent converting label HTML to PDF",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &LabelMetrics{generated: generated, failures: failures, renderDuration: duration}, nil
}

// LabelGenerated records a successful render and its duration.
func (m *LabelMetrics) LabelGenerated(ctx context.Context, engine string, d time.Duration) {
	m.generated.Inc(ctx, AttrEngine.String(engine))
	m.renderDuration.RecordDuration(ctx, d, AttrEngine.String(engine), AttrOutcome.String("success"))
}

// LabelFailed records a request that ended without a PDF. A zero duration
// means the engine was never reached and no render time is recorded.
func (m *LabelMetrics) LabelFailed(ctx context.Context, engine, code string, d time.Duration) {
	m.failures.Inc(ctx, AttrEngine.String(engine), AttrErrorCode.String(code))
	if d > 0 {
		m.renderDuration.RecordDuration(ctx, d, AttrEngine.String(engine), AttrOutcome.String("failure"))
	}
}
