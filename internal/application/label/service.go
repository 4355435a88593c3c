package label

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codewithomar/LPWC/internal/domain/label"
	"github.com/codewithomar/LPWC/internal/domain/shared"
	"github.com/codewithomar/LPWC/internal/infrastructure/logger"
	"github.com/codewithomar/LPWC/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DataResolver builds label data for a product
type DataResolver interface {
	Resolve(ctx context.Context, productID uint64) (*label.Data, error)
}

// LabelRenderer turns label data into an HTML document
type LabelRenderer interface {
	RenderLabel(data label.Data) (string, error)
}

// PDFGenerator converts an HTML document into PDF bytes
type PDFGenerator interface {
	Generate(ctx context.Context, html string) ([]byte, error)
	EngineName() string
}

// MetricsRecorder receives label outcomes
type MetricsRecorder interface {
	LabelGenerated(ctx context.Context, engine string, d time.Duration)
	LabelFailed(ctx context.Context, engine, code string, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) LabelGenerated(context.Context, string, time.Duration)      {}
func (nopMetrics) LabelFailed(context.Context, string, string, time.Duration) {}

// LabelPDF is a generated label ready to be served
type LabelPDF struct {
	ProductID uint64
	FileName  string
	Content   []byte
}

// Service generates product labels
type Service struct {
	resolver  DataResolver
	renderer  LabelRenderer
	generator PDFGenerator
	metrics   MetricsRecorder
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithMetrics reports every label outcome to m
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a new label Service
func NewService(resolver DataResolver, renderer LabelRenderer, generator PDFGenerator, opts ...ServiceOption) *Service {
	s := &Service{
		resolver:  resolver,
		renderer:  renderer,
		generator: generator,
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateLabel resolves, renders and converts the label of one product.
// Nothing is returned unless every step succeeds.
func (s *Service) GenerateLabel(ctx context.Context, productID uint64) (*LabelPDF, error) {
	engine := s.generator.EngineName()
	ctx, span := telemetry.StartServiceSpan(ctx, "label", "generate",
		telemetry.SpanAttrProductID, productID,
		telemetry.SpanAttrEngine, engine,
	)
	defer span.End()
	log := logger.L(ctx).With(zap.Uint64("product_id", productID))

	data, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.LabelFailed(ctx, engine, errorCode(err), 0)
		return nil, err
	}

	html, err := s.renderer.RenderLabel(*data)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to render label document", zap.Error(err))
		s.metrics.LabelFailed(ctx, engine, shared.CodeRenderFailed, 0)
		return nil, fmt.Errorf("%w: %w", shared.ErrRenderFailed, err)
	}

	var pdf []byte
	start := time.Now()
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "render_pdf",
		telemetry.ProfilingLabelEngine:    engine,
	}, func(ctx context.Context) {
		pdf, err = s.generator.Generate(ctx, html)
	})
	elapsed := time.Since(start)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to generate label PDF",
			zap.String("engine", engine),
			zap.Error(err))
		err = renderingError(err)
		s.metrics.LabelFailed(ctx, engine, errorCode(err), elapsed)
		return nil, err
	}

	s.metrics.LabelGenerated(ctx, engine, elapsed)
	telemetry.SetAttributes(span, telemetry.SpanAttrPDFBytes, len(pdf))
	log.Info("Label generated", zap.Int("bytes", len(pdf)))
	return &LabelPDF{
		ProductID: productID,
		FileName:  label.FileName,
		Content:   pdf,
	}, nil
}

var errRenderTimeout = shared.NewDomainError(shared.CodeRenderTimeout, "Label rendering timed out")

// renderingError tags an engine failure with the matching domain error
func renderingError(err error) error {
	var coded interface{ ErrorCode() string }
	timedOut := errors.As(err, &coded) && coded.ErrorCode() == shared.CodeRenderTimeout
	if timedOut || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", errRenderTimeout, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrRenderFailed, err)
}

// errorCode returns the domain code carried by err, or CodeInternal
func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return shared.CodeInternal
}
