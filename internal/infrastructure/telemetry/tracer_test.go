package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/codewithomar/LPWC/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := telemetry.Config{ServiceName: "test-service", SamplingRatio: 1.0}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.Equal(t, "test-service", tp.GetConfig().ServiceName)
	assert.NotNil(t, tp.Tracer("x"))

	before := otel.GetTracerProvider()
	tp.EnableSpanProfiles()
	assert.Equal(t, before, otel.GetTracerProvider(), "disabled telemetry leaves the global provider alone")

	assert.NoError(t, tp.Shutdown(ctx))
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := telemetry.StartServiceSpan(context.Background(), "label", "generate",
		telemetry.SpanAttrProductID, uint64(42))
	telemetry.SetAttributes(span, telemetry.SpanAttrEngine, "chromedp", telemetry.SpanAttrPDFBytes, 1024)
	telemetry.RecordError(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "label.generate", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "42", attrs[telemetry.SpanAttrProductID])
	assert.Equal(t, "chromedp", attrs[telemetry.SpanAttrEngine])
	assert.Equal(t, "1024", attrs[telemetry.SpanAttrPDFBytes])
}

func TestRecordError_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetAttributes(nil, "k", "v")
	})
}
