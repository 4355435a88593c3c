package telemetry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/codewithomar/LPWC/internal/infrastructure/telemetry"
)

type memoryExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r.Body().AsString())
	}
	return out
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{ServiceName: "test-service"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Nil(t, lp.Provider())
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewZapOTELCore_NilProvider(t *testing.T) {
	core := telemetry.NewZapOTELCore("lpwc", nil, zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.FatalLevel))
}

func TestNewZapOTELCore_LevelFilter(t *testing.T) {
	exporter := &memoryExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger := zap.New(telemetry.NewZapOTELCore("lpwc", provider, level))

	logger.Debug("dropped")
	logger.Info("label generated")
	level.SetLevel(zapcore.WarnLevel)
	logger.Info("dropped after reload")
	logger.Warn("slow render")

	assert.Equal(t, []string{"label generated", "slow render"}, exporter.bodies())
}

func TestBridge(t *testing.T) {
	t.Run("no-op core keeps the base logger", func(t *testing.T) {
		base := zap.NewNop()
		assert.Same(t, base, telemetry.Bridge(base, zapcore.NewNopCore()))
	})

	t.Run("entries reach both outputs", func(t *testing.T) {
		exporter := &memoryExporter{}
		provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
		t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

		observed, logs := observer.New(zapcore.InfoLevel)
		logger := telemetry.Bridge(zap.New(observed), telemetry.NewZapOTELCore("lpwc", provider, zapcore.InfoLevel))

		logger.Info("label generated", zap.Uint64("product_id", 10))

		assert.Equal(t, 1, logs.Len())
		assert.Equal(t, []string{"label generated"}, exporter.bodies())
	})
}
