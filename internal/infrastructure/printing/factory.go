package printing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine names accepted by NewEngineFactory
const (
	EngineChromedp    = "chromedp"
	EngineWkhtmltopdf = "wkhtmltopdf"
)

// EngineFactory creates a fresh Engine for every label. Callers must Close
// the engine when done; no engine state is shared between requests.
type EngineFactory interface {
	New(ctx context.Context) (Engine, error)
	Name() string
}

// EngineFactoryConfig selects and configures the PDF engine
type EngineFactoryConfig struct {
	Engine          string
	ChromeRemoteURL string
	NoSandbox       bool
	WkhtmltopdfPath string
	RenderTimeout   time.Duration
}

// NewEngineFactory returns the factory for the configured engine
func NewEngineFactory(cfg EngineFactoryConfig, logger *zap.Logger) (EngineFactory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Engine {
	case EngineChromedp, "":
		return &ChromedpFactory{config: ChromedpConfig{
			DefaultTimeout: cfg.RenderTimeout,
			RemoteURL:      cfg.ChromeRemoteURL,
			NoSandbox:      cfg.NoSandbox,
			Logger:         logger.Named("chromedp"),
		}}, nil
	case EngineWkhtmltopdf:
		wkcfg := WkhtmltopdfConfig{
			BinaryPath:     cfg.WkhtmltopdfPath,
			DefaultTimeout: cfg.RenderTimeout,
			Logger:         logger.Named("wkhtmltopdf"),
		}
		// Fail at startup rather than on the first label
		if _, err := NewWkhtmltopdfEngine(wkcfg); err != nil {
			return nil, err
		}
		return &WkhtmltopdfFactory{config: wkcfg}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", cfg.Engine)
	}
}

// ChromedpFactory starts a new browser for each label
type ChromedpFactory struct {
	config ChromedpConfig
}

// New returns a ChromedpEngine bound to ctx
func (f *ChromedpFactory) New(ctx context.Context) (Engine, error) {
	return NewChromedpEngine(ctx, f.config), nil
}

// Name returns the engine name
func (f *ChromedpFactory) Name() string {
	return EngineChromedp
}

// WkhtmltopdfFactory hands out wkhtmltopdf engines
type WkhtmltopdfFactory struct {
	config WkhtmltopdfConfig
}

// New returns a WkhtmltopdfEngine
func (f *WkhtmltopdfFactory) New(context.Context) (Engine, error) {
	engine, err := NewWkhtmltopdfEngine(f.config)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

// Name returns the engine name
func (f *WkhtmltopdfFactory) Name() string {
	return EngineWkhtmltopdf
}
