package printing

import (
	"context"
	"strings"
	"time"

	"github.com/codewithomar/LPWC/internal/domain/label"
	"go.uber.org/zap"
)

// Generator converts a label HTML document into PDF bytes on the fixed label page
type Generator struct {
	factory EngineFactory
	fonts   *FontRegistry
	page    label.PageFormat
	margins label.Margins
	timeout time.Duration
	logger  *zap.Logger
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithMargins overrides the default label margins
func WithMargins(m label.Margins) GeneratorOption {
	return func(g *Generator) {
		g.margins = m
	}
}

// WithRenderTimeout bounds each conversion
func WithRenderTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator creates a Generator. fonts may be nil, in which case the
// document's own font declarations are used as is.
func NewGenerator(factory EngineFactory, fonts *FontRegistry, logger *zap.Logger, opts ...GeneratorOption) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		factory: factory,
		fonts:   fonts,
		page:    label.LabelPage,
		margins: label.DefaultMargins(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EngineName returns the name of the underlying engine
func (g *Generator) EngineName() string {
	return g.factory.Name()
}

// Generate renders html to a PDF. A new engine is created for the call and
// closed before returning; on any error no bytes are returned.
func (g *Generator) Generate(ctx context.Context, html string) ([]byte, error) {
	engine, err := g.factory.New(ctx)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to create PDF engine", err)
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			g.logger.Warn("Failed to close PDF engine", zap.Error(cerr))
		}
	}()

	result, err := engine.Render(ctx, &RenderRequest{
		HTML:    g.injectFonts(html),
		Page:    g.page,
		Margins: g.margins,
		Title:   label.FileName,
		Timeout: g.timeout,
	})
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}
	return result.PDFData, nil
}

// injectFonts places the font stylesheet at the start of the document head
// so the template's own rules still apply after it
func (g *Generator) injectFonts(html string) string {
	if g.fonts == nil || g.fonts.Stylesheet() == "" {
		return html
	}
	style := "<style>\n" + g.fonts.Stylesheet() + "</style>\n"

	if i := strings.Index(html, "<head>"); i >= 0 {
		at := i + len("<head>")
		return html[:at] + "\n" + style + html[at:]
	}
	if i := strings.Index(html, "<html>"); i >= 0 {
		at := i + len("<html>")
		return html[:at] + "<head>\n" + style + "</head>" + html[at:]
	}
	return style + html
}
