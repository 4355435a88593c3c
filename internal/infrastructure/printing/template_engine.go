package printing

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/codewithomar/LPWC/internal/domain/label"
)

//go:embed templates/label.html
var templateFS embed.FS

// LogoPath is the URL path the label logo is served under
const LogoPath = "/assets/logo.png"

// LabelTemplateConfig holds the presentation settings of the label document
type LabelTemplateConfig struct {
	FontFamily     string
	BaseURL        string // absolute URL prefix for the logo
	CurrencySymbol string
	WeightUnit     string
}

// TemplateEngine renders the label HTML document. Values are escaped by
// html/template, so product names can never inject markup.
type TemplateEngine struct {
	tmpl   *template.Template
	config LabelTemplateConfig
}

// labelView is the data bound to the label template
type labelView struct {
	Label          label.Data
	FontFamily     string
	LogoURL        string
	CurrencySymbol string
	WeightUnit     string
}

// NewTemplateEngine parses the embedded label template
func NewTemplateEngine(config LabelTemplateConfig) (*TemplateEngine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/label.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse label template", err)
	}
	return &TemplateEngine{tmpl: tmpl, config: config}, nil
}

// RenderLabel renders one label. Identical input yields identical output.
func (e *TemplateEngine) RenderLabel(data label.Data) (string, error) {
	view := labelView{
		Label:          data,
		FontFamily:     e.config.FontFamily,
		LogoURL:        e.config.BaseURL + LogoPath,
		CurrencySymbol: e.config.CurrencySymbol,
		WeightUnit:     e.config.WeightUnit,
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "label.html", view); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute label template", err)
	}
	return buf.String(), nil
}
