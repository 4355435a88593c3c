// Package printing turns label data into a 4x4 inch PDF.
//
// This package contains:
//   - TemplateEngine, which renders the label HTML document with html/template
//   - Engine, the HTML to PDF conversion interface, with Chrome (chromedp) and
//     wkhtmltopdf implementations
//   - EngineFactory, which hands out a fresh Engine for every label
//   - FontRegistry, which validates the label font and embeds it as @font-face
//   - Generator, which ties the font stylesheet, page format and engine together
//
// Example usage:
//
//	fonts, err := LoadFontRegistry(FontConfig{Family: "notosansbengali", ...})
//	factory, err := NewEngineFactory(cfg.Label, logger)
//	gen := NewGenerator(factory, fonts, logger)
//
//	pdf, err := gen.Generate(ctx, html)
package printing
