// Package web holds the HTML pages of the label admin.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names
const (
	ListingTemplate = "listing.html"
	ErrorTemplate   = "error.html"
)

// Templates parses the admin page templates
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
