// Package web holds the embedded HTML templates for the intake form and the
// rendered report.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses index.html and result.html.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
