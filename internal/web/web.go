// Package web serves the embedded single-page dashboard UI.
package web

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// PageData parameterizes the dashboard page.
type PageData struct {
	ServiceName    string
	Version        string
	RefreshSeconds int
}

// RenderIndex writes the dashboard page.
func RenderIndex(w io.Writer, data PageData) error {
	return indexTemplate.Execute(w, data)
}
