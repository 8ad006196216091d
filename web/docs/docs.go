// Package docs serves interactive API documentation rendered by Scalar.
package docs

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/motech/mrs/pkg/routes"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("docs").Parse(indexHTML))

// Handler serves the documentation page for one OpenAPI document.
type Handler struct {
	specURL string
}

// NewHandler creates a documentation handler that loads the document at specURL.
func NewHandler(specURL string) *Handler {
	return &Handler{specURL: specURL}
}

// Routes returns the route group for documentation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Tags:        []string{"Documentation"},
		Description: "Interactive API documentation powered by Scalar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.serveIndex},
		},
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	index.Execute(w, struct{ SpecURL string }{h.specURL})
}
