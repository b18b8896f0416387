package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/ccbrown/wfs-fu/apidoc"
	"github.com/ccbrown/wfs-fu/document"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"class": document.ParseClassification,
	"href": func(links document.Links, classification, f string) string {
		return links.Href(classification, f)
	},
}).ParseFS(templateFS, "templates/*.html"))

// HTML renders the service's documents with the built-in templates.
type HTML struct {
	templates *template.Template
}

func NewHTML() *HTML {
	return &HTML{
		templates: templates,
	}
}

func (h *HTML) Render(w io.Writer, v any) error {
	var name string
	switch v.(type) {
	case *document.LandingPage:
		name = "landing.html"
	case *document.Conformance:
		name = "conformance.html"
	case *document.Collections:
		name = "collections.html"
	case *document.Collection:
		name = "collection.html"
	case *apidoc.Document:
		name = "api.html"
	default:
		return errors.Errorf("no html template for %T", v)
	}
	return h.templates.ExecuteTemplate(w, name, v)
}
