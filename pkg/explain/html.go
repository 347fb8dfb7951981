package explain

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Report is the data behind a standalone HTML page.
type Report struct {
	Title    string
	TraceID  string
	SVG      []byte
	Sections []Section
}

type reportView struct {
	Title    string
	TraceID  string
	Diagram  template.HTML
	Sections []Section
}

// RenderHTML writes the report page. The SVG is embedded verbatim; it must
// come from a trusted renderer.
func RenderHTML(w io.Writer, r Report) error {
	view := reportView{
		Title:    r.Title,
		TraceID:  r.TraceID,
		Sections: r.Sections,
	}
	if view.Title == "" {
		view.Title = "Marble Diagram"
	}
	if len(r.Sections) > 0 {
		view.Diagram = template.HTML(r.SVG)
	}
	if err := templates.ExecuteTemplate(w, "report.html", view); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
