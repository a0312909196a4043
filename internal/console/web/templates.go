package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/scimplatform/console/pkg/httpx"
	"github.com/scimplatform/console/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates holds every view, parsed once at startup. Each page template
// defines a "page" block rendered inside the shared layout.
func parseTemplates() map[string]*template.Template {
	pages := []string{
		"login.html",
		"clients_list.html",
		"client_form.html",
		"client_delete.html",
	}

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		out[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+page,
		))
	}
	return out
}

// render writes a page with the layout. Render failures are logged and
// answered with a plain 500; by then part of the body may already be out,
// which is the usual html/template trade-off.
func (rt *Router) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := rt.templates[page]
	if !ok {
		panic("web: unknown template " + page)
	}

	// Pages can carry client secrets, so never let them cache.
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slogx.FromContext(r.Context()).Error("template render failed", "page", page, "error", err)
	}
}
