package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Page template names.
const (
	PageIndex    = "index"
	PageCategory = "category"
	PageProduct  = "product"
	PageError    = "error"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any)
}

type renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{PageIndex, PageCategory, PageProduct, PageError} {
		t, err := template.New(name).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &renderer{pages: pages}, nil
}

// Render executes the page into a buffer first so a template failure never
// leaves a half written response behind.
func (r *renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		log.Errorf("❌ Unknown template %q", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Errorf("❌ Failed to render %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warnf("Failed to write %s response: %v", name, err)
	}
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
