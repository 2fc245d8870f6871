package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
)

// Renderer manages template parsing and rendering. Templates are
// organized as:
//   - layouts/app.html - the base layout
//   - pages/*.html     - pages, each parsed against the layout
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex

	// For dev mode hot-reload
	templatesDir string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	TemplatesDir string
	Logger       *slog.Logger
	IsDev        bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates:    make(map[string]*template.Template),
		logger:       cfg.Logger,
		isDev:        cfg.IsDev,
		templatesDir: cfg.TemplatesDir,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	layoutPath := filepath.Join(r.templatesDir, "layouts", "app.html")

	pagesPattern := filepath.Join(r.templatesDir, "pages", "*.html")
	pageFiles, err := filepath.Glob(pagesPattern)
	if err != nil {
		return fmt.Errorf("failed to glob pages: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pageFiles {
		tmpl, err := template.New("app.html").Funcs(TemplateFuncs()).ParseFiles(layoutPath, page)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		name := strings.TrimSuffix(filepath.Base(page), filepath.Ext(page))
		templates[name] = tmpl
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
	return nil
}

// ListTemplates returns the names of the loaded page templates.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

// Render executes the named page template into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	// Hot-reload templates in development
	if r.isDev {
		if err := r.loadTemplates(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, "app.html", data)
}

// RenderHTTP renders the named page into the response, buffering so a
// template error never produces a half-written page.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
