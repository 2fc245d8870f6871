// Package handler contains the HTTP surface of the console: page
// handlers translating user intents (search text, sort clicks, form
// actions, delete confirmation) into console operations, and a template
// renderer presenting the resulting view state.
//
// Failed console operations surface implicitly, the way the source
// behaves: the list doesn't refresh, or the modal stays open with the
// draft intact. The page itself always renders.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/rkiviaho/trainerdesk/internal/console"
	"github.com/rkiviaho/trainerdesk/internal/domain"
)

// CustomerPageData contains data for the customer list page.
type CustomerPageData struct {
	CurrentPath string
	Columns     []string
	Fields      []string
	Snapshot    console.CustomerSnapshot
}

// CustomerHandler handles customer page requests.
type CustomerHandler struct {
	console  *console.CustomerConsole
	renderer *Renderer
	logger   *slog.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(c *console.CustomerConsole, renderer *Renderer, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		console:  c,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers the customer page routes.
func (h *CustomerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.List)
	mux.HandleFunc("POST /customers/search", h.Search)
	mux.HandleFunc("POST /customers/sort", h.Sort)
	mux.HandleFunc("POST /customers/new", h.OpenNew)
	mux.HandleFunc("POST /customers/edit", h.OpenEdit)
	mux.HandleFunc("POST /customers/save", h.Save)
	mux.HandleFunc("POST /customers/cancel", h.Cancel)
	mux.HandleFunc("POST /customers/delete", h.RequestDelete)
	mux.HandleFunc("POST /customers/delete/confirm", h.ConfirmDelete)
	mux.HandleFunc("POST /customers/delete/decline", h.DeclineDelete)
}

// List renders the customer page. The collection is refetched on every
// page view; a failed fetch is logged and the previous state renders.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.console.Load(r.Context()); err != nil {
		h.logger.Warn("customer list is stale", "error", err)
	}

	h.renderer.RenderHTTP(w, "customers", CustomerPageData{
		CurrentPath: r.URL.Path,
		Columns:     console.CustomerSortKeys,
		Fields:      domain.CustomerFields,
		Snapshot:    h.console.Snapshot(),
	})
}

// Search applies the free-text search term.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.console.Search(r.FormValue("q"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Sort handles a column header click.
func (h *CustomerHandler) Sort(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	if !allowedKey(key, console.CustomerSortKeys) {
		NotFoundResponse(w, r, h.logger)
		return
	}
	h.console.Sort(key)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OpenNew opens the modal for creating a customer.
func (h *CustomerHandler) OpenNew(w http.ResponseWriter, r *http.Request) {
	h.console.OpenNew()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OpenEdit opens the modal seeded from an existing record.
func (h *CustomerHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	if err := h.console.OpenEdit(r.FormValue("link")); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Save applies the submitted field values to the draft and submits it.
// On failure the modal stays open with the draft preserved.
func (h *CustomerHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	for _, field := range domain.CustomerFields {
		h.console.EditField(field, r.FormValue(field))
	}
	if err := h.console.Submit(r.Context()); err != nil {
		h.logger.Warn("customer save did not apply", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Cancel discards the draft.
func (h *CustomerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.console.Cancel()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RequestDelete records the delete intent; the page then renders the
// confirmation prompt.
func (h *CustomerHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	h.console.RequestDelete(r.FormValue("link"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmDelete commits the pending delete.
func (h *CustomerHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.console.ConfirmDelete(r.Context()); err != nil {
		h.logger.Warn("customer delete did not apply", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeclineDelete drops the pending delete with no network call.
func (h *CustomerHandler) DeclineDelete(w http.ResponseWriter, r *http.Request) {
	h.console.DeclineDelete()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// allowedKey checks a sort key against the sortable columns.
func allowedKey(key string, allowed []string) bool {
	for _, a := range allowed {
		if key == a {
			return true
		}
	}
	return false
}
