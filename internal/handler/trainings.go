package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rkiviaho/trainerdesk/internal/console"
	"github.com/rkiviaho/trainerdesk/internal/domain"
)

// TrainingPageData contains data for the training list page.
type TrainingPageData struct {
	CurrentPath string
	Columns     []string
	Snapshot    console.TrainingSnapshot
}

// TrainingHandler handles training page requests.
type TrainingHandler struct {
	console  *console.TrainingConsole
	renderer *Renderer
	logger   *slog.Logger
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(c *console.TrainingConsole, renderer *Renderer, logger *slog.Logger) *TrainingHandler {
	return &TrainingHandler{
		console:  c,
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers the training page routes.
func (h *TrainingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /trainings", h.List)
	mux.HandleFunc("POST /trainings/search", h.Search)
	mux.HandleFunc("POST /trainings/sort", h.Sort)
	mux.HandleFunc("POST /trainings/new", h.OpenNew)
	mux.HandleFunc("POST /trainings/save", h.Save)
	mux.HandleFunc("POST /trainings/cancel", h.Cancel)
	mux.HandleFunc("POST /trainings/delete", h.RequestDelete)
	mux.HandleFunc("POST /trainings/delete/confirm", h.ConfirmDelete)
	mux.HandleFunc("POST /trainings/delete/decline", h.DeclineDelete)
}

// List renders the training page. Both the training collection and the
// customer list backing the form options are refetched; a failed fetch
// is logged and the previous state renders.
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.console.Load(r.Context()); err != nil {
		h.logger.Warn("training list is stale", "error", err)
	}
	if err := h.console.LoadCustomers(r.Context()); err != nil {
		h.logger.Warn("training form customer options are stale", "error", err)
	}

	h.renderer.RenderHTTP(w, "trainings", TrainingPageData{
		CurrentPath: r.URL.Path,
		Columns:     console.TrainingSortKeys,
		Snapshot:    h.console.Snapshot(),
	})
}

// Search applies the free-text search term.
func (h *TrainingHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.console.Search(r.FormValue("q"))
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// Sort handles a column header click.
func (h *TrainingHandler) Sort(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	if !allowedKey(key, console.TrainingSortKeys) {
		NotFoundResponse(w, r, h.logger)
		return
	}
	h.console.Sort(key)
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// OpenNew opens the modal for booking a training.
func (h *TrainingHandler) OpenNew(w http.ResponseWriter, r *http.Request) {
	h.console.OpenNew()
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// Save applies the submitted field values to the draft and submits it.
func (h *TrainingHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form", "error", err)
		http.Redirect(w, r, "/trainings", http.StatusSeeOther)
		return
	}
	for _, field := range domain.TrainingFields {
		h.console.EditField(field, r.FormValue(field))
	}
	if err := h.console.Submit(r.Context()); err != nil {
		h.logger.Warn("training save did not apply", "error", err)
	}
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// Cancel discards the draft.
func (h *TrainingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.console.Cancel()
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// RequestDelete records the delete intent for a training id.
func (h *TrainingHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		NotFoundResponse(w, r, h.logger)
		return
	}
	h.console.RequestDelete(id)
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// ConfirmDelete commits the pending delete.
func (h *TrainingHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.console.ConfirmDelete(r.Context()); err != nil {
		h.logger.Warn("training delete did not apply", "error", err)
	}
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}

// DeclineDelete drops the pending delete with no network call.
func (h *TrainingHandler) DeclineDelete(w http.ResponseWriter, r *http.Request) {
	h.console.DeclineDelete()
	http.Redirect(w, r, "/trainings", http.StatusSeeOther)
}
