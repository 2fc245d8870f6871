package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rkiviaho/trainerdesk/internal/domain"
	"github.com/rkiviaho/trainerdesk/internal/metrics"
)

// TrainingAPI is the slice of the REST client the training console
// depends on. The customer list feeds the form's selection options and
// display joins; the training write endpoint only supports create and
// per-id delete.
type TrainingAPI interface {
	ListTrainings(ctx context.Context) ([]domain.Training, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateTraining(ctx context.Context, draft domain.TrainingDraft) error
	DeleteTraining(ctx context.Context, id int64) error
}

// TrainingSortKeys lists the sortable training columns. "customer" is a
// derived key comparing the referenced customer's full name.
var TrainingSortKeys = domain.TrainingFields

// TrainingConsole owns the view state of the training page. Same shape
// as the customer console, plus the customer collection needed to
// resolve a training's customer reference and to populate the form's
// selection list.
type TrainingConsole struct {
	api    TrainingAPI
	logger *slog.Logger

	mu            sync.Mutex
	trainings     []domain.Training
	customers     []domain.Customer
	search        string
	sort          SortState
	projection    []domain.Training
	form          formSession[domain.TrainingDraft]
	pendingDelete int64 // Training id awaiting confirmation; zero when none
	loadSeq       uint64
}

// NewTrainingConsole creates a training console with the default sort
// order (date ascending).
func NewTrainingConsole(api TrainingAPI, logger *slog.Logger) *TrainingConsole {
	t := &TrainingConsole{
		api:    api,
		logger: logger,
		sort:   SortState{Key: "date", Direction: SortAsc},
	}
	t.form.state = FormClosed
	return t
}

// Load replaces the training collection from the API. Failure leaves
// the previous collection untouched; a stale response (one overtaken by
// a newer fetch) is dropped.
func (t *TrainingConsole) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loadSeq++
	gen := t.loadSeq
	t.mu.Unlock()

	trainings, err := t.api.ListTrainings(ctx)
	if err != nil {
		t.logger.Error("failed to fetch trainings", "error", err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.loadSeq {
		t.logger.Debug("dropping stale training fetch", "generation", gen, "latest", t.loadSeq)
		metrics.StaleFetchesDropped.WithLabelValues("trainings").Inc()
		return nil
	}
	t.trainings = trainings
	t.refreshLocked()
	return nil
}

// LoadCustomers fetches the customer collection backing the form's
// selection list. It is fetched once on page load and not refreshed by
// training mutations.
func (t *TrainingConsole) LoadCustomers(ctx context.Context) error {
	customers, err := t.api.ListCustomers(ctx)
	if err != nil {
		t.logger.Error("failed to fetch customers for training form", "error", err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.customers = customers
	return nil
}

// Search sets the free-text search term and recomputes the projection.
func (t *TrainingConsole) Search(term string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.search = term
	t.refreshLocked()
}

// Sort handles a column header click and recomputes the projection.
func (t *TrainingConsole) Sort(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sort = t.sort.Click(key)
	t.refreshLocked()
}

func (t *TrainingConsole) refreshLocked() {
	t.projection = OrderBy(Filter(t.trainings, t.search), trainingLess(t.sort.Key), t.sort.Direction)
}

// trainingLess returns the ascending comparison for a sort key. Dates
// compare chronologically with the zero instant first, duration
// numerically, and the "customer" key by the referenced customer's
// space-separated full name. Unknown keys compare everything equal.
func trainingLess(key string) func(a, b domain.Training) bool {
	switch key {
	case "date":
		return func(a, b domain.Training) bool { return a.Date.Before(b.Date) }
	case "duration":
		return func(a, b domain.Training) bool { return a.Duration < b.Duration }
	case "activity":
		return func(a, b domain.Training) bool { return LessStrings(a.Activity, b.Activity) }
	case "customer":
		return func(a, b domain.Training) bool { return LessStrings(a.CustomerName(), b.CustomerName()) }
	default:
		return func(a, b domain.Training) bool { return false }
	}
}

// =============================================================================
// Form session
// =============================================================================

// OpenNew opens the modal with an empty draft. Trainings only support
// creation; the write endpoint has no update operation.
func (t *TrainingConsole) OpenNew() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form.openNew(domain.TrainingDraft{})
}

// EditField mutates a single draft field. The customer field holds only
// the bare identifier segment of the selected customer's link.
func (t *TrainingConsole) EditField(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.form.state.Open() || t.form.state == FormSubmitting {
		return
	}
	t.form.draft.SetField(name, value)
}

// Submit hands the draft to the mutation gateway. On success the
// session closes and the training collection is reloaded; on failure
// the session stays open with the draft intact.
func (t *TrainingConsole) Submit(ctx context.Context) error {
	const op = "training.submit"

	t.mu.Lock()
	if !t.form.beginSubmit() {
		t.mu.Unlock()
		return domain.Invalid(op, "no form session is open")
	}
	draft := t.form.draft
	t.mu.Unlock()

	if err := t.api.CreateTraining(ctx, draft); err != nil {
		t.mu.Lock()
		t.form.failSubmit()
		t.mu.Unlock()
		t.logger.Error("failed to save training", "error", err)
		return err
	}

	t.mu.Lock()
	t.form.close()
	t.mu.Unlock()

	return t.Load(ctx)
}

// Cancel discards the draft without any network call.
func (t *TrainingConsole) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form.close()
}

// =============================================================================
// Delete confirmation
// =============================================================================

// RequestDelete records a pending delete intent for the training with
// the given id.
func (t *TrainingConsole) RequestDelete(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = id
}

// DeclineDelete drops the pending intent without a network call.
func (t *TrainingConsole) DeclineDelete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = 0
}

// ConfirmDelete commits the pending intent, issuing the DELETE and
// reloading the collection on success.
func (t *TrainingConsole) ConfirmDelete(ctx context.Context) error {
	t.mu.Lock()
	target := t.pendingDelete
	t.pendingDelete = 0
	t.mu.Unlock()

	if target == 0 {
		return nil
	}
	if err := t.api.DeleteTraining(ctx, target); err != nil {
		t.logger.Error("failed to delete training", "error", err, "id", target)
		return err
	}
	return t.Load(ctx)
}

// =============================================================================
// Snapshot
// =============================================================================

// TrainingSnapshot is the immutable view handed to the rendering layer.
type TrainingSnapshot struct {
	Trainings     []domain.Training // Filtered+sorted projection
	Options       []domain.Customer // Customers for the form's selection list
	Total         int               // Size of the base collection
	Search        string
	SortKey       string
	SortDirection SortDirection
	FormState     FormState
	Draft         domain.TrainingDraft
	PendingDelete int64
}

// Snapshot returns a copy of the current view state.
func (t *TrainingConsole) Snapshot() TrainingSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TrainingSnapshot{
		Trainings:     append([]domain.Training(nil), t.projection...),
		Options:       append([]domain.Customer(nil), t.customers...),
		Total:         len(t.trainings),
		Search:        t.search,
		SortKey:       t.sort.Key,
		SortDirection: t.sort.Direction,
		FormState:     t.form.state,
		Draft:         t.form.draft,
		PendingDelete: t.pendingDelete,
	}
}
