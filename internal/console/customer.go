package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rkiviaho/trainerdesk/internal/domain"
	"github.com/rkiviaho/trainerdesk/internal/metrics"
)

// CustomerAPI is the slice of the REST client the customer console
// depends on.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, draft domain.CustomerDraft) error
	UpdateCustomer(ctx context.Context, selfLink string, draft domain.CustomerDraft) error
	DeleteCustomer(ctx context.Context, selfLink string) error
}

// CustomerSortKeys lists the sortable customer columns.
var CustomerSortKeys = domain.CustomerFields

// CustomerConsole owns the view state of the customer page: the base
// collection, search term, sort parameters, derived projection, the
// modal form session, and any pending delete intent.
//
// Handlers run concurrently, so the console guards its state with a
// mutex; network calls always run outside the lock.
type CustomerConsole struct {
	api    CustomerAPI
	logger *slog.Logger

	mu            sync.Mutex
	customers     []domain.Customer
	search        string
	sort          SortState
	projection    []domain.Customer
	form          formSession[domain.CustomerDraft]
	pendingDelete string // Self link awaiting confirmation; empty when none
	loadSeq       uint64 // Generation tag of the latest issued fetch
}

// NewCustomerConsole creates a customer console with the default sort
// order (firstname ascending).
func NewCustomerConsole(api CustomerAPI, logger *slog.Logger) *CustomerConsole {
	c := &CustomerConsole{
		api:    api,
		logger: logger,
		sort:   SortState{Key: "firstname", Direction: SortAsc},
	}
	c.form.state = FormClosed
	return c
}

// Load replaces the base collection from the API. On failure the
// previous collection is left untouched. Overlapping loads are guarded
// by a generation tag: a response is applied only if no newer fetch has
// been issued since it started.
func (c *CustomerConsole) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	gen := c.loadSeq
	c.mu.Unlock()

	customers, err := c.api.ListCustomers(ctx)
	if err != nil {
		c.logger.Error("failed to fetch customers", "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadSeq {
		c.logger.Debug("dropping stale customer fetch", "generation", gen, "latest", c.loadSeq)
		metrics.StaleFetchesDropped.WithLabelValues("customers").Inc()
		return nil
	}
	c.customers = customers
	c.refreshLocked()
	return nil
}

// Search sets the free-text search term and recomputes the projection.
func (c *CustomerConsole) Search(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
	c.refreshLocked()
}

// Sort handles a column header click and recomputes the projection.
func (c *CustomerConsole) Sort(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = c.sort.Click(key)
	c.refreshLocked()
}

// refreshLocked recomputes the projection from the current base
// collection, search term and sort parameters. Callers hold the lock.
func (c *CustomerConsole) refreshLocked() {
	c.projection = OrderBy(Filter(c.customers, c.search), customerLess(c.sort.Key), c.sort.Direction)
}

// customerLess returns the ascending comparison for a sort key. Unknown
// keys compare everything equal, preserving the incoming order.
func customerLess(key string) func(a, b domain.Customer) bool {
	field := func(c domain.Customer) string { return c.Field(key) }
	return func(a, b domain.Customer) bool {
		return LessStrings(field(a), field(b))
	}
}

// =============================================================================
// Form session
// =============================================================================

// OpenNew opens the modal with an empty draft for creating a customer.
func (c *CustomerConsole) OpenNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.openNew(domain.CustomerDraft{})
}

// OpenEdit opens the modal seeded from the record with the given self
// link, remembering the link as the update target.
func (c *CustomerConsole) OpenEdit(selfLink string) error {
	const op = "customer.open"

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cust := range c.customers {
		if cust.SelfLink == selfLink {
			c.form.openEdit(domain.DraftFromCustomer(cust), selfLink)
			return nil
		}
	}
	return domain.Invalid(op, "no customer with that identity")
}

// EditField mutates a single draft field, leaving the others untouched.
// It is a no-op when no form session is open.
func (c *CustomerConsole) EditField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.form.state.Open() || c.form.state == FormSubmitting {
		return
	}
	c.form.draft.SetField(name, value)
}

// Submit hands the draft to the mutation gateway, creating or updating
// depending on how the session was seeded. On success the session
// closes and the base collection is reloaded; on failure the session
// stays open with the draft intact.
func (c *CustomerConsole) Submit(ctx context.Context) error {
	const op = "customer.submit"

	c.mu.Lock()
	if !c.form.beginSubmit() {
		c.mu.Unlock()
		return domain.Invalid(op, "no form session is open")
	}
	draft := c.form.draft
	target := c.form.target
	c.mu.Unlock()

	var err error
	if target == "" {
		err = c.api.CreateCustomer(ctx, draft)
	} else {
		err = c.api.UpdateCustomer(ctx, target, draft)
	}

	c.mu.Lock()
	if err != nil {
		c.form.failSubmit()
		c.mu.Unlock()
		c.logger.Error("failed to save customer", "error", err, "editing", target != "")
		return err
	}
	c.form.close()
	c.mu.Unlock()

	return c.Load(ctx)
}

// Cancel discards the draft without any network call.
func (c *CustomerConsole) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.close()
}

// =============================================================================
// Delete confirmation
// =============================================================================

// RequestDelete records a pending delete intent for the record with the
// given self link. No network call is made until the intent is
// confirmed.
func (c *CustomerConsole) RequestDelete(selfLink string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = selfLink
}

// DeclineDelete drops the pending intent. Declining is terminal for
// that action: no request is issued and no error is raised.
func (c *CustomerConsole) DeclineDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

// ConfirmDelete commits the pending intent, issuing the DELETE and
// reloading the collection on success. With no pending intent it is a
// no-op.
func (c *CustomerConsole) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()

	if target == "" {
		return nil
	}
	if err := c.api.DeleteCustomer(ctx, target); err != nil {
		c.logger.Error("failed to delete customer", "error", err, "target", target)
		return err
	}
	return c.Load(ctx)
}

// =============================================================================
// Snapshot
// =============================================================================

// CustomerSnapshot is the immutable view handed to the rendering layer.
type CustomerSnapshot struct {
	Customers     []domain.Customer // Filtered+sorted projection
	Total         int               // Size of the base collection
	Search        string
	SortKey       string
	SortDirection SortDirection
	FormState     FormState
	Draft         domain.CustomerDraft
	IsEdit        bool
	PendingDelete string
}

// Snapshot returns a copy of the current view state.
func (c *CustomerConsole) Snapshot() CustomerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CustomerSnapshot{
		Customers:     append([]domain.Customer(nil), c.projection...),
		Total:         len(c.customers),
		Search:        c.search,
		SortKey:       c.sort.Key,
		SortDirection: c.sort.Direction,
		FormState:     c.form.state,
		Draft:         c.form.draft,
		IsEdit:        c.form.target != "",
		PendingDelete: c.pendingDelete,
	}
}
