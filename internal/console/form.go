package console

// FormState tracks a modal form session.
//
// Transitions: Closed -> Creating|Editing -> Submitting -> Closed.
// A failed submit returns to the open state with the draft preserved so
// the user may retry or cancel; a successful submit closes the session
// and triggers a base-collection reload.
type FormState string

const (
	FormClosed     FormState = "closed"
	FormCreating   FormState = "creating"
	FormEditing    FormState = "editing"
	FormSubmitting FormState = "submitting"
)

// Valid checks if the form state is a known value.
func (s FormState) Valid() bool {
	switch s {
	case FormClosed, FormCreating, FormEditing, FormSubmitting:
		return true
	default:
		return false
	}
}

// Open reports whether the session currently holds a draft.
func (s FormState) Open() bool {
	return s != FormClosed && s != ""
}

// formSession owns the transient editable copy of a record shown in a
// modal. The draft exists only for the lifetime of the session and is
// discarded whenever the modal closes, by save or by cancel.
type formSession[D any] struct {
	state  FormState
	draft  D
	target string // Identity reference for update targeting; empty when creating
}

// openNew seeds an empty draft and marks the session as a creation.
// Re-opening while already open replaces the prior draft entirely.
func (f *formSession[D]) openNew(draft D) {
	f.state = FormCreating
	f.draft = draft
	f.target = ""
}

// openEdit seeds the draft from an existing record and remembers its
// identity reference as the update target.
func (f *formSession[D]) openEdit(draft D, target string) {
	f.state = FormEditing
	f.draft = draft
	f.target = target
}

// beginSubmit moves an open session into Submitting, returning false if
// no session is open.
func (f *formSession[D]) beginSubmit() bool {
	switch f.state {
	case FormCreating, FormEditing:
		f.state = FormSubmitting
		return true
	default:
		return false
	}
}

// failSubmit returns a submitting session to its open state, keeping
// the draft's unsaved edits intact.
func (f *formSession[D]) failSubmit() {
	if f.state != FormSubmitting {
		return
	}
	if f.target == "" {
		f.state = FormCreating
	} else {
		f.state = FormEditing
	}
}

// close discards the draft and target.
func (f *formSession[D]) close() {
	var zero D
	f.state = FormClosed
	f.draft = zero
	f.target = ""
}
