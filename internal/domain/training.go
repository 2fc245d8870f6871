// Package domain contains core business types and the error model.
//
// This file defines the Training domain type. On read the upstream API
// embeds the owning customer as a full object; on write the customer is
// expressed as a link string pointing at the owning customer record.
package domain

import (
	"strconv"
	"time"
)

// DisplayTimeLayout is the presentation format for training timestamps.
const DisplayTimeLayout = "02.01.2006 15:04"

// Training represents a single training session booked for a customer.
type Training struct {
	ID       int64     // Upstream numeric identifier, used for delete targeting
	Date     time.Time // Session start, parsed from the upstream ISO-8601 string
	Duration int       // Session length in minutes
	Activity string    // Activity description
	Customer Customer  // Owning customer, embedded on read
}

// CustomerName returns the derived comparison and display key for the
// training's customer: firstname and lastname, space-separated.
func (t Training) CustomerName() string {
	return t.Customer.FullName()
}

// DisplayDate returns the session start formatted for presentation.
func (t Training) DisplayDate() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(DisplayTimeLayout)
}

// SearchValues returns the scalar field values a free-text search
// matches against. The embedded customer's own scalar fields are
// flattened into the set so searching by customer name works.
func (t Training) SearchValues() []string {
	values := []string{
		t.DisplayDate(),
		strconv.Itoa(t.Duration),
		t.Activity,
	}
	return append(values, t.Customer.SearchValues()...)
}

// TrainingDraft is the transient editable copy of a training held by a
// modal session. All fields hold raw form input; the customer field
// holds only the trailing identifier segment of the owning customer's
// link, never the full link.
type TrainingDraft struct {
	Date     string // Raw datetime input
	Duration string // Raw minutes input
	Activity string
	Customer string // Bare customer identifier segment
}

// TrainingFields lists the editable training field names in display order.
var TrainingFields = []string{"date", "duration", "activity", "customer"}

// Field returns the named field's current value.
func (d TrainingDraft) Field(name string) string {
	switch name {
	case "date":
		return d.Date
	case "duration":
		return d.Duration
	case "activity":
		return d.Activity
	case "customer":
		return d.Customer
	}
	return ""
}

// SetField sets the named field, leaving all others untouched. Unknown
// names are ignored.
func (d *TrainingDraft) SetField(name, value string) {
	switch name {
	case "date":
		d.Date = value
	case "duration":
		d.Duration = value
	case "activity":
		d.Activity = value
	case "customer":
		d.Customer = value
	}
}

// DurationMinutes parses the draft's duration input. Unparseable input
// yields zero; the upstream API is the validation authority.
func (d TrainingDraft) DurationMinutes() int {
	n, err := strconv.Atoi(d.Duration)
	if err != nil {
		return 0
	}
	return n
}
