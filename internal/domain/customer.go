// Package domain contains core business types and the error model.
//
// This file defines the Customer domain type. Customers come from a
// hypermedia-style REST API: each record's identity is its self link,
// not a separate numeric key, and the self link doubles as the address
// for update and delete operations.
package domain

import "strings"

// Customer represents a personal training customer.
type Customer struct {
	Firstname     string // Given name
	Lastname      string // Family name
	Email         string // Contact email
	Phone         string // Contact phone
	Streetaddress string // Street address
	Postcode      string // Postal code
	City          string // City
	SelfLink      string // Hypermedia self href, the record's identity
}

// FullName returns the customer's display name.
func (c Customer) FullName() string {
	return c.Firstname + " " + c.Lastname
}

// Ref returns the trailing identifier segment of the self link. It is
// what a training form stores for its customer selection; the full
// reference link is rebuilt at submit time.
func (c Customer) Ref() string {
	idx := strings.LastIndex(c.SelfLink, "/")
	if idx < 0 {
		return c.SelfLink
	}
	return c.SelfLink[idx+1:]
}

// SearchValues returns the scalar field values a free-text search
// matches against.
func (c Customer) SearchValues() []string {
	return []string{
		c.Firstname,
		c.Lastname,
		c.Email,
		c.Phone,
		c.Streetaddress,
		c.Postcode,
		c.City,
	}
}

// Field returns the named field's value, or the empty string for an
// unknown name so absent sort keys compare as empty.
func (c Customer) Field(name string) string {
	switch name {
	case "firstname":
		return c.Firstname
	case "lastname":
		return c.Lastname
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "streetaddress":
		return c.Streetaddress
	case "postcode":
		return c.Postcode
	case "city":
		return c.City
	}
	return ""
}

// CustomerDraft is the transient editable copy of a customer held by a
// modal session. It has no identity until a save succeeds.
type CustomerDraft struct {
	Firstname     string
	Lastname      string
	Email         string
	Phone         string
	Streetaddress string
	Postcode      string
	City          string
}

// CustomerFields lists the editable customer field names in display order.
var CustomerFields = []string{
	"firstname", "lastname", "email", "phone", "streetaddress", "postcode", "city",
}

// DraftFromCustomer seeds a draft from an existing record.
func DraftFromCustomer(c Customer) CustomerDraft {
	return CustomerDraft{
		Firstname:     c.Firstname,
		Lastname:      c.Lastname,
		Email:         c.Email,
		Phone:         c.Phone,
		Streetaddress: c.Streetaddress,
		Postcode:      c.Postcode,
		City:          c.City,
	}
}

// Field returns the named field's current value.
func (d CustomerDraft) Field(name string) string {
	switch name {
	case "firstname":
		return d.Firstname
	case "lastname":
		return d.Lastname
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "streetaddress":
		return d.Streetaddress
	case "postcode":
		return d.Postcode
	case "city":
		return d.City
	}
	return ""
}

// SetField sets the named field, leaving all others untouched. Unknown
// names are ignored.
func (d *CustomerDraft) SetField(name, value string) {
	switch name {
	case "firstname":
		d.Firstname = value
	case "lastname":
		d.Lastname = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "streetaddress":
		d.Streetaddress = value
	case "postcode":
		d.Postcode = value
	case "city":
		d.City = value
	}
}
