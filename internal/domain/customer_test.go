package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerRef(t *testing.T) {
	tests := []struct {
		name     string
		selfLink string
		want     string
	}{
		{
			name:     "trailing segment of the self link",
			selfLink: "https://api.example.com/api/customers/7",
			want:     "7",
		},
		{
			name:     "link without slashes returned as-is",
			selfLink: "7",
			want:     "7",
		},
		{
			name:     "empty link",
			selfLink: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{SelfLink: tt.selfLink}
			assert.Equal(t, tt.want, c.Ref())
		})
	}
}

func TestCustomerFullName(t *testing.T) {
	c := Customer{Firstname: "Ann", Lastname: "Archer"}
	assert.Equal(t, "Ann Archer", c.FullName())
}

func TestCustomerDraftSetField(t *testing.T) {
	d := CustomerDraft{Firstname: "Ann", Lastname: "Archer", City: "Helsinki"}

	d.SetField("city", "Espoo")

	assert.Equal(t, "Espoo", d.City)
	assert.Equal(t, "Ann", d.Firstname, "other fields must be untouched")
	assert.Equal(t, "Archer", d.Lastname, "other fields must be untouched")

	// Unknown field names are ignored
	d.SetField("nope", "value")
	assert.Equal(t, CustomerDraft{Firstname: "Ann", Lastname: "Archer", City: "Espoo"}, d)
}

func TestDraftFromCustomer(t *testing.T) {
	c := Customer{
		Firstname:     "Ann",
		Lastname:      "Archer",
		Email:         "ann@example.com",
		Phone:         "040123",
		Streetaddress: "Mannerheimintie 1",
		Postcode:      "00100",
		City:          "Helsinki",
		SelfLink:      "https://api.example.com/api/customers/7",
	}

	d := DraftFromCustomer(c)

	for _, field := range CustomerFields {
		assert.Equal(t, c.Field(field), d.Field(field), field)
	}
}

func TestCustomerSearchValues(t *testing.T) {
	c := Customer{
		Firstname:     "Ann",
		Lastname:      "Archer",
		Email:         "ann@example.com",
		Phone:         "040123",
		Streetaddress: "Mannerheimintie 1",
		Postcode:      "00100",
		City:          "Helsinki",
		SelfLink:      "https://api.example.com/api/customers/7",
	}

	values := c.SearchValues()

	assert.Len(t, values, len(CustomerFields))
	assert.Contains(t, values, "Helsinki")
	assert.NotContains(t, values, c.SelfLink, "identity link is not a searchable value")
}
