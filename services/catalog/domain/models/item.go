package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the catalog aggregate. ID and timestamps are assigned by storage.
type Item struct {
	ID          uuid.UUID
	Name        ItemName
	Price       Price
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemCandidate is the unvalidated input for adding an item. Any id or
// timestamps a caller sends are dropped before it reaches this type.
type ItemCandidate struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// NewItem constructs an unsaved Item. It has no ID until storage assigns one.
func NewItem(name ItemName, price Price, description string) *Item {
	return &Item{
		Name:        name,
		Price:       price,
		Description: description,
	}
}

// Clone returns a copy that can be mutated without touching the original.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// ItemMutation is the typed form of a partial update. Nil fields are left alone.
type ItemMutation struct {
	Name        *ItemName
	Description *string
	Price       *Price
}

// IsEmpty reports whether the mutation changes nothing.
func (m ItemMutation) IsEmpty() bool {
	return m.Name == nil && m.Description == nil && m.Price == nil
}

// Fields lists the names of the fields the mutation sets, in a fixed order.
func (m ItemMutation) Fields() []string {
	fields := make([]string, 0, 3)
	if m.Name != nil {
		fields = append(fields, "name")
	}
	if m.Description != nil {
		fields = append(fields, "description")
	}
	if m.Price != nil {
		fields = append(fields, "price")
	}
	return fields
}

// ApplyTo writes every set field onto item.
func (m ItemMutation) ApplyTo(item *Item) {
	if m.Name != nil {
		item.Name = *m.Name
	}
	if m.Description != nil {
		item.Description = *m.Description
	}
	if m.Price != nil {
		item.Price = *m.Price
	}
}

// SearchFilter carries the optional search parameters. A nil pointer means
// the parameter was not supplied.
type SearchFilter struct {
	Name     *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
