package services

import (
	"fmt"
	"slices"

	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

// fieldSetter coerces one untyped partial-update value onto the mutation.
type fieldSetter func(m *models.ItemMutation, v any) error

// fieldSetters is the complete set of fields a partial update may touch.
var fieldSetters = map[string]fieldSetter{
	"name":        setName,
	"description": setDescription,
	"price":       setPrice,
}

// ParseItemChanges turns a sparse field-name → value map into a typed mutation.
// Keys are processed in sorted order and the first bad key aborts the whole
// batch: an unknown key yields ErrInvalidField, an uncoercible value ErrInvalidValue.
func ParseItemChanges(changes map[string]any) (models.ItemMutation, error) {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var m models.ItemMutation
	for _, k := range keys {
		set, ok := fieldSetters[k]
		if !ok {
			return models.ItemMutation{}, fmt.Errorf("%w: %q", itemdomain.ErrInvalidField, k)
		}
		if err := set(&m, changes[k]); err != nil {
			return models.ItemMutation{}, fmt.Errorf("%w: %s: %w", itemdomain.ErrInvalidValue, k, err)
		}
	}
	return m, nil
}

func setName(m *models.ItemMutation, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected text, got %T", v)
	}
	name, err := models.NewItemName(s)
	if err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	m.Name = &name
	return nil
}

func setDescription(m *models.ItemMutation, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected text, got %T", v)
	}
	m.Description = &s
	return nil
}

func setPrice(m *models.ItemMutation, v any) error {
	p, err := models.ParsePrice(v)
	if err != nil {
		return err
	}
	m.Price = &p
	return nil
}
