package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a non-negative decimal amount. Zero is a legal price.
type Price struct {
	amount decimal.Decimal
}

// NewPrice validates d and returns it as a Price.
func NewPrice(d decimal.Decimal) (Price, error) {
	if d.IsNegative() {
		return Price{}, fmt.Errorf("price must be greater than or equal to zero, got %s", d.String())
	}
	return Price{amount: d}, nil
}

// ParsePrice coerces a loosely typed value (JSON number, numeric string, Go number)
// into a Price. Used for partial updates where the payload is untyped.
func ParsePrice(v any) (Price, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch x := v.(type) {
	case Price:
		return x, nil
	case decimal.Decimal:
		d = x
	case json.Number:
		d, err = decimal.NewFromString(x.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Price{}, fmt.Errorf("price must be a finite number")
		}
		d = decimal.NewFromFloat(x)
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return Price{}, fmt.Errorf("price must be a finite number")
		}
		d = decimal.NewFromFloat32(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int32:
		d = decimal.NewFromInt32(x)
	case int64:
		d = decimal.NewFromInt(x)
	default:
		return Price{}, fmt.Errorf("price must be numeric, got %T", v)
	}
	if err != nil {
		return Price{}, fmt.Errorf("price must be numeric: %w", err)
	}
	return NewPrice(d)
}

// RestorePrice rehydrates a Price read back from storage without re-validating it.
func RestorePrice(d decimal.Decimal) Price {
	return Price{amount: d}
}

// Decimal returns the underlying amount.
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// Equal reports whether both prices hold the same amount, ignoring scale.
func (p Price) Equal(o Price) bool {
	return p.amount.Equal(o.amount)
}

// String renders the amount without trailing zeros ("19.99", "0", "25").
func (p Price) String() string {
	return p.amount.String()
}
