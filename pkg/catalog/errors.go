package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrComponentsUnavailable means one or more referenced food items are
	// missing or inactive, so the combo cannot be created or updated.
	ErrComponentsUnavailable = errors.New("one or more food items not found or inactive")
)

// ComboPriceError reports a violation of the bundle pricing rule: a combo
// must cost strictly less than the sum of its component prices. Both
// values are carried so the caller can display the comparison.
type ComboPriceError struct {
	ComboPrice   decimal.Decimal
	ComponentSum decimal.Decimal
}

func (e *ComboPriceError) Error() string {
	return fmt.Sprintf("combo price %s must be less than the sum of individual item prices %s",
		e.ComboPrice.StringFixed(2), e.ComponentSum.StringFixed(2))
}

// ValidationError reports a malformed catalog request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
