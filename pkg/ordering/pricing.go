package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/fastbite/pkg/models"
)

// LineItem is a single requested (item-or-combo, quantity) pair. Exactly
// one of FoodItemID and ComboID must be set.
type LineItem struct {
	FoodItemID *uint `json:"food_item_id"`
	ComboID    *uint `json:"combo_id"`
	Quantity   int   `json:"quantity"`
}

// Catalog resolves active menu entries. Lookups filter on the active flag;
// retired rows behave as missing.
type Catalog interface {
	ActiveFoodItem(ctx context.Context, id uint) (*models.FoodItem, error)
	ActiveCombo(ctx context.Context, id uint) (*models.Combo, error)
}

// PriceItems validates the requested lines against the catalog and prices
// each one at the current catalog price. The returned order items carry
// the price snapshot; later catalog changes never alter them. Duplicate
// references across lines are priced independently, not merged.
func PriceItems(ctx context.Context, catalog Catalog, items []LineItem) ([]models.OrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, &ValidationError{Field: "items", Message: "order must contain at least one item"}
	}

	priced := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero

	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "item quantity must be greater than zero",
			}
		}
		if item.FoodItemID != nil && item.ComboID != nil {
			return nil, decimal.Zero, &ValidationError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "order item cannot reference both a food item and a combo",
			}
		}
		if item.FoodItemID == nil && item.ComboID == nil {
			return nil, decimal.Zero, &ValidationError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "order item must reference either a food item or a combo",
			}
		}

		var unitPrice decimal.Decimal

		if item.FoodItemID != nil {
			foodItem, err := catalog.ActiveFoodItem(ctx, *item.FoodItemID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, decimal.Zero, &NotFoundError{Kind: "food item", ID: *item.FoodItemID}
				}
				return nil, decimal.Zero, fmt.Errorf("failed to look up food item %d: %w", *item.FoodItemID, err)
			}
			unitPrice = foodItem.Price
		} else {
			combo, err := catalog.ActiveCombo(ctx, *item.ComboID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, decimal.Zero, &NotFoundError{Kind: "combo", ID: *item.ComboID}
				}
				return nil, decimal.Zero, fmt.Errorf("failed to look up combo %d: %w", *item.ComboID, err)
			}
			unitPrice = combo.Price
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		priced = append(priced, models.OrderItem{
			FoodItemID: item.FoodItemID,
			ComboID:    item.ComboID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			Subtotal:   subtotal,
		})
	}

	return priced, total, nil
}
