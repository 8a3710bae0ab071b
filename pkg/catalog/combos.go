package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/models"
)

// ComboComponent references a food item and how many of it the bundle
// contains.
type ComboComponent struct {
	FoodItemID uint `json:"food_item_id"`
	Quantity   int  `json:"quantity"`
}

type ComboInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	IsActive    bool
	Components  []ComboComponent
}

// resolveComponents loads the distinct referenced food items, active only.
// It fails with ErrComponentsUnavailable when any reference cannot be
// resolved.
func (s *Service) resolveComponents(ctx context.Context, components []ComboComponent) (map[uint]models.FoodItem, error) {
	if len(components) == 0 {
		return nil, &ValidationError{Field: "combo_items", Message: "combo must contain at least one food item"}
	}

	seen := make(map[uint]struct{}, len(components))
	ids := make([]uint, 0, len(components))
	for i, c := range components {
		if c.Quantity <= 0 {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("combo_items[%d].quantity", i),
				Message: "component quantity must be greater than zero",
			}
		}
		if _, ok := seen[c.FoodItemID]; !ok {
			seen[c.FoodItemID] = struct{}{}
			ids = append(ids, c.FoodItemID)
		}
	}

	foodItems, err := s.store.ActiveFoodItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load combo components: %w", err)
	}
	if len(foodItems) != len(ids) {
		return nil, ErrComponentsUnavailable
	}

	byID := make(map[uint]models.FoodItem, len(foodItems))
	for _, f := range foodItems {
		byID[f.ID] = f
	}
	return byID, nil
}

// checkComboPrice enforces the bundle rule: price strictly below the sum
// of (component unit price x component quantity).
func checkComboPrice(price decimal.Decimal, components []ComboComponent, byID map[uint]models.FoodItem) error {
	sum := decimal.Zero
	for _, c := range components {
		item := byID[c.FoodItemID]
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(c.Quantity))))
	}
	if price.Cmp(sum) >= 0 {
		return &ComboPriceError{ComboPrice: price, ComponentSum: sum}
	}
	return nil
}

// CreateCombo validates the bundle against current catalog prices and
// persists it. Nothing is written when validation fails.
func (s *Service) CreateCombo(ctx context.Context, input ComboInput) (*models.Combo, error) {
	input = input.sanitized()
	byID, err := s.resolveComponents(ctx, input.Components)
	if err != nil {
		return nil, err
	}
	if err := checkComboPrice(input.Price, input.Components, byID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	combo := &models.Combo{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, c := range input.Components {
		combo.ComboItems = append(combo.ComboItems, models.ComboItem{
			FoodItemID: c.FoodItemID,
			Quantity:   c.Quantity,
		})
	}

	if err := s.store.CreateCombo(ctx, combo); err != nil {
		return nil, fmt.Errorf("failed to create combo: %w", err)
	}

	s.logger.Info("Combo created",
		zap.String("name", combo.Name),
		zap.Uint("combo_id", combo.ID))

	return s.store.GetCombo(ctx, combo.ID)
}

// UpdateCombo replaces the bundle definition. The pricing rule is
// re-checked on every update because component prices may have changed
// since the combo was defined.
func (s *Service) UpdateCombo(ctx context.Context, id uint, input ComboInput) (*models.Combo, error) {
	combo, err := s.store.GetCombo(ctx, id)
	if err != nil {
		return nil, err
	}

	input = input.sanitized()
	byID, err := s.resolveComponents(ctx, input.Components)
	if err != nil {
		return nil, err
	}
	if err := checkComboPrice(input.Price, input.Components, byID); err != nil {
		return nil, err
	}

	combo.Name = input.Name
	combo.Description = input.Description
	combo.Price = input.Price
	combo.ImageURL = input.ImageURL
	combo.IsActive = input.IsActive
	combo.UpdatedAt = s.now().UTC()

	items := make([]models.ComboItem, 0, len(input.Components))
	for _, c := range input.Components {
		items = append(items, models.ComboItem{
			ComboID:    combo.ID,
			FoodItemID: c.FoodItemID,
			Quantity:   c.Quantity,
		})
	}

	if err := s.store.UpdateCombo(ctx, combo, items); err != nil {
		return nil, fmt.Errorf("failed to update combo: %w", err)
	}

	s.logger.Info("Combo updated",
		zap.String("name", combo.Name),
		zap.Uint("combo_id", combo.ID))

	return s.store.GetCombo(ctx, combo.ID)
}

// DeleteCombo retires a combo. The row is kept so order items referencing
// it keep resolving.
func (s *Service) DeleteCombo(ctx context.Context, id uint) error {
	combo, err := s.store.GetCombo(ctx, id)
	if err != nil {
		return err
	}

	combo.IsActive = false
	combo.UpdatedAt = s.now().UTC()

	if err := s.store.SaveCombo(ctx, combo); err != nil {
		return fmt.Errorf("failed to delete combo: %w", err)
	}

	s.logger.Info("Combo soft deleted",
		zap.String("name", combo.Name),
		zap.Uint("combo_id", combo.ID))

	return nil
}

// ListCombos returns active combos ordered by name, with components.
func (s *Service) ListCombos(ctx context.Context) ([]models.Combo, error) {
	return s.store.ListCombos(ctx)
}

// GetCombo returns a combo by ID. Inactive combos are reported as not
// found to fresh lookups.
func (s *Service) GetCombo(ctx context.Context, id uint) (*models.Combo, error) {
	combo, err := s.store.GetCombo(ctx, id)
	if err != nil {
		return nil, err
	}
	if !combo.IsActive {
		return nil, ErrNotFound
	}
	return combo, nil
}
