package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/models"
)

// Store persists the menu. Lookups return ErrNotFound for missing rows;
// retired (inactive) rows are still returned by GetFoodItem/GetCombo so
// historical references keep resolving, and the service decides whether
// to filter on the active flag.
type Store interface {
	ListFoodItems(ctx context.Context, category string) ([]models.FoodItem, error)
	GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error)
	ActiveFoodItems(ctx context.Context, ids []uint) ([]models.FoodItem, error)
	SaveFoodItem(ctx context.Context, item *models.FoodItem) error

	ListCombos(ctx context.Context) ([]models.Combo, error)
	GetCombo(ctx context.Context, id uint) (*models.Combo, error)
	CreateCombo(ctx context.Context, combo *models.Combo) error
	UpdateCombo(ctx context.Context, combo *models.Combo, items []models.ComboItem) error
	SaveCombo(ctx context.Context, combo *models.Combo) error
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

type FoodItemInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	Category         string
	Theme            string
	ImageURL         string
	Ingredients      string
	NutritionalInfo  string
	AllergenWarnings string
	IsActive         bool
}

// ListFoodItems returns active menu entries, optionally filtered by
// category, ordered by category then name.
func (s *Service) ListFoodItems(ctx context.Context, category string) ([]models.FoodItem, error) {
	return s.store.ListFoodItems(ctx, category)
}

// GetFoodItem returns an active food item; inactive rows are reported as
// not found.
func (s *Service) GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	item, err := s.store.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *Service) CreateFoodItem(ctx context.Context, input FoodItemInput) (*models.FoodItem, error) {
	input = input.sanitized()
	if err := validateFoodItemInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &models.FoodItem{
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		Category:         input.Category,
		Theme:            input.Theme,
		ImageURL:         input.ImageURL,
		Ingredients:      input.Ingredients,
		NutritionalInfo:  input.NutritionalInfo,
		AllergenWarnings: input.AllergenWarnings,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.SaveFoodItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	s.logger.Info("Food item created",
		zap.String("name", item.Name),
		zap.Uint("food_item_id", item.ID))

	return item, nil
}

func (s *Service) UpdateFoodItem(ctx context.Context, id uint, input FoodItemInput) (*models.FoodItem, error) {
	input = input.sanitized()
	if err := validateFoodItemInput(input); err != nil {
		return nil, err
	}

	item, err := s.store.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.Category = input.Category
	item.Theme = input.Theme
	item.ImageURL = input.ImageURL
	item.Ingredients = input.Ingredients
	item.NutritionalInfo = input.NutritionalInfo
	item.AllergenWarnings = input.AllergenWarnings
	item.IsActive = input.IsActive
	item.UpdatedAt = s.now().UTC()

	if err := s.store.SaveFoodItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	s.logger.Info("Food item updated",
		zap.String("name", item.Name),
		zap.Uint("food_item_id", item.ID))

	return item, nil
}

// DeleteFoodItem retires a menu entry without removing the row, so
// historical order items keep resolving.
func (s *Service) DeleteFoodItem(ctx context.Context, id uint) error {
	item, err := s.store.GetFoodItem(ctx, id)
	if err != nil {
		return err
	}

	item.IsActive = false
	item.UpdatedAt = s.now().UTC()

	if err := s.store.SaveFoodItem(ctx, item); err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	s.logger.Info("Food item soft deleted",
		zap.String("name", item.Name),
		zap.Uint("food_item_id", item.ID))

	return nil
}

func validateFoodItemInput(input FoodItemInput) error {
	if input.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if input.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if input.Price.Cmp(decimal.Zero) <= 0 {
		return &ValidationError{Field: "price", Message: "price must be greater than zero"}
	}
	return nil
}
