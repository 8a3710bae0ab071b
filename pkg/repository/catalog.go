package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/catalog"
	"github.com/example/fastbite/pkg/models"
	"github.com/example/fastbite/pkg/ordering"
)

// CatalogStore is the MySQL-backed menu store. It implements both
// catalog.Store for administration and ordering.Catalog for the pricing
// workflow's active-only lookups.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) ListFoodItems(ctx context.Context, category string) ([]models.FoodItem, error) {
	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}

	var items []models.FoodItem
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	return items, nil
}

// GetFoodItem resolves by identity regardless of the active flag, so
// historical references stay valid.
func (s *CatalogStore) GetFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	return &item, nil
}

func (s *CatalogStore) ActiveFoodItems(ctx context.Context, ids []uint) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load food items: %w", err)
	}
	return items, nil
}

func (s *CatalogStore) SaveFoodItem(ctx context.Context, item *models.FoodItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *CatalogStore) ListCombos(ctx context.Context) ([]models.Combo, error) {
	var combos []models.Combo
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("ComboItems.FoodItem").
		Order("name").
		Find(&combos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list combos: %w", err)
	}
	return combos, nil
}

func (s *CatalogStore) GetCombo(ctx context.Context, id uint) (*models.Combo, error) {
	var combo models.Combo
	err := s.db.WithContext(ctx).
		Preload("ComboItems.FoodItem").
		First(&combo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get combo: %w", err)
	}
	return &combo, nil
}

func (s *CatalogStore) CreateCombo(ctx context.Context, combo *models.Combo) error {
	return s.db.WithContext(ctx).Create(combo).Error
}

// UpdateCombo saves the combo row and replaces its component rows in one
// transaction.
func (s *CatalogStore) UpdateCombo(ctx context.Context, combo *models.Combo, items []models.ComboItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ComboItems").Save(combo).Error; err != nil {
			return err
		}
		if err := tx.Where("combo_id = ?", combo.ID).Delete(&models.ComboItem{}).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

func (s *CatalogStore) SaveCombo(ctx context.Context, combo *models.Combo) error {
	return s.db.WithContext(ctx).Omit("ComboItems").Save(combo).Error
}

// ActiveFoodItem implements ordering.Catalog: fresh lookups filter on the
// active flag.
func (s *CatalogStore) ActiveFoodItem(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordering.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up food item: %w", err)
	}
	return &item, nil
}

// ActiveCombo implements ordering.Catalog.
func (s *CatalogStore) ActiveCombo(ctx context.Context, id uint) (*models.Combo, error) {
	var combo models.Combo
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&combo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordering.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up combo: %w", err)
	}
	return &combo, nil
}
