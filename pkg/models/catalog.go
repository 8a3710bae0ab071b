package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodItem is a single menu entry. Rows are never hard-deleted; IsActive
// flags retired entries so historical orders keep resolving.
type FoodItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(100);not null" json:"name"`
	Description      string          `gorm:"type:varchar(500)" json:"description"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category         string          `gorm:"type:varchar(50);not null;index" json:"category"`
	Theme            string          `gorm:"type:varchar(50)" json:"theme"`
	ImageURL         string          `gorm:"type:varchar(255)" json:"image_url"`
	Ingredients      string          `gorm:"type:varchar(500)" json:"ingredients"`
	NutritionalInfo  string          `gorm:"type:varchar(255)" json:"nutritional_info"`
	AllergenWarnings string          `gorm:"type:varchar(255)" json:"allergen_warnings"`
	IsActive         bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// Combo bundles food items at a price strictly below the sum of its
// component prices.
type Combo struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:varchar(500)" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(255)" json:"image_url"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	ComboItems []ComboItem `gorm:"foreignKey:ComboID" json:"combo_items"`
}

func (Combo) TableName() string {
	return "combos"
}

type ComboItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ComboID    uint `gorm:"not null;index" json:"combo_id"`
	FoodItemID uint `gorm:"not null" json:"food_item_id"`
	Quantity   int  `gorm:"not null;default:1" json:"quantity"`

	FoodItem FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item"`
}

func (ComboItem) TableName() string {
	return "combo_items"
}
