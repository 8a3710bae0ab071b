package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/models"
)

// Seed populates an empty database with accounts, a starter menu and two
// combos. It is a no-op once any user or food item exists.
func Seed(db *gorm.DB) error {
	var userCount, itemCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check users: %w", err)
	}
	if err := db.Model(&models.FoodItem{}).Count(&itemCount).Error; err != nil {
		return fmt.Errorf("failed to check food items: %w", err)
	}
	if userCount > 0 || itemCount > 0 {
		return nil
	}

	if err := seedUsers(db); err != nil {
		return err
	}
	return seedMenu(db)
}

func seedUsers(db *gorm.DB) error {
	adminHash, err := auth.HashPassword("Admin123!")
	if err != nil {
		return err
	}
	customerHash, err := auth.HashPassword("Customer123!")
	if err != nil {
		return err
	}

	birthday := func(year, month, day int) *time.Time {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	users := []models.User{
		{
			Email:        "admin@fastbite.com",
			PasswordHash: adminHash,
			FullName:     "System Administrator",
			PhoneNumber:  "555-0100",
			Address:      "123 Admin Street",
			DateOfBirth:  birthday(1985, 1, 1),
			Role:         models.RoleAdmin,
			IsActive:     true,
		},
		{
			Email:        "customer1@example.com",
			PasswordHash: customerHash,
			FullName:     "John Doe",
			PhoneNumber:  "555-0101",
			Address:      "456 Customer Lane",
			DateOfBirth:  birthday(1990, 5, 15),
			Role:         models.RoleCustomer,
			IsActive:     true,
		},
		{
			Email:        "customer2@example.com",
			PasswordHash: customerHash,
			FullName:     "Jane Smith",
			PhoneNumber:  "555-0102",
			Address:      "789 Buyer Boulevard",
			DateOfBirth:  birthday(1992, 8, 20),
			Role:         models.RoleCustomer,
			IsActive:     true,
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedMenu(db *gorm.DB) error {
	items := []models.FoodItem{
		{
			Name:             "Classic Burger",
			Description:      "Juicy beef patty with lettuce, tomato, onion, and special sauce",
			Price:            price("8.99"),
			Category:         "Burgers",
			Theme:            "Classic",
			ImageURL:         "/images/classic-burger.jpg",
			Ingredients:      "Beef patty, lettuce, tomato, onion, pickles, special sauce, sesame bun",
			NutritionalInfo:  "Calories: 540, Protein: 28g, Carbs: 42g, Fat: 26g",
			AllergenWarnings: "Contains: Gluten, Dairy, Soy",
			IsActive:         true,
		},
		{
			Name:             "Cheese Burger",
			Description:      "Classic burger with melted cheddar cheese",
			Price:            price("9.99"),
			Category:         "Burgers",
			Theme:            "Classic",
			ImageURL:         "/images/cheese-burger.jpg",
			Ingredients:      "Beef patty, cheddar cheese, lettuce, tomato, onion, pickles, ketchup, mustard, sesame bun",
			NutritionalInfo:  "Calories: 610, Protein: 32g, Carbs: 43g, Fat: 31g",
			AllergenWarnings: "Contains: Gluten, Dairy, Soy",
			IsActive:         true,
		},
		{
			Name:             "Bacon Burger",
			Description:      "Loaded with crispy bacon and cheese",
			Price:            price("11.99"),
			Category:         "Burgers",
			Theme:            "Premium",
			ImageURL:         "/images/bacon-burger.jpg",
			Ingredients:      "Beef patty, bacon, cheddar cheese, lettuce, tomato, onion, BBQ sauce, sesame bun",
			NutritionalInfo:  "Calories: 720, Protein: 38g, Carbs: 44g, Fat: 40g",
			AllergenWarnings: "Contains: Gluten, Dairy, Soy",
			IsActive:         true,
		},
		{
			Name:             "Veggie Burger",
			Description:      "Plant-based patty with fresh vegetables",
			Price:            price("9.49"),
			Category:         "Burgers",
			Theme:            "Healthy",
			ImageURL:         "/images/veggie-burger.jpg",
			Ingredients:      "Plant-based patty, lettuce, tomato, onion, avocado, vegan mayo, whole wheat bun",
			NutritionalInfo:  "Calories: 420, Protein: 18g, Carbs: 48g, Fat: 18g",
			AllergenWarnings: "Contains: Gluten",
			IsActive:         true,
		},
		{
			Name:             "French Fries",
			Description:      "Golden crispy fries with sea salt",
			Price:            price("3.49"),
			Category:         "Sides",
			Theme:            "Classic",
			ImageURL:         "/images/french-fries.jpg",
			Ingredients:      "Potatoes, vegetable oil, sea salt",
			NutritionalInfo:  "Calories: 320, Protein: 4g, Carbs: 42g, Fat: 15g",
			AllergenWarnings: "",
			IsActive:         true,
		},
		{
			Name:             "Onion Rings",
			Description:      "Crispy battered onion rings",
			Price:            price("4.29"),
			Category:         "Sides",
			Theme:            "Classic",
			ImageURL:         "/images/onion-rings.jpg",
			Ingredients:      "Onions, flour, breadcrumbs, vegetable oil",
			NutritionalInfo:  "Calories: 410, Protein: 5g, Carbs: 48g, Fat: 22g",
			AllergenWarnings: "Contains: Gluten",
			IsActive:         true,
		},
		{
			Name:             "Cola",
			Description:      "Chilled classic cola",
			Price:            price("1.99"),
			Category:         "Drinks",
			Theme:            "Classic",
			ImageURL:         "/images/cola.jpg",
			Ingredients:      "Carbonated water, sugar, caramel color, caffeine",
			NutritionalInfo:  "Calories: 150, Carbs: 39g",
			AllergenWarnings: "",
			IsActive:         true,
		},
		{
			Name:             "Vanilla Shake",
			Description:      "Thick and creamy vanilla milkshake",
			Price:            price("4.99"),
			Category:         "Drinks",
			Theme:            "Classic",
			ImageURL:         "/images/vanilla-shake.jpg",
			Ingredients:      "Milk, vanilla ice cream, vanilla extract",
			NutritionalInfo:  "Calories: 550, Protein: 12g, Carbs: 76g, Fat: 22g",
			AllergenWarnings: "Contains: Dairy",
			IsActive:         true,
		},
		{
			Name:             "Chocolate Sundae",
			Description:      "Vanilla ice cream with hot fudge",
			Price:            price("3.99"),
			Category:         "Desserts",
			Theme:            "Classic",
			ImageURL:         "/images/chocolate-sundae.jpg",
			Ingredients:      "Vanilla ice cream, chocolate fudge, whipped cream",
			NutritionalInfo:  "Calories: 340, Protein: 6g, Carbs: 48g, Fat: 14g",
			AllergenWarnings: "Contains: Dairy",
			IsActive:         true,
		},
	}

	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed food items: %w", err)
	}

	byName := make(map[string]uint, len(items))
	for _, item := range items {
		byName[item.Name] = item.ID
	}

	// Combo prices stay strictly below the sum of their component prices.
	combos := []models.Combo{
		{
			Name:        "Classic Combo",
			Description: "Classic Burger with fries and a cola",
			Price:       price("12.99"), // components sum to 14.47
			ImageURL:    "/images/classic-combo.jpg",
			IsActive:    true,
			ComboItems: []models.ComboItem{
				{FoodItemID: byName["Classic Burger"], Quantity: 1},
				{FoodItemID: byName["French Fries"], Quantity: 1},
				{FoodItemID: byName["Cola"], Quantity: 1},
			},
		},
		{
			Name:        "Bacon Lover Combo",
			Description: "Bacon Burger with onion rings and a vanilla shake",
			Price:       price("18.99"), // components sum to 21.27
			ImageURL:    "/images/bacon-combo.jpg",
			IsActive:    true,
			ComboItems: []models.ComboItem{
				{FoodItemID: byName["Bacon Burger"], Quantity: 1},
				{FoodItemID: byName["Onion Rings"], Quantity: 1},
				{FoodItemID: byName["Vanilla Shake"], Quantity: 1},
			},
		},
	}

	if err := db.Create(&combos).Error; err != nil {
		return fmt.Errorf("failed to seed combos: %w", err)
	}
	return nil
}
