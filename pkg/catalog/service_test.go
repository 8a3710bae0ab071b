package catalog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestCreateFoodItemValidation(t *testing.T) {
	tests := []struct {
		name  string
		input FoodItemInput
		field string
	}{
		{
			name:  "missing name",
			input: FoodItemInput{Category: "Mains", Price: price("8.99")},
			field: "name",
		},
		{
			name:  "missing category",
			input: FoodItemInput{Name: "Burger", Price: price("8.99")},
			field: "category",
		},
		{
			name:  "zero price",
			input: FoodItemInput{Name: "Burger", Category: "Mains", Price: price("0")},
			field: "price",
		},
		{
			name:  "negative price",
			input: FoodItemInput{Name: "Burger", Category: "Mains", Price: price("-1.00")},
			field: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemCatalogStore(), zap.NewNop())

			_, err := svc.CreateFoodItem(context.Background(), tt.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("CreateFoodItem() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestFoodItemLifecycle(t *testing.T) {
	store := newMemCatalogStore()
	svc := NewService(store, zap.NewNop())

	item, err := svc.CreateFoodItem(context.Background(), FoodItemInput{
		Name:     "Burger",
		Category: "Mains",
		Price:    price("8.99"),
	})
	if err != nil {
		t.Fatalf("CreateFoodItem() error = %v", err)
	}
	if !item.IsActive {
		t.Error("new food item is not active")
	}

	updated, err := svc.UpdateFoodItem(context.Background(), item.ID, FoodItemInput{
		Name:     "Double Burger",
		Category: "Mains",
		Price:    price("11.99"),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("UpdateFoodItem() error = %v", err)
	}
	if updated.Name != "Double Burger" || updated.Price.StringFixed(2) != "11.99" {
		t.Errorf("update not applied: name=%q price=%s", updated.Name, updated.Price)
	}

	if err := svc.DeleteFoodItem(context.Background(), item.ID); err != nil {
		t.Fatalf("DeleteFoodItem() error = %v", err)
	}

	// The row survives but fresh lookups treat it as missing.
	if _, ok := store.foodItems[item.ID]; !ok {
		t.Error("food item row was removed from the store")
	}
	if _, err := svc.GetFoodItem(context.Background(), item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFoodItem() after delete error = %v, want ErrNotFound", err)
	}

	items, err := svc.ListFoodItems(context.Background(), "")
	if err != nil {
		t.Fatalf("ListFoodItems() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ListFoodItems() returned %d items after delete, want 0", len(items))
	}
}
