package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/fastbite/pkg/models"
)

type stubCatalog struct {
	foodItems map[uint]*models.FoodItem
	combos    map[uint]*models.Combo
}

func (s *stubCatalog) ActiveFoodItem(_ context.Context, id uint) (*models.FoodItem, error) {
	item, ok := s.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *stubCatalog) ActiveCombo(_ context.Context, id uint) (*models.Combo, error) {
	combo, ok := s.combos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return combo, nil
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		foodItems: map[uint]*models.FoodItem{
			1: {ID: 1, Name: "Burger", Price: decimal.RequireFromString("8.99")},
			2: {ID: 2, Name: "Fries", Price: decimal.RequireFromString("3.49")},
		},
		combos: map[uint]*models.Combo{
			10: {ID: 10, Name: "Burger Combo", Price: decimal.RequireFromString("10.99")},
		},
	}
}

func uintPtr(v uint) *uint { return &v }

func TestPriceItems(t *testing.T) {
	tests := []struct {
		name      string
		items     []LineItem
		wantTotal string
		wantErr   bool
	}{
		{
			name: "food item and combo",
			items: []LineItem{
				{FoodItemID: uintPtr(1), Quantity: 2},
				{ComboID: uintPtr(10), Quantity: 1},
			},
			wantTotal: "28.97",
		},
		{
			name: "duplicate references priced independently",
			items: []LineItem{
				{FoodItemID: uintPtr(2), Quantity: 1},
				{FoodItemID: uintPtr(2), Quantity: 2},
			},
			wantTotal: "10.47",
		},
		{
			name:    "empty cart",
			items:   nil,
			wantErr: true,
		},
		{
			name:    "zero quantity",
			items:   []LineItem{{FoodItemID: uintPtr(1), Quantity: 0}},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			items:   []LineItem{{FoodItemID: uintPtr(1), Quantity: -1}},
			wantErr: true,
		},
		{
			name:    "both references set",
			items:   []LineItem{{FoodItemID: uintPtr(1), ComboID: uintPtr(10), Quantity: 1}},
			wantErr: true,
		},
		{
			name:    "no reference set",
			items:   []LineItem{{Quantity: 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			priced, total, err := PriceItems(context.Background(), testCatalog(), tt.items)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PriceItems() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := total.StringFixed(2); got != tt.wantTotal {
				t.Errorf("PriceItems() total = %s, want %s", got, tt.wantTotal)
			}
			if len(priced) != len(tt.items) {
				t.Errorf("PriceItems() returned %d items, want %d", len(priced), len(tt.items))
			}
		})
	}
}

func TestPriceItemsSnapshotsUnitPrice(t *testing.T) {
	catalog := testCatalog()
	items := []LineItem{{FoodItemID: uintPtr(1), Quantity: 3}}

	priced, total, err := PriceItems(context.Background(), catalog, items)
	if err != nil {
		t.Fatalf("PriceItems() error = %v", err)
	}

	if got := priced[0].UnitPrice.StringFixed(2); got != "8.99" {
		t.Errorf("unit price = %s, want 8.99", got)
	}
	if got := priced[0].Subtotal.StringFixed(2); got != "26.97" {
		t.Errorf("subtotal = %s, want 26.97", got)
	}
	if got := total.StringFixed(2); got != "26.97" {
		t.Errorf("total = %s, want 26.97", got)
	}

	// A later catalog price change must not affect the priced snapshot.
	catalog.foodItems[1].Price = decimal.RequireFromString("99.99")
	if got := priced[0].UnitPrice.StringFixed(2); got != "8.99" {
		t.Errorf("unit price after catalog change = %s, want 8.99", got)
	}
}

func TestPriceItemsUnknownReference(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
	}{
		{"unknown food item", []LineItem{{FoodItemID: uintPtr(999), Quantity: 1}}},
		{"unknown combo", []LineItem{{ComboID: uintPtr(999), Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := PriceItems(context.Background(), testCatalog(), tt.items)
			if err == nil {
				t.Fatal("PriceItems() expected error, got nil")
			}
			var nfe *NotFoundError
			if !errors.As(err, &nfe) {
				t.Errorf("PriceItems() error = %v, want NotFoundError", err)
			}
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("PriceItems() error does not unwrap to ErrNotFound")
			}
		})
	}
}
