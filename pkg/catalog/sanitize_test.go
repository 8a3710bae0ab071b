package catalog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Classic Burger", "Classic Burger"},
		{"simple tags", "<b>Classic</b> Burger", "Classic Burger"},
		{"script block", "Burger<script>alert(1)</script>", "Burgeralert(1)"},
		{"attributes", `<img src="x" onerror="alert(1)">Fries`, "Fries"},
		{"unclosed tag", "Burger <i>deluxe", "Burger"},
		{"surrounding whitespace", "  Burger  ", "Burger"},
		{"only tags", "<div></div>", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripTags(tt.in); got != tt.want {
				t.Errorf("stripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCreateFoodItemStripsMarkup(t *testing.T) {
	store := seedStore()
	svc := NewService(store, zap.NewNop())

	item, err := svc.CreateFoodItem(context.Background(), FoodItemInput{
		Name:        "<b>Spicy</b> Burger",
		Description: "Our hottest <script>alert(1)</script>yet",
		Category:    "Burgers",
		Price:       price("9.99"),
	})
	if err != nil {
		t.Fatalf("CreateFoodItem() error = %v", err)
	}
	if item.Name != "Spicy Burger" {
		t.Errorf("name = %q, want %q", item.Name, "Spicy Burger")
	}
	if item.Description != "Our hottest alert(1)yet" {
		t.Errorf("description = %q, want markup stripped", item.Description)
	}

	// A name that is nothing but markup strips to empty and fails the
	// required-name check.
	_, err = svc.CreateFoodItem(context.Background(), FoodItemInput{
		Name:     "<div></div>",
		Category: "Burgers",
		Price:    price("9.99"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Errorf("CreateFoodItem() error = %v, want ValidationError on name", err)
	}
}

func TestCreateComboStripsMarkup(t *testing.T) {
	store := seedStore()
	svc := NewService(store, zap.NewNop())

	input := comboInput("10.99")
	input.Name = "<em>Burger</em> Meal"

	combo, err := svc.CreateCombo(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateCombo() error = %v", err)
	}
	if combo.Name != "Burger Meal" {
		t.Errorf("name = %q, want %q", combo.Name, "Burger Meal")
	}
}
