package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/models"
)

// memCatalogStore is an in-memory Store for service tests.
type memCatalogStore struct {
	foodItems map[uint]*models.FoodItem
	combos    map[uint]*models.Combo
	nextID    uint

	comboWrites int
}

func newMemCatalogStore() *memCatalogStore {
	return &memCatalogStore{
		foodItems: make(map[uint]*models.FoodItem),
		combos:    make(map[uint]*models.Combo),
		nextID:    1,
	}
}

func (m *memCatalogStore) ListFoodItems(_ context.Context, category string) ([]models.FoodItem, error) {
	var out []models.FoodItem
	for _, f := range m.foodItems {
		if !f.IsActive {
			continue
		}
		if category != "" && f.Category != category {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (m *memCatalogStore) GetFoodItem(_ context.Context, id uint) (*models.FoodItem, error) {
	item, ok := m.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (m *memCatalogStore) ActiveFoodItems(_ context.Context, ids []uint) ([]models.FoodItem, error) {
	var out []models.FoodItem
	for _, id := range ids {
		if item, ok := m.foodItems[id]; ok && item.IsActive {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memCatalogStore) SaveFoodItem(_ context.Context, item *models.FoodItem) error {
	if item.ID == 0 {
		item.ID = m.nextID
		m.nextID++
	}
	m.foodItems[item.ID] = item
	return nil
}

func (m *memCatalogStore) ListCombos(_ context.Context) ([]models.Combo, error) {
	var out []models.Combo
	for _, c := range m.combos {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCatalogStore) GetCombo(_ context.Context, id uint) (*models.Combo, error) {
	combo, ok := m.combos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return combo, nil
}

func (m *memCatalogStore) CreateCombo(_ context.Context, combo *models.Combo) error {
	m.comboWrites++
	combo.ID = m.nextID
	m.nextID++
	m.combos[combo.ID] = combo
	return nil
}

func (m *memCatalogStore) UpdateCombo(_ context.Context, combo *models.Combo, items []models.ComboItem) error {
	m.comboWrites++
	combo.ComboItems = items
	m.combos[combo.ID] = combo
	return nil
}

func (m *memCatalogStore) SaveCombo(_ context.Context, combo *models.Combo) error {
	m.combos[combo.ID] = combo
	return nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedStore holds a burger at 8.99 and fries at 2.49, so a one-of-each
// bundle must cost strictly less than 11.48.
func seedStore() *memCatalogStore {
	store := newMemCatalogStore()
	store.foodItems[1] = &models.FoodItem{ID: 1, Name: "Burger", Category: "Mains", Price: price("8.99"), IsActive: true}
	store.foodItems[2] = &models.FoodItem{ID: 2, Name: "Fries", Category: "Sides", Price: price("2.49"), IsActive: true}
	store.foodItems[3] = &models.FoodItem{ID: 3, Name: "Old Shake", Category: "Drinks", Price: price("4.99"), IsActive: false}
	store.nextID = 4
	return store
}

func comboInput(comboPrice string) ComboInput {
	return ComboInput{
		Name:  "Burger Meal",
		Price: price(comboPrice),
		Components: []ComboComponent{
			{FoodItemID: 1, Quantity: 1},
			{FoodItemID: 2, Quantity: 1},
		},
	}
}

func TestCreateComboPriceRule(t *testing.T) {
	tests := []struct {
		name       string
		comboPrice string
		wantErr    bool
	}{
		{"below component sum", "10.99", false},
		{"just below component sum", "11.47", false},
		{"equal to component sum", "11.48", true},
		{"above component sum", "12.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedStore()
			svc := NewService(store, zap.NewNop())

			combo, err := svc.CreateCombo(context.Background(), comboInput(tt.comboPrice))
			if tt.wantErr {
				var pe *ComboPriceError
				if !errors.As(err, &pe) {
					t.Fatalf("CreateCombo() error = %v, want ComboPriceError", err)
				}
				if got := pe.ComponentSum.StringFixed(2); got != "11.48" {
					t.Errorf("component sum = %s, want 11.48", got)
				}
				if store.comboWrites != 0 {
					t.Errorf("store saw %d combo writes on rejected input, want 0", store.comboWrites)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCombo() error = %v", err)
			}
			if len(combo.ComboItems) != 2 {
				t.Errorf("combo has %d items, want 2", len(combo.ComboItems))
			}
			if !combo.IsActive {
				t.Error("new combo is not active")
			}
		})
	}
}

func TestCreateComboComponentQuantities(t *testing.T) {
	store := seedStore()
	svc := NewService(store, zap.NewNop())

	// Two burgers and one fries sum to 20.47.
	input := ComboInput{
		Name:  "Double Burger Meal",
		Price: price("20.47"),
		Components: []ComboComponent{
			{FoodItemID: 1, Quantity: 2},
			{FoodItemID: 2, Quantity: 1},
		},
	}

	_, err := svc.CreateCombo(context.Background(), input)
	var pe *ComboPriceError
	if !errors.As(err, &pe) {
		t.Fatalf("CreateCombo() error = %v, want ComboPriceError", err)
	}
	if got := pe.ComponentSum.StringFixed(2); got != "20.47" {
		t.Errorf("component sum = %s, want 20.47", got)
	}

	input.Price = price("18.99")
	if _, err := svc.CreateCombo(context.Background(), input); err != nil {
		t.Fatalf("CreateCombo() error = %v", err)
	}
}

func TestCreateComboValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   ComboInput
		wantErr error
	}{
		{
			name:  "no components",
			input: ComboInput{Name: "Empty", Price: price("5.00")},
		},
		{
			name: "zero quantity component",
			input: ComboInput{
				Name:       "Bad",
				Price:      price("5.00"),
				Components: []ComboComponent{{FoodItemID: 1, Quantity: 0}},
			},
		},
		{
			name: "unknown component",
			input: ComboInput{
				Name:       "Ghost",
				Price:      price("5.00"),
				Components: []ComboComponent{{FoodItemID: 999, Quantity: 1}},
			},
			wantErr: ErrComponentsUnavailable,
		},
		{
			name: "inactive component",
			input: ComboInput{
				Name:       "Retired",
				Price:      price("4.00"),
				Components: []ComboComponent{{FoodItemID: 3, Quantity: 1}},
			},
			wantErr: ErrComponentsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedStore()
			svc := NewService(store, zap.NewNop())

			_, err := svc.CreateCombo(context.Background(), tt.input)
			if err == nil {
				t.Fatal("CreateCombo() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateCombo() error = %v, want %v", err, tt.wantErr)
			}
			if store.comboWrites != 0 {
				t.Errorf("store saw %d combo writes on invalid input, want 0", store.comboWrites)
			}
		})
	}
}

func TestUpdateComboReappliesPriceRule(t *testing.T) {
	store := seedStore()
	svc := NewService(store, zap.NewNop())

	combo, err := svc.CreateCombo(context.Background(), comboInput("10.99"))
	if err != nil {
		t.Fatalf("CreateCombo() error = %v", err)
	}

	// A component price drop can invalidate the existing combo price.
	store.foodItems[1].Price = price("5.00")

	_, err = svc.UpdateCombo(context.Background(), combo.ID, comboInput("10.99"))
	var pe *ComboPriceError
	if !errors.As(err, &pe) {
		t.Fatalf("UpdateCombo() error = %v, want ComboPriceError", err)
	}
	if got := pe.ComponentSum.StringFixed(2); got != "7.49" {
		t.Errorf("component sum = %s, want 7.49", got)
	}

	updated, err := svc.UpdateCombo(context.Background(), combo.ID, comboInput("6.99"))
	if err != nil {
		t.Fatalf("UpdateCombo() error = %v", err)
	}
	if got := updated.Price.StringFixed(2); got != "6.99" {
		t.Errorf("price = %s, want 6.99", got)
	}
}

func TestDeleteComboSoftDeletes(t *testing.T) {
	store := seedStore()
	svc := NewService(store, zap.NewNop())

	combo, err := svc.CreateCombo(context.Background(), comboInput("10.99"))
	if err != nil {
		t.Fatalf("CreateCombo() error = %v", err)
	}

	if err := svc.DeleteCombo(context.Background(), combo.ID); err != nil {
		t.Fatalf("DeleteCombo() error = %v", err)
	}

	// The row survives for historical references but fresh lookups miss.
	if _, ok := store.combos[combo.ID]; !ok {
		t.Error("combo row was removed from the store")
	}
	if _, err := svc.GetCombo(context.Background(), combo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCombo() after delete error = %v, want ErrNotFound", err)
	}

	combos, err := svc.ListCombos(context.Background())
	if err != nil {
		t.Fatalf("ListCombos() error = %v", err)
	}
	if len(combos) != 0 {
		t.Errorf("ListCombos() returned %d combos after delete, want 0", len(combos))
	}
}
