package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/models"
	"github.com/example/fastbite/pkg/ordering"
)

// OrderStore is the MySQL-backed implementation of ordering.Store.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) OrderNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order number: %w", err)
	}
	return count > 0, nil
}

func (s *OrderStore) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("invoice_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check invoice number: %w", err)
	}
	return count > 0, nil
}

// CreateOrder writes the order, its items and the invoice in a single
// transaction, so a failure can never leave an order without its invoice.
// Uniqueness-constraint violations on either number are reported as
// ordering.ErrDuplicateNumber so the workflow can retry with fresh ones.
func (s *OrderStore) CreateOrder(ctx context.Context, order *models.Order, invoice *models.Invoice) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		invoice.OrderID = order.ID
		return tx.Create(invoice).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ordering.ErrDuplicateNumber
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *OrderStore) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems.FoodItem").
		Preload("OrderItems.Combo").
		Preload("Invoice").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordering.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *OrderStore) Orders(ctx context.Context, userID uint, status string) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("OrderItems.FoodItem").
		Preload("OrderItems.Combo")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) SaveOrderStatus(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).
		Model(order).
		Updates(map[string]interface{}{
			"status":            order.Status,
			"status_updated_at": order.StatusUpdatedAt,
		}).Error
}

func (s *OrderStore) Invoices(ctx context.Context, userID uint, from, to *time.Time) ([]models.Invoice, error) {
	query := s.db.WithContext(ctx).
		Preload("Order.OrderItems.FoodItem").
		Preload("Order.OrderItems.Combo")
	if userID != 0 {
		query = query.
			Joins("JOIN orders ON orders.id = invoices.order_id").
			Where("orders.user_id = ?", userID)
	}
	if from != nil {
		query = query.Where("invoice_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("invoice_date <= ?", *to)
	}

	var invoices []models.Invoice
	if err := query.Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *OrderStore) InvoiceByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Order.OrderItems.FoodItem").
		Preload("Order.OrderItems.Combo").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordering.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}
