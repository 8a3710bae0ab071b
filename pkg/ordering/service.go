package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/models"
)

// The full transaction is retried with fresh numbers when the database
// rejects a candidate on its uniqueness constraint.
const maxCreateAttempts = 3

// Store persists orders and invoices. CreateOrder must write the order,
// its items and the invoice in a single transaction and return
// ErrDuplicateNumber when a number uniqueness constraint fires.
type Store interface {
	OrderNumberExists(ctx context.Context, number string) (bool, error)
	InvoiceNumberExists(ctx context.Context, number string) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order, invoice *models.Invoice) error
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	Orders(ctx context.Context, userID uint, status string) ([]models.Order, error)
	SaveOrderStatus(ctx context.Context, order *models.Order) error
	Invoices(ctx context.Context, userID uint, from, to *time.Time) ([]models.Invoice, error)
	InvoiceByID(ctx context.Context, id uint) (*models.Invoice, error)
}

// CreateOrderInput is a cart as it arrives from the transport layer,
// before validation and pricing.
type CreateOrderInput struct {
	UserID          uint
	Items           []LineItem
	DeliveryAddress string
	PaymentMethod   string
}

type Service struct {
	store          Store
	catalog        Catalog
	orderNumbers   *NumberGenerator
	invoiceNumbers *NumberGenerator
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(store Store, catalog Catalog, orderNumbers, invoiceNumbers *NumberGenerator, logger *zap.Logger) *Service {
	return &Service{
		store:          store,
		catalog:        catalog,
		orderNumbers:   orderNumbers,
		invoiceNumbers: invoiceNumbers,
		logger:         logger,
		now:            time.Now,
	}
}

// Create validates and prices the cart, generates order and invoice
// numbers, and persists order, items and invoice atomically. Any
// validation or reference failure aborts before a write is attempted.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.DeliveryAddress == "" {
		return nil, &ValidationError{Field: "delivery_address", Message: "delivery address is required"}
	}
	if input.PaymentMethod == "" {
		return nil, &ValidationError{Field: "payment_method", Message: "payment method is required"}
	}

	items, total, err := PriceItems(ctx, s.catalog, input.Items)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	for attempt := 1; ; attempt++ {
		// A rolled-back attempt may have left primary keys assigned on
		// the items; they must go in fresh.
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = 0
		}

		orderNumber, err := s.orderNumbers.Next(ctx, s.store.OrderNumberExists)
		if err != nil {
			return nil, err
		}
		invoiceNumber, err := s.invoiceNumbers.Next(ctx, s.store.InvoiceNumberExists)
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		order = &models.Order{
			OrderNumber:     orderNumber,
			UserID:          input.UserID,
			TotalAmount:     total,
			Status:          models.StatusNotDelivered,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   "Completed",
			DeliveryAddress: input.DeliveryAddress,
			OrderDate:       now,
			OrderItems:      items,
		}
		invoice := &models.Invoice{
			InvoiceNumber: invoiceNumber,
			InvoiceDate:   now,
			TotalAmount:   total,
		}

		err = s.store.CreateOrder(ctx, order, invoice)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateNumber) && attempt < maxCreateAttempts {
			s.logger.Warn("Order number collided at commit, retrying",
				zap.String("order_number", orderNumber),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))

	// Reload with catalog associations for the response.
	return s.store.OrderByID(ctx, order.ID)
}

// Get returns an order with its items and invoice. Ownership checks are
// the caller's responsibility.
func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.store.OrderByID(ctx, id)
}

// List returns orders newest first, optionally filtered by status.
// A zero userID returns all users' orders.
func (s *Service) List(ctx context.Context, userID uint, status string) ([]models.Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Message: "invalid status filter"}
	}
	return s.store.Orders(ctx, userID, status)
}

// UpdateStatus advances an order's delivery status. Backward transitions
// are rejected; skipping an intermediate status is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !ValidStatus(status) {
		return nil, &ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: NotDelivered, BeingDelivered, Delivered",
		}
	}

	order, err := s.store.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot change status from %s to %s", order.Status, status),
		}
	}

	now := s.now().UTC()
	order.Status = status
	order.StatusUpdatedAt = &now

	if err := s.store.SaveOrderStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", status))

	return order, nil
}

// Invoices returns a user's invoices newest first, optionally bounded by
// issue date.
func (s *Service) Invoices(ctx context.Context, userID uint, from, to *time.Time) ([]models.Invoice, error) {
	return s.store.Invoices(ctx, userID, from, to)
}

func (s *Service) InvoiceByID(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.store.InvoiceByID(ctx, id)
}
