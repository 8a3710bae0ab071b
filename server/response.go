package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/catalog"
	"github.com/example/fastbite/pkg/models"
	"github.com/example/fastbite/pkg/ordering"
)

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type ProfileResponse struct {
	UserID      uint       `json:"user_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UserResponse struct {
	UserID      uint       `json:"user_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ComboItemResponse struct {
	FoodItemID    uint            `json:"food_item_id"`
	FoodItemName  string          `json:"food_item_name"`
	FoodItemPrice decimal.Decimal `json:"food_item_price"`
	Quantity      int             `json:"quantity"`
}

type ComboResponse struct {
	ComboID     uint                `json:"combo_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	ImageURL    string              `json:"image_url"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	ComboItems  []ComboItemResponse `json:"combo_items"`
}

type OrderItemResponse struct {
	OrderItemID uint            `json:"order_item_id"`
	FoodItemID  *uint           `json:"food_item_id,omitempty"`
	ComboID     *uint           `json:"combo_id,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	OrderID         uint                `json:"order_id"`
	OrderNumber     string              `json:"order_number"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address"`
	OrderDate       time.Time           `json:"order_date"`
	StatusUpdatedAt *time.Time          `json:"status_updated_at,omitempty"`
	Items           []OrderItemResponse `json:"items"`
}

type InvoiceResponse struct {
	InvoiceID      uint            `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Order          *OrderResponse  `json:"order,omitempty"`
}

func mapProfile(user *models.User) ProfileResponse {
	return ProfileResponse{
		UserID:      user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		DateOfBirth: user.DateOfBirth,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

func mapUser(user *models.User) UserResponse {
	return UserResponse{
		UserID:      user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		DateOfBirth: user.DateOfBirth,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func mapCombo(combo *models.Combo) ComboResponse {
	resp := ComboResponse{
		ComboID:     combo.ID,
		Name:        combo.Name,
		Description: combo.Description,
		Price:       combo.Price,
		ImageURL:    combo.ImageURL,
		IsActive:    combo.IsActive,
		CreatedAt:   combo.CreatedAt,
		UpdatedAt:   combo.UpdatedAt,
		ComboItems:  make([]ComboItemResponse, 0, len(combo.ComboItems)),
	}
	for _, ci := range combo.ComboItems {
		resp.ComboItems = append(resp.ComboItems, ComboItemResponse{
			FoodItemID:    ci.FoodItemID,
			FoodItemName:  ci.FoodItem.Name,
			FoodItemPrice: ci.FoodItem.Price,
			Quantity:      ci.Quantity,
		})
	}
	return resp
}

func mapOrder(order *models.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		DeliveryAddress: order.DeliveryAddress,
		OrderDate:       order.OrderDate,
		StatusUpdatedAt: order.StatusUpdatedAt,
		Items:           make([]OrderItemResponse, 0, len(order.OrderItems)),
	}
	for _, oi := range order.OrderItems {
		item := OrderItemResponse{
			OrderItemID: oi.ID,
			FoodItemID:  oi.FoodItemID,
			ComboID:     oi.ComboID,
			Quantity:    oi.Quantity,
			UnitPrice:   oi.UnitPrice,
			Subtotal:    oi.Subtotal,
		}
		if oi.FoodItem != nil {
			item.Name = oi.FoodItem.Name
		} else if oi.Combo != nil {
			item.Name = oi.Combo.Name
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func mapInvoice(invoice *models.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:      invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		InvoiceDate:    invoice.InvoiceDate,
		TotalAmount:    invoice.TotalAmount,
		TaxAmount:      invoice.TaxAmount,
		DiscountAmount: invoice.DiscountAmount,
	}
	if invoice.Order != nil {
		order := mapOrder(invoice.Order)
		resp.Order = &order
	}
	return resp
}

// respondError maps domain errors onto HTTP responses. Validation,
// reference and business-rule failures carry user-facing detail; anything
// else is logged and reduced to a generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	var orderingValidation *ordering.ValidationError
	var catalogValidation *catalog.ValidationError
	var notFoundRef *ordering.NotFoundError
	var comboPrice *catalog.ComboPriceError

	switch {
	case errors.As(err, &orderingValidation),
		errors.As(err, &catalogValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &notFoundRef):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &comboPrice):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":            "combo price must be less than the sum of individual item prices",
			"combo_price":        comboPrice.ComboPrice,
			"sum_of_item_prices": comboPrice.ComponentSum,
		})
	case errors.Is(err, catalog.ErrComponentsUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, ordering.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		s.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "an internal error occurred"})
	}
}
