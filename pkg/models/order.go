package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusNotDelivered   = "NotDelivered"
	StatusBeingDelivered = "BeingDelivered"
	StatusDelivered      = "Delivered"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'NotDelivered'" json:"status"`
	PaymentMethod   string          `gorm:"type:varchar(30)" json:"payment_method"`
	PaymentStatus   string          `gorm:"type:varchar(20)" json:"payment_status"`
	DeliveryAddress string          `gorm:"type:varchar(255)" json:"delivery_address"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	StatusUpdatedAt *time.Time      `json:"status_updated_at"`

	User       User        `gorm:"foreignKey:UserID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Invoice    *Invoice    `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a priced line within an order. Exactly one of FoodItemID
// and ComboID is set. UnitPrice is the catalog price at order time and
// never changes afterwards.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	FoodItemID *uint           `json:"food_item_id"`
	ComboID    *uint           `json:"combo_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`

	FoodItem *FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	Combo    *Combo    `gorm:"foreignKey:ComboID" json:"combo,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Invoice struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderID        uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	InvoiceNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate    time.Time       `gorm:"not null" json:"invoice_date"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (Invoice) TableName() string {
	return "invoices"
}
