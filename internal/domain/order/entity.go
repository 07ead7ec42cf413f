// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an archived order
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"uniqueIndex;not null;size:50" json:"orderNumber"`
	SessionID     string      `gorm:"index;size:64" json:"-"`
	OrderDate     time.Time   `gorm:"not null;index" json:"orderDate"`
	TotalAmount   float64     `gorm:"not null" json:"totalAmount"`
	Status        OrderStatus `gorm:"not null;default:'pending';size:20" json:"orderStatus"`
	PaymentMethod string      `gorm:"size:50" json:"paymentMethod"`
	Email         string      `gorm:"size:255" json:"email"`
	Phone         string      `gorm:"size:50" json:"phone"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"orderItems"`
}

// OrderItem represents items in an order
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID string    `gorm:"not null;index;size:100" json:"productId"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}
