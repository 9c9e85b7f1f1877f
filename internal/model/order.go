package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is created exactly once per checkout. TotalAmount is computed from
// the cart's price snapshots at checkout time and never recomputed from the
// live catalog afterward.
type Order struct {
	BaseModel
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Currency    string      `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	TotalAmount float64     `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is an immutable snapshot copied from a CartItem at checkout.
type OrderItem struct {
	BaseModel
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal  float64 `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

// OrderItemView is an order line joined with the live product name.
// Name is empty when the product was deleted after the order was placed.
type OrderItemView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// AdminOrderRow is an order joined with the owner's email for back-office lists.
type AdminOrderRow struct {
	ID          uint        `json:"id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	Email       string      `json:"email"`
}
