package model

type CartStatus string

const (
	CartActive    CartStatus = "active"
	CartConverted CartStatus = "converted"
)

// Cart is the single in-progress basket for a user. At most one cart per
// user may hold the "active" status; a converted cart is never reused.
type Cart struct {
	BaseModel
	UserID uint       `gorm:"not null;index:idx_carts_user_status" json:"user_id"`
	Status CartStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_carts_user_status" json:"status"`

	Items []CartItem `json:"items,omitempty"`
}

// CartItem holds a quantity plus a price snapshot taken when the line was
// added or last updated. UnitPrice is intentionally NOT live-linked to
// Product.Price: cart totals reflect price as of last modification.
type CartItem struct {
	BaseModel
	CartID    uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity" validate:"required,gte=1"`
	UnitPrice float64 `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

// CartItemView is a cart line joined with the live product name for display.
type CartItemView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// CartView is the API shape for GET /cart responses.
type CartView struct {
	Cart  CartSummary    `json:"cart"`
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
}

type CartSummary struct {
	ID     uint       `json:"id"`
	Status CartStatus `json:"status"`
}
