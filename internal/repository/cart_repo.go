package repository

import (
	"go-shop-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository methods that take a tx argument participate in an open
// transaction; passing nil runs them on the base connection.
type CartRepository interface {
	FindActive(tx *gorm.DB, userID uint) (*model.Cart, error)
	FindActiveForUpdate(tx *gorm.DB, userID uint) (*model.Cart, error)
	Create(tx *gorm.DB, cart *model.Cart) error
	MarkConverted(tx *gorm.DB, cartID uint) error
	ListItems(tx *gorm.DB, cartID uint) ([]model.CartItem, error)
	ListItemViews(cartID uint) ([]model.CartItemView, error)
	FindItem(tx *gorm.DB, cartID, productID uint) (*model.CartItem, error)
	CreateItem(tx *gorm.DB, item *model.CartItem) error
	UpdateItem(tx *gorm.DB, item *model.CartItem) error
	DeleteItem(cartID, productID uint) (int64, error)
	DeleteItems(tx *gorm.DB, cartID uint) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

func (r *cartRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cartRepo) FindActive(tx *gorm.DB, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.conn(tx).First(&cart, "user_id = ? AND status = ?", userID, model.CartActive).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindActiveForUpdate locks the cart row for the remainder of the
// transaction so concurrent checkouts serialize on it.
func (r *cartRepo) FindActiveForUpdate(tx *gorm.DB, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.conn(tx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "user_id = ? AND status = ?", userID, model.CartActive).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) Create(tx *gorm.DB, cart *model.Cart) error {
	return r.conn(tx).Create(cart).Error
}

func (r *cartRepo) MarkConverted(tx *gorm.DB, cartID uint) error {
	return r.conn(tx).Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("status", model.CartConverted).Error
}

func (r *cartRepo) ListItems(tx *gorm.DB, cartID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.conn(tx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error
	return items, err
}

// ListItemViews joins cart lines with live product names for display.
// The unit price stays the stored snapshot, never the live catalog price.
func (r *cartRepo) ListItemViews(cartID uint) ([]model.CartItemView, error) {
	var views []model.CartItemView
	err := r.db.Model(&model.CartItem{}).
		Select("cart_items.product_id, COALESCE(products.name, '') AS name, cart_items.quantity, cart_items.unit_price, cart_items.quantity * cart_items.unit_price AS line_total").
		Joins("LEFT JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id ASC").
		Scan(&views).Error
	return views, err
}

func (r *cartRepo) FindItem(tx *gorm.DB, cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.conn(tx).First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) CreateItem(tx *gorm.DB, item *model.CartItem) error {
	return r.conn(tx).Create(item).Error
}

func (r *cartRepo) UpdateItem(tx *gorm.DB, item *model.CartItem) error {
	return r.conn(tx).Save(item).Error
}

func (r *cartRepo) DeleteItem(cartID, productID uint) (int64, error) {
	res := r.db.Delete(&model.CartItem{}, "cart_id = ? AND product_id = ?", cartID, productID)
	return res.RowsAffected, res.Error
}

func (r *cartRepo) DeleteItems(tx *gorm.DB, cartID uint) error {
	return r.conn(tx).Delete(&model.CartItem{}, "cart_id = ?", cartID).Error
}
