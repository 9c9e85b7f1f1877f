package repository

import (
	"go-shop-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	CreateItems(tx *gorm.DB, items []model.OrderItem) error
	FindByUser(userID uint) ([]model.Order, error)
	FindByIDForUser(id, userID uint) (*model.Order, error)
	ListItemViews(orderID uint) ([]model.OrderItemView, error)
	UpdateStatus(id uint, status model.OrderStatus) (int64, error)
	ListWithUserEmail() ([]model.AdminOrderRow, error)
	Count() (int64, error)
	Revenue() (float64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return r.conn(tx).Create(order).Error
}

func (r *orderRepo) CreateItems(tx *gorm.DB, items []model.OrderItem) error {
	return r.conn(tx).Create(&items).Error
}

func (r *orderRepo) FindByUser(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByIDForUser(id, userID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListItemViews left-joins product names; a line whose product was deleted
// keeps its snapshot and comes back with an empty name.
func (r *orderRepo) ListItemViews(orderID uint) ([]model.OrderItemView, error) {
	var views []model.OrderItemView
	err := r.db.Model(&model.OrderItem{}).
		Select("order_items.product_id, COALESCE(products.name, '') AS name, order_items.quantity, order_items.unit_price, order_items.subtotal").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&views).Error
	return views, err
}

func (r *orderRepo) UpdateStatus(id uint, status model.OrderStatus) (int64, error) {
	res := r.db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *orderRepo) ListWithUserEmail() ([]model.AdminOrderRow, error) {
	var rows []model.AdminOrderRow
	err := r.db.Model(&model.Order{}).
		Select("orders.id, orders.status, orders.total_amount, orders.created_at, users.email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Order{}).Count(&n).Error
	return n, err
}

// Revenue sums totals over orders that have actually been paid for.
func (r *orderRepo) Revenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.Order{}).
		Where("status IN ?", []model.OrderStatus{model.OrderPaid, model.OrderShipped, model.OrderCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
