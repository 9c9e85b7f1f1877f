package service

import (
	"errors"
	"log"
	"math"

	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
	"go-shop-api/internal/ws"

	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(userID uint) (*model.Order, error)
	ListForUser(userID uint) ([]model.Order, error)
	GetForUser(orderID, userID uint) (*model.Order, []model.OrderItemView, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	eventRepo repository.EventRepository
	tx        TxManager
	wsHub     *ws.Hub
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, eventRepo repository.EventRepository, tx TxManager, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		eventRepo: eventRepo,
		tx:        tx,
		wsHub:     hub,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// buildOrderLines snapshots cart lines into order lines and computes the
// order total from the stored unit prices.
func buildOrderLines(items []model.CartItem) (float64, []model.OrderItem) {
	var total float64
	lines := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		subtotal := roundCents(float64(it.Quantity) * it.UnitPrice)
		total += subtotal
		lines = append(lines, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  subtotal,
		})
	}
	return roundCents(total), lines
}

// Checkout atomically converts the user's active cart into a pending order:
// compute the total, create the order, snapshot every cart line into an
// order line, mark the cart converted and clear its items. All five steps
// commit together or not at all. The cart row is locked FOR UPDATE so a
// concurrent double-submission serializes and the loser fails cleanly.
func (s *orderService) Checkout(userID uint) (*model.Order, error) {
	var order *model.Order

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.FindActiveForUpdate(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.InvalidState, "No active cart")
			}
			return err
		}

		items, err := s.cartRepo.ListItems(tx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.New(apperr.InvalidState, "Cart is empty")
		}

		total, lines := buildOrderLines(items)

		order = &model.Order{
			UserID:      userID,
			Status:      model.OrderPending,
			Currency:    "USD",
			TotalAmount: total,
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := s.orderRepo.CreateItems(tx, lines); err != nil {
			return err
		}

		if err := s.cartRepo.MarkConverted(tx, cart.ID); err != nil {
			return err
		}
		return s.cartRepo.DeleteItems(tx, cart.ID)
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.Internal {
			return nil, err
		}
		return nil, apperr.Wrap(err, apperr.Internal, "checkout failed")
	}

	s.afterCheckout(order)
	return order, nil
}

// afterCheckout runs post-commit side effects. Both are fire-and-forget:
// a failure here must never surface to the buyer.
func (s *orderService) afterCheckout(order *model.Order) {
	if s.wsHub != nil {
		s.wsHub.Publish(map[string]interface{}{
			"type": "order_created",
			"order": map[string]interface{}{
				"id":           order.ID,
				"user_id":      order.UserID,
				"total_amount": order.TotalAmount,
				"currency":     order.Currency,
			},
		})
	}

	go func() {
		views, err := s.orderRepo.ListItemViews(order.ID)
		if err != nil {
			log.Printf("purchase event lookup failed for order %d: %v", order.ID, err)
			return
		}
		userID := order.UserID
		for _, v := range views {
			ev := &model.UserEvent{
				UserID:    &userID,
				ProductID: v.ProductID,
				Event:     model.EventPurchase,
				Weight:    model.EventWeights[model.EventPurchase],
			}
			if err := s.eventRepo.Create(ev); err != nil {
				log.Printf("purchase event write failed for order %d: %v", order.ID, err)
			}
		}
	}()
}

func (s *orderService) ListForUser(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUser(userID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to load orders")
	}
	return orders, nil
}

func (s *orderService) GetForUser(orderID, userID uint) (*model.Order, []model.OrderItemView, error) {
	order, err := s.orderRepo.FindByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.NotFound, "Order not found")
		}
		return nil, nil, apperr.Wrap(err, apperr.Internal, "failed to load order")
	}

	items, err := s.orderRepo.ListItemViews(orderID)
	if err != nil {
		return nil, nil, apperr.Wrap(err, apperr.Internal, "failed to load order")
	}
	return order, items, nil
}
