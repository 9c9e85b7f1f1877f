package service

import (
	"errors"

	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	GetCart(userID uint) (*model.CartView, error)
	UpsertItem(userID, productID uint, quantity int) (*model.CartView, error)
	UpdateItemQuantity(userID, productID uint, quantity int) error
	RemoveItem(userID, productID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	tx          TxManager
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, tx TxManager) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		tx:          tx,
	}
}

// ensureActiveCart finds the user's active cart or lazily creates one.
// Runs inside the caller's transaction so the one-active-cart rule holds
// under concurrent first access (backed by the partial unique index).
func (s *cartService) ensureActiveCart(tx *gorm.DB, userID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindActive(tx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &model.Cart{UserID: userID, Status: model.CartActive}
	if err := s.cartRepo.Create(tx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCart(userID uint) (*model.CartView, error) {
	var cart *model.Cart
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.ensureActiveCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to load cart")
	}

	return s.buildView(cart)
}

// UpsertItem adds a product to the active cart or overwrites an existing
// line's quantity, snapshotting the product's current price either way.
// The snapshot is deliberate policy: the line keeps this price even if the
// catalog price changes later, until the line is explicitly modified again.
func (s *cartService) UpsertItem(userID, productID uint, quantity int) (*model.CartView, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be >= 1")
	}

	var cart *model.Cart
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.ensureActiveCart(tx, userID)
		if err != nil {
			return err
		}

		product, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Product not found")
			}
			return err
		}

		item, err := s.cartRepo.FindItem(tx, cart.ID, productID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return s.cartRepo.CreateItem(tx, &model.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
			})
		}

		item.Quantity = quantity
		item.UnitPrice = product.Price
		return s.cartRepo.UpdateItem(tx, item)
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.Internal {
			return nil, err
		}
		return nil, apperr.Wrap(err, apperr.Internal, "failed to add item")
	}

	return s.buildView(cart)
}

// UpdateItemQuantity changes a line's quantity and re-snapshots the price.
func (s *cartService) UpdateItemQuantity(userID, productID uint, quantity int) error {
	if quantity < 1 {
		return apperr.New(apperr.Validation, "quantity must be >= 1")
	}

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.FindActive(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "No active cart")
			}
			return err
		}

		product, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Product not found")
			}
			return err
		}

		item, err := s.cartRepo.FindItem(tx, cart.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Item not in cart")
			}
			return err
		}

		item.Quantity = quantity
		item.UnitPrice = product.Price
		return s.cartRepo.UpdateItem(tx, item)
	})
	if err != nil && apperr.KindOf(err) == apperr.Internal {
		return apperr.Wrap(err, apperr.Internal, "failed to update item")
	}
	return err
}

func (s *cartService) RemoveItem(userID, productID uint) error {
	cart, err := s.cartRepo.FindActive(nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "No active cart")
		}
		return apperr.Wrap(err, apperr.Internal, "failed to remove item")
	}

	rows, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return apperr.Wrap(err, apperr.Internal, "failed to remove item")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "Item not in cart")
	}
	return nil
}

// buildView assembles the cart response. The total is derived from the
// stored snapshots, never from live catalog prices.
func (s *cartService) buildView(cart *model.Cart) (*model.CartView, error) {
	items, err := s.cartRepo.ListItemViews(cart.ID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to load cart")
	}

	var total float64
	for _, it := range items {
		total += it.LineTotal
	}

	return &model.CartView{
		Cart:  model.CartSummary{ID: cart.ID, Status: cart.Status},
		Items: items,
		Total: roundCents(total),
	}, nil
}
