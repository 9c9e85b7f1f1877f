package handler

import (
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// UpsertItemRequest represents the add-to-cart request body
type UpsertItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// QuantityRequest represents the quantity change request body
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get returns (lazily creating) the user's active cart with items
// GET /api/v1/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.GetCart(getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// AddItem adds or overwrites a cart line with a fresh price snapshot
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req UpsertItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "product_id must be >= 1"})
	}

	view, err := h.service.UpsertItem(getUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(view)
}

// UpdateItem changes a line's quantity
// PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	productID, err := parseID(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}

	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateItemQuantity(getUserID(c), productID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// RemoveItem deletes a line from the cart
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := parseID(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.RemoveItem(getUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
