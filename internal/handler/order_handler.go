package handler

import (
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// List returns the authenticated user's orders, newest first
// GET /api/v1/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.ListForUser(getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// Get returns one order with its item snapshots
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	order, items, err := h.service.GetForUser(id, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}

// Checkout converts the active cart into a pending order
// POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.service.Checkout(getUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"order": fiber.Map{
		"id":           order.ID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
		"currency":     order.Currency,
		"created_at":   order.CreatedAt,
	}})
}
