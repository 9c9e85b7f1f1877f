package handler

import (
	"strings"

	"go-shop-api/internal/model"
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

// StatusRequest represents the order status change body
type StatusRequest struct {
	Status string `json:"status"`
}

// Metrics returns back-office overview counts and revenue
// GET /api/v1/admin/metrics
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(metrics)
}

// Orders lists all orders with owner emails
// GET /api/v1/admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// UpdateOrderStatus overwrites an order's status
// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	status := model.OrderStatus(strings.ToLower(req.Status))
	if err := h.service.UpdateOrderStatus(id, status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Users lists the newest registered users
// GET /api/v1/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}
