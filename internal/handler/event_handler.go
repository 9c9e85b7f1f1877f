package handler

import (
	"strings"

	"go-shop-api/internal/model"
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(s service.EventService) *EventHandler {
	return &EventHandler{service: s}
}

// EventRequest represents the interaction logging request body
type EventRequest struct {
	Event     string `json:"event"`
	ProductID uint   `json:"product_id"`
	SessionID string `json:"session_id"`
}

// PurchaseItem is one entry of a purchase batch
type PurchaseItem struct {
	ProductID uint `json:"product_id"`
}

// PurchaseBatchRequest logs purchase events for a set of products
type PurchaseBatchRequest struct {
	Items     []PurchaseItem `json:"items"`
	SessionID string         `json:"session_id"`
}

// Record appends one weighted interaction row. Auth is optional: the user
// id is attached when a valid token accompanies the request.
// POST /api/v1/events
func (h *EventHandler) Record(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	kind := model.EventKind(strings.ToLower(req.Event))
	if err := h.service.Record(kind, req.ProductID, req.SessionID, optionalUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"ok": true})
}

// RecordPurchase logs purchase events for a set of items (authenticated)
// POST /api/v1/events/purchase
func (h *EventHandler) RecordPurchase(c *fiber.Ctx) error {
	var req PurchaseBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}

	if err := h.service.RecordPurchaseBatch(getUserID(c), ids, req.SessionID); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"ok": true})
}
