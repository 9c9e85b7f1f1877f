package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Get reports service and database health
// GET /api/health
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	dbStatus := "connected"
	status := "ok"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "disconnected"
		status = "error"
	}

	return c.JSON(fiber.Map{
		"status":  status,
		"service": "go-shop-api",
		"db":      dbStatus,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
