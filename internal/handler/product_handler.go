package handler

import (
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// List returns the paginated catalog
// GET /api/v1/products?search=&category=&page=&page_size=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(repository.ProductListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 12),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// Get returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// Create adds a catalog product (admin only)
// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&product); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"product": product})
}

// Update partially updates a product (admin only)
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req service.ProductUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// Delete hard-deletes a product (admin only)
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
