package service

import (
	"errors"
	"fmt"

	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
	"go-shop-api/internal/ws"
	"go-shop-api/pkg/validator"

	"gorm.io/gorm"
)

// ProductUpdate is a partial update: nil fields are left untouched.
type ProductUpdate struct {
	Name                *string  `json:"name"`
	Description         *string  `json:"description"`
	SKU                 *string  `json:"sku"`
	Category            *string  `json:"category"`
	Price               *float64 `json:"price"`
	Stock               *int     `json:"stock"`
	RecommendationScore *float64 `json:"recommendation_score"`
}

// ProductPage is the paginated catalog listing response.
type ProductPage struct {
	Products []model.Product `json:"products"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int64           `json:"total"`
}

type CatalogService interface {
	List(params repository.ProductListParams) (*ProductPage, error)
	Get(id uint) (*model.Product, error)
	Create(product *model.Product) error
	Update(id uint, req *ProductUpdate) (*model.Product, error)
	Delete(id uint) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub) CatalogService {
	return &catalogService{productRepo: productRepo, wsHub: hub}
}

func (s *catalogService) List(params repository.ProductListParams) (*ProductPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 12
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	products, total, err := s.productRepo.List(params)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to fetch products")
	}
	return &ProductPage{
		Products: products,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}, nil
}

func (s *catalogService) Get(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to fetch product")
	}
	return product, nil
}

func (s *catalogService) Create(product *model.Product) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.Validation, "Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// 2. SKU duplicate check
	if product.SKU != nil && *product.SKU != "" {
		if existing, _ := s.productRepo.FindBySKU(*product.SKU); existing != nil {
			return apperr.New(apperr.Conflict, "SKU already exists")
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		return apperr.Wrap(err, apperr.Internal, "Create failed")
	}

	s.broadcast("product_created", product)
	return nil
}

func (s *catalogService) Update(id uint, req *ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(err, apperr.Internal, "Update failed")
	}

	if req.SKU != nil && *req.SKU != "" {
		if existing, _ := s.productRepo.FindBySKU(*req.SKU); existing != nil && existing.ID != id {
			return nil, apperr.New(apperr.Conflict, "SKU already exists")
		}
		product.SKU = req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.New(apperr.Validation, "price must be >= 0")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.New(apperr.Validation, "stock must be >= 0")
		}
		product.Stock = *req.Stock
	}
	if req.RecommendationScore != nil {
		product.RecommendationScore = req.RecommendationScore
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Update failed")
	}

	s.broadcast("product_updated", product)
	return product, nil
}

// Delete removes the product row. Cart and order lines that reference it
// keep their snapshots; their joins simply come back without a name.
func (s *catalogService) Delete(id uint) error {
	rows, err := s.productRepo.Delete(id)
	if err != nil {
		return apperr.Wrap(err, apperr.Internal, "Delete failed")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "Product not found")
	}

	if s.wsHub != nil {
		s.wsHub.Publish(map[string]interface{}{
			"type":    "catalog_update",
			"action":  "product_deleted",
			"message": fmt.Sprintf("product %d deleted", id),
		})
	}
	return nil
}

func (s *catalogService) broadcast(action string, product *model.Product) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Publish(map[string]interface{}{
		"type":   "catalog_update",
		"action": action,
		"product": map[string]interface{}{
			"id":    product.ID,
			"name":  product.Name,
			"price": product.Price,
			"stock": product.Stock,
		},
	})
}
