package repository

import (
	"time"

	"go-shop-api/internal/model"

	"gorm.io/gorm"
)

// ProductListParams filters and pages the catalog listing.
type ProductListParams struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// ScoredProduct is a product row paired with a recommendation score.
type ScoredProduct struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Score float64 `json:"score"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	List(params ProductListParams) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) (int64, error)
	Count() (int64, error)
	TopByPopularity(since time.Time, limit int) ([]ScoredProduct, error)
	TopByStaticScore(limit int) ([]ScoredProduct, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) List(params ProductListParams) ([]model.Product, int64, error) {
	q := r.db.Model(&model.Product{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	if params.Category != "" {
		q = q.Where("category = ?", params.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := q.Order("id ASC").
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	return r.FindByIDTx(r.db, id)
}

// FindByIDTx accepts *gorm.DB so lookups can join an open transaction
func (r *productRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	err := tx.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uint) (int64, error) {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Count(&n).Error
	return n, err
}

// TopByPopularity ranks products by summed event weight since the given
// cutoff, descending, nulls last, ties broken by ascending product id.
// Products with no events in the window score zero.
func (r *productRepo) TopByPopularity(since time.Time, limit int) ([]ScoredProduct, error) {
	var rows []ScoredProduct
	err := r.db.Model(&model.Product{}).
		Select("products.id, products.name, products.price, COALESCE(pop.score, 0) AS score").
		Joins(`LEFT JOIN (
			SELECT product_id, SUM(weight)::float AS score
			  FROM user_events
			 WHERE created_at >= ?
			 GROUP BY product_id
		) pop ON pop.product_id = products.id`, since).
		Order("score DESC, products.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TopByStaticScore ranks products by their stored recommendation score,
// treating NULL as the 0.5 default.
func (r *productRepo) TopByStaticScore(limit int) ([]ScoredProduct, error) {
	var rows []ScoredProduct
	err := r.db.Model(&model.Product{}).
		Select("id, name, price, COALESCE(recommendation_score, 0.5) AS score").
		Order("score DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
