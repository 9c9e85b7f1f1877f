package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2,max=255"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	SKU         *string `gorm:"type:varchar(64);uniqueIndex" json:"sku,omitempty"`
	Category    string  `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Price       float64 `gorm:"type:numeric(12,2);not null" json:"price" validate:"gte=0"`
	Stock       int     `gorm:"not null;default:0" json:"stock" validate:"gte=0"`

	// Static scoring signal used by the last recommendation fallback tier.
	// NULL is treated as 0.5 at query time.
	RecommendationScore *float64 `gorm:"type:double precision" json:"recommendation_score,omitempty"`
}
