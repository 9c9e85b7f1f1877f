package repository

import (
	"go-shop-api/internal/model"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *model.UserEvent) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db}
}

func (r *eventRepo) Create(event *model.UserEvent) error {
	return r.db.Create(event).Error
}
