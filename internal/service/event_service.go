package service

import (
	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
)

type EventService interface {
	Record(kind model.EventKind, productID uint, sessionID string, userID *uint) error
	RecordPurchaseBatch(userID uint, productIDs []uint, sessionID string) error
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

// Record appends one interaction row with the fixed weight for its kind.
func (s *eventService) Record(kind model.EventKind, productID uint, sessionID string, userID *uint) error {
	if !model.ValidEventKind(kind) {
		return apperr.New(apperr.Validation, "Invalid event")
	}
	if productID < 1 {
		return apperr.New(apperr.Validation, "Invalid product_id")
	}

	event := &model.UserEvent{
		UserID:    userID,
		ProductID: productID,
		Event:     kind,
		Weight:    model.EventWeights[kind],
	}
	if sessionID != "" {
		event.SessionID = &sessionID
	}

	if err := s.eventRepo.Create(event); err != nil {
		return apperr.Wrap(err, apperr.Internal, "Failed to record event")
	}
	return nil
}

// RecordPurchaseBatch logs purchase events for a set of products.
// Invalid product ids are skipped rather than failing the batch.
func (s *eventService) RecordPurchaseBatch(userID uint, productIDs []uint, sessionID string) error {
	for _, pid := range productIDs {
		if pid < 1 {
			continue
		}
		if err := s.Record(model.EventPurchase, pid, sessionID, &userID); err != nil {
			return err
		}
	}
	return nil
}
