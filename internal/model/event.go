package model

import "time"

type EventKind string

const (
	EventView      EventKind = "view"
	EventAddToCart EventKind = "add_to_cart"
	EventPurchase  EventKind = "purchase"
)

// EventWeights maps each interaction kind to its fixed aggregation weight.
var EventWeights = map[EventKind]int{
	EventView:      1,
	EventAddToCart: 3,
	EventPurchase:  10,
}

// ValidEventKind reports whether k is a known interaction kind.
func ValidEventKind(k EventKind) bool {
	_, ok := EventWeights[k]
	return ok
}

// UserEvent is one row of the append-only interaction log. Rows are never
// updated or deleted; popularity aggregates are derived from them downstream.
type UserEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	SessionID *string   `gorm:"type:varchar(64);index" json:"session_id,omitempty"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Event     EventKind `gorm:"type:varchar(20);not null" json:"event"`
	Weight    int       `gorm:"not null" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}
