// File: /models/promotion.go
package models

import (
	"time"
)

type PromotionStatus string

const (
	PromotionStatusActive    PromotionStatus = "active"
	PromotionStatusCompleted PromotionStatus = "completed"
	PromotionStatusCancelled PromotionStatus = "cancelled"
)

// Promotion records a paid visibility boost. It is created in the same
// transaction as its Payment, and its fields are mirrored onto the owning
// Event while active.
type Promotion struct {
	ID             string          `json:"id" gorm:"primaryKey;size:191"`
	EventID        string          `json:"event_id" gorm:"not null;size:191;index"`
	PromoterID     string          `json:"promoter_id" gorm:"not null;size:191;index"`
	StartDate      time.Time       `json:"start_date" gorm:"not null"`
	EndDate        time.Time       `json:"end_date" gorm:"not null"`
	PromotionLevel PromotionLevel  `json:"promotion_level" gorm:"not null;size:20"`
	Status         PromotionStatus `json:"status" gorm:"size:20;default:'active'"`
	Cost           float64         `json:"cost" gorm:"not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Event    Event `json:"event" gorm:"foreignKey:EventID"`
	Promoter User  `json:"-" gorm:"foreignKey:PromoterID"`
}
