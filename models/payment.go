// File: /models/payment.go
package models

import (
	"time"
)

type PaymentType string

const (
	PaymentTypeEventRegistration PaymentType = "event_registration"
	PaymentTypeEventPromotion    PaymentType = "event_promotion"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
)

// IsValid reports whether m is a supported payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodPayPal
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// RelatedEntityType discriminates what RelatedEntityID points at. Keeping it
// a dedicated type makes switches over it checkable.
type RelatedEntityType string

const (
	EntityTypeEvent     RelatedEntityType = "event"
	EntityTypePromotion RelatedEntityType = "promotion"
)

// Payment is an immutable audit record of a simulated capture. Cancellation
// workflows never reverse payments (no-refund policy).
type Payment struct {
	ID              string            `json:"id" gorm:"primaryKey;size:191"`
	UserID          string            `json:"user_id" gorm:"not null;size:191"`
	Amount          float64           `json:"amount" gorm:"not null"`
	PaymentType     PaymentType       `json:"payment_type" gorm:"not null;size:30"`
	EntityType      RelatedEntityType `json:"entity_type" gorm:"not null;size:20"`
	RelatedEntityID string            `json:"related_entity_id" gorm:"not null;size:191;index"`
	CardLast4       string            `json:"card_last4" gorm:"size:4;default:'0000'"`
	PaymentMethod   PaymentMethod     `json:"payment_method" gorm:"size:20;default:'credit_card'"`
	Status          PaymentStatus     `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
