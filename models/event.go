// File: /models/event.go
package models

import (
	"time"
)

type EventCategory string

const (
	CategoryWorkshop   EventCategory = "workshop"
	CategoryLecture    EventCategory = "lecture"
	CategorySeminar    EventCategory = "seminar"
	CategoryConference EventCategory = "conference"
	CategoryNetworking EventCategory = "networking"
	CategoryOther      EventCategory = "other"
)

// IsValid reports whether c is one of the known event categories
func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryWorkshop, CategoryLecture, CategorySeminar,
		CategoryConference, CategoryNetworking, CategoryOther:
		return true
	}
	return false
}

// PromotionLevel is the paid visibility tier of an event
type PromotionLevel string

const (
	PromotionNone     PromotionLevel = "none"
	PromotionBasic    PromotionLevel = "basic"
	PromotionPremium  PromotionLevel = "premium"
	PromotionFeatured PromotionLevel = "featured"
)

// IsValid reports whether l is a purchasable tier (none is not purchasable)
func (l PromotionLevel) IsValid() bool {
	switch l {
	case PromotionBasic, PromotionPremium, PromotionFeatured:
		return true
	}
	return false
}

type Event struct {
	ID              string        `json:"id" gorm:"primaryKey;size:191"`
	Title           string        `json:"title" gorm:"not null;size:255"`
	Description     string        `json:"description" gorm:"not null;type:text"`
	DateTime        time.Time     `json:"date_time" gorm:"not null;index"`
	Location        string        `json:"location" gorm:"not null;size:255"`
	Category        EventCategory `json:"category" gorm:"not null;size:50;index"`
	Capacity        int           `json:"capacity" gorm:"not null"`
	IsPublic        bool          `json:"is_public" gorm:"default:true"`
	RegistrationFee float64       `json:"registration_fee" gorm:"default:0"`
	OrganizerID     string        `json:"organizer_id" gorm:"not null;size:191"`

	// Attendance. AttendeesCount is maintained by the registration workflow
	// with a conditional update so it can never pass Capacity.
	AttendeesCount int `json:"attendees_count" gorm:"default:0"`

	// Promotion fields, denormalized from the active Promotion record
	IsPromoted      bool           `json:"is_promoted" gorm:"default:false"`
	PromotionLevel  PromotionLevel `json:"promotion_level" gorm:"size:20;default:'none'"`
	PromotionExpiry *time.Time     `json:"promotion_expiry"`
	PromoterID      *string        `json:"promoter_id" gorm:"size:191"`

	// Opaque seat map; no invariant ties it to Capacity
	SeatingLayout *SeatingLayout `json:"seating_layout,omitempty" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organizer User            `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Attendees []EventAttendee `json:"attendees,omitempty" gorm:"foreignKey:EventID"`
}

// IsFull reports whether the event has no remaining capacity
func (e *Event) IsFull() bool {
	return e.AttendeesCount >= e.Capacity
}

// HasActivePromotion reports whether promotion fields on the event are live
func (e *Event) HasActivePromotion(now time.Time) bool {
	return e.IsPromoted && e.PromotionExpiry != nil && e.PromotionExpiry.After(now)
}

// EventAttendee is the authoritative attendance record. The composite unique
// index guarantees at-most-once membership per user per event.
type EventAttendee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_event_attendees_event_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_event_attendees_event_user"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"user" gorm:"foreignKey:UserID"`
}

// CanManageEvent is the single capability check for event mutation: admins
// and the organizer may edit, delete, and force-remove attendees.
func CanManageEvent(userID string, role Role, event *Event) bool {
	return role == RoleAdmin || event.OrganizerID == userID
}
