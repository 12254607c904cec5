// File: /models/user.go
package models

import (
	"time"
)

// Role is the account type fixed at registration. There is no
// promotion/demotion flow between roles.
type Role string

const (
	RoleClient   Role = "client"
	RoleAdmin    Role = "admin"
	RolePromoter Role = "promoter"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin, RolePromoter:
		return true
	}
	return false
}

type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:191"`
	Name     string `json:"name" gorm:"not null;size:255"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string `json:"-" gorm:"not null;size:255"`
	Role     Role   `json:"role" gorm:"not null;size:20;default:'client'"`

	// Profile fields feeding the event recommender
	Skills       StringSliceType `json:"skills" gorm:"type:json"`
	Achievements StringSliceType `json:"achievements" gorm:"type:json"`
	Expertise    StringSliceType `json:"expertise" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships. Authoritative attendance lives on EventAttendee rows;
	// these are convenience back-references.
	CreatedEvents  []Event         `json:"created_events,omitempty" gorm:"foreignKey:OrganizerID"`
	Registrations  []EventAttendee `json:"registrations,omitempty" gorm:"foreignKey:UserID"`
	PromotionsMade []Promotion     `json:"promotions_made,omitempty" gorm:"foreignKey:PromoterID"`
}
