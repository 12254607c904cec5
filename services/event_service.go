// File: /services/event_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sees-api/models"
)

// EventService owns the event lifecycle and the capacity-constrained
// registration workflow.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventInput struct {
	Title           string
	Description     string
	DateTime        time.Time
	Location        string
	Category        models.EventCategory
	Capacity        int
	IsPublic        bool
	RegistrationFee float64
	SeatingLayout   *models.SeatingLayout
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title           *string
	Description     *string
	DateTime        *time.Time
	Location        *string
	Category        *models.EventCategory
	Capacity        *int
	IsPublic        *bool
	RegistrationFee *float64
	SeatingLayout   *models.SeatingLayout
}

// CreateEvent validates the input and stores a new event owned by organizerID.
func (s *EventService) CreateEvent(input CreateEventInput, organizerID string) (*models.Event, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" {
		return nil, fmt.Errorf("%w: title, description and location are required", ErrValidation)
	}
	if input.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: date_time is required", ErrValidation)
	}
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}
	if input.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	if input.RegistrationFee < 0 {
		return nil, fmt.Errorf("%w: registration fee cannot be negative", ErrValidation)
	}

	event := models.Event{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Description:     input.Description,
		DateTime:        input.DateTime,
		Location:        input.Location,
		Category:        input.Category,
		Capacity:        input.Capacity,
		IsPublic:        input.IsPublic,
		RegistrationFee: input.RegistrationFee,
		OrganizerID:     organizerID,
		PromotionLevel:  models.PromotionNone,
		SeatingLayout:   input.SeatingLayout,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// GetEvent loads a single event with its organizer and attendees.
func (s *EventService) GetEvent(eventID string) (*models.Event, error) {
	var event models.Event
	err := s.db.Preload("Organizer").Preload("Attendees").Preload("Attendees.User").
		First(&event, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// UpdateEvent applies a partial update after re-validating changed fields.
// Only the organizer or an admin may edit.
func (s *EventService) UpdateEvent(eventID string, update EventUpdate, actorID string, actorRole models.Role) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !models.CanManageEvent(actorID, actorRole, &event) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		if *update.Description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		updates["description"] = *update.Description
	}
	if update.DateTime != nil {
		updates["date_time"] = *update.DateTime
	}
	if update.Location != nil {
		if *update.Location == "" {
			return nil, fmt.Errorf("%w: location cannot be empty", ErrValidation)
		}
		updates["location"] = *update.Location
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *update.Category)
		}
		updates["category"] = *update.Category
	}
	if update.Capacity != nil {
		if *update.Capacity < 1 {
			return nil, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
		}
		updates["capacity"] = *update.Capacity
	}
	if update.IsPublic != nil {
		updates["is_public"] = *update.IsPublic
	}
	if update.RegistrationFee != nil {
		if *update.RegistrationFee < 0 {
			return nil, fmt.Errorf("%w: registration fee cannot be negative", ErrValidation)
		}
		updates["registration_fee"] = *update.RegistrationFee
	}
	if update.SeatingLayout != nil {
		updates["seating_layout"] = update.SeatingLayout
	}

	if len(updates) > 0 {
		query := s.db.Model(&event)
		if update.Capacity != nil {
			// Guard in the UPDATE itself: a registration landing after the
			// read above must not leave attendees_count above capacity.
			query = query.Where("attendees_count <= ?", *update.Capacity)
		}
		res := query.Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update event: %w", res.Error)
		}
		if update.Capacity != nil && res.RowsAffected == 0 {
			var current models.Event
			if err := s.db.First(&current, "id = ?", eventID).Error; err != nil {
				return nil, err
			}
			if current.AttendeesCount > *update.Capacity {
				return nil, fmt.Errorf("%w: cannot reduce capacity below current attendance", ErrValidation)
			}
		}
	}
	return &event, nil
}

// DeleteEvent hard-deletes an event and its attendance records. Payments and
// promotions referencing it are kept as an audit trail.
func (s *EventService) DeleteEvent(eventID string, actorID string, actorRole models.Role) error {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !models.CanManageEvent(actorID, actorRole, &event) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
}

// Register adds userID to the event's attendee set. Paid events must go
// through the payment workflow first; the completed payment is checked here.
func (s *EventService) Register(eventID, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.DateTime.Before(time.Now()) {
			return ErrEventInPast
		}

		if event.RegistrationFee > 0 {
			var paid int64
			err := tx.Model(&models.Payment{}).
				Where("user_id = ? AND related_entity_id = ? AND payment_type = ? AND status = ?",
					userID, eventID, models.PaymentTypeEventRegistration, models.PaymentStatusCompleted).
				Count(&paid).Error
			if err != nil {
				return err
			}
			if paid == 0 {
				return ErrPaymentRequired
			}
		}

		return addAttendee(tx, eventID, userID)
	})
}

// CancelRegistration removes userID from the event's attendee set. Payments
// are never reversed. Cancelling a membership that does not exist fails with
// ErrNotRegistered and changes nothing.
func (s *EventService) CancelRegistration(eventID, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		return removeAttendee(tx, eventID, userID)
	})
}

// RemoveAttendee force-removes an attendee on behalf of the organizer or an
// admin.
func (s *EventService) RemoveAttendee(eventID, attendeeID, actorID string, actorRole models.Role) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if !models.CanManageEvent(actorID, actorRole, &event) {
			return ErrForbidden
		}

		return removeAttendee(tx, eventID, attendeeID)
	})
}

// addAttendee claims a seat with a single conditional update so two
// concurrent registrations can never both pass the capacity check.
func addAttendee(tx *gorm.DB, eventID, userID string) error {
	var existing models.EventAttendee
	err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
	if err == nil {
		return ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	res := tx.Model(&models.Event{}).
		Where("id = ? AND attendees_count < capacity", eventID).
		UpdateColumn("attendees_count", gorm.Expr("attendees_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCapacityFull
	}

	if err := tx.Create(&models.EventAttendee{EventID: eventID, UserID: userID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func removeAttendee(tx *gorm.DB, eventID, userID string) error {
	res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAttendee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotRegistered
	}

	return tx.Model(&models.Event{}).
		Where("id = ? AND attendees_count > 0", eventID).
		UpdateColumn("attendees_count", gorm.Expr("attendees_count - ?", 1)).Error
}
