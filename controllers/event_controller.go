// File: /controllers/event_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sees-api/middleware"
	"sees-api/models"
	"sees-api/services"
)

type EventController struct {
	db           *gorm.DB
	events       *services.EventService
	emailService *services.EmailService
}

func NewEventController(db *gorm.DB, events *services.EventService, emailService *services.EmailService) *EventController {
	return &EventController{db: db, events: events, emailService: emailService}
}

type CreateEventRequest struct {
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description" binding:"required"`
	DateTime        time.Time             `json:"date_time" binding:"required"`
	Location        string                `json:"location" binding:"required"`
	Category        models.EventCategory  `json:"category" binding:"required"`
	Capacity        int                   `json:"capacity" binding:"required,min=1"`
	IsPublic        *bool                 `json:"is_public"`
	RegistrationFee float64               `json:"registration_fee"`
	SeatingLayout   *models.SeatingLayout `json:"seating_layout"`
}

type UpdateEventRequest struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	DateTime        *time.Time            `json:"date_time"`
	Location        *string               `json:"location"`
	Category        *models.EventCategory `json:"category"`
	Capacity        *int                  `json:"capacity"`
	IsPublic        *bool                 `json:"is_public"`
	RegistrationFee *float64              `json:"registration_fee"`
	SeatingLayout   *models.SeatingLayout `json:"seating_layout"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	var events []models.Event
	query := ec.db.Preload("Organizer").Where("is_public = ? AND date_time > ?", true, time.Now())

	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if availableOnly := c.Query("available_only"); availableOnly == "true" {
		query = query.Where("attendees_count < capacity")
	}

	// Promoted events surface first
	if err := query.Order("is_promoted DESC, date_time ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"page":   page,
		"limit":  limit,
	})
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.DateTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Event date must be in the future"})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event, err := ec.events.CreateEvent(services.CreateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		DateTime:        req.DateTime,
		Location:        req.Location,
		Category:        req.Category,
		Capacity:        req.Capacity,
		IsPublic:        isPublic,
		RegistrationFee: req.RegistrationFee,
		SeatingLayout:   req.SeatingLayout,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.events.GetEvent(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	event, err := ec.events.UpdateEvent(c.Param("id"), services.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		DateTime:        req.DateTime,
		Location:        req.Location,
		Category:        req.Category,
		Capacity:        req.Capacity,
		IsPublic:        req.IsPublic,
		RegistrationFee: req.RegistrationFee,
		SeatingLayout:   req.SeatingLayout,
	}, userID, middleware.CallerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := ec.events.DeleteEvent(c.Param("id"), userID, middleware.CallerRole(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (ec *EventController) RegisterForEvent(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	eventID := c.Param("id")

	if err := ec.events.Register(eventID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	ec.sendConfirmation(eventID, userID)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully registered for event"})
}

func (ec *EventController) CancelRegistration(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := ec.events.CancelRegistration(c.Param("id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled"})
}

func (ec *EventController) RemoveAttendee(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	eventID := c.Param("id")
	attendeeID := c.Param("attendeeId")

	err := ec.events.RemoveAttendee(eventID, attendeeID, userID, middleware.CallerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendee removed"})
}

func (ec *EventController) GetRegisteredEvents(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var registrations []models.EventAttendee
	err := ec.db.Preload("Event").Preload("Event.Organizer").
		Where("user_id = ?", userID).Find(&registrations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch registered events"})
		return
	}

	events := make([]models.Event, 0, len(registrations))
	for _, registration := range registrations {
		events = append(events, registration.Event)
	}

	c.JSON(http.StatusOK, events)
}

// sendConfirmation emails the attendee in the background; failures are
// logged and never affect the response.
func (ec *EventController) sendConfirmation(eventID, userID string) {
	var user models.User
	var event models.Event
	if ec.db.First(&user, "id = ?", userID).Error != nil ||
		ec.db.First(&event, "id = ?", eventID).Error != nil {
		return
	}

	go func() {
		if err := ec.emailService.SendRegistrationConfirmation(user.Email, user.Name, event.Title, event.DateTime); err != nil {
			fmt.Printf("Failed to send confirmation email: %v\n", err)
		}
	}()
}
