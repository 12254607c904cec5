// File: /controllers/admin_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sees-api/middleware"
	"sees-api/models"
	"sees-api/repositories"
)

// AdminController serves the admin dashboard: the organizer's events and the
// analytics charts.
type AdminController struct {
	db        *gorm.DB
	analytics *repositories.AnalyticsRepository
}

func NewAdminController(db *gorm.DB, analytics *repositories.AnalyticsRepository) *AdminController {
	return &AdminController{db: db, analytics: analytics}
}

func (ac *AdminController) GetEvents(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var events []models.Event
	err := ac.db.Preload("Attendees").Preload("Attendees.User").
		Where("organizer_id = ?", userID).Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (ac *AdminController) GetStats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var events []models.Event
	if err := ac.db.Where("organizer_id = ?", userID).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	totalAttendees := 0
	promotedEvents := 0
	for _, event := range events {
		totalAttendees += event.AttendeesCount
		if event.IsPromoted {
			promotedEvents++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_events":    len(events),
		"total_attendees": totalAttendees,
		"promoted_events": promotedEvents,
	})
}

func (ac *AdminController) AnalyticsSummary(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	summary, err := ac.analytics.Summary(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analytics summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (ac *AdminController) AnalyticsAttendance(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	attendance, err := ac.analytics.Attendance(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch attendance analytics"})
		return
	}

	c.JSON(http.StatusOK, attendance)
}

func (ac *AdminController) AnalyticsRevenue(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	revenue, err := ac.analytics.Revenue(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch revenue analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revenue_by_day": revenue})
}

func (ac *AdminController) AnalyticsPromotions(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	breakdown, err := ac.analytics.Promotions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch promotion analytics"})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
