// File: /controllers/promoter_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sees-api/middleware"
	"sees-api/models"
)

// PromoterController serves the promoter dashboard.
type PromoterController struct {
	db *gorm.DB
}

func NewPromoterController(db *gorm.DB) *PromoterController {
	return &PromoterController{db: db}
}

func (pc *PromoterController) GetPromotions(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var promotions []models.Promotion
	err := pc.db.Preload("Event").Where("promoter_id = ?", userID).
		Order("created_at DESC").Find(&promotions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, promotions)
}

// GetAvailableEvents lists upcoming events without a live promotion
func (pc *PromoterController) GetAvailableEvents(c *gin.Context) {
	now := time.Now()

	var events []models.Event
	err := pc.db.Preload("Organizer").
		Where("date_time > ?", now).
		Where("is_promoted = ? OR promotion_expiry <= ?", false, now).
		Order("date_time ASC").Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch available events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (pc *PromoterController) GetStats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var promotions []models.Promotion
	if err := pc.db.Where("promoter_id = ?", userID).Find(&promotions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	active := 0
	totalSpent := 0.0
	for _, promotion := range promotions {
		if promotion.Status == models.PromotionStatusActive {
			active++
		}
		totalSpent += promotion.Cost
	}

	c.JSON(http.StatusOK, gin.H{
		"total_promotions":  len(promotions),
		"active_promotions": active,
		"total_spent":       totalSpent,
	})
}
