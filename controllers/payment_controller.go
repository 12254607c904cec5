// File: /controllers/payment_controller.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sees-api/middleware"
	"sees-api/models"
	"sees-api/services"
	"sees-api/utils"
)

type PaymentController struct {
	db           *gorm.DB
	payments     *services.PaymentService
	emailService *services.EmailService
}

func NewPaymentController(db *gorm.DB, payments *services.PaymentService, emailService *services.EmailService) *PaymentController {
	return &PaymentController{db: db, payments: payments, emailService: emailService}
}

type CardDetails struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"-"`
}

type RegistrationPaymentRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CardDetails   *CardDetails         `json:"card_details"`
}

type PromotionPaymentRequest struct {
	PaymentMethod  models.PaymentMethod  `json:"payment_method"`
	PromotionLevel models.PromotionLevel `json:"promotion_level" binding:"required"`
	CardDetails    *CardDetails          `json:"card_details"`
}

func (pc *PaymentController) EventRegistrationPayment(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	eventID := c.Param("eventId")

	var req RegistrationPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	details, ok := pc.paymentDetails(c, req.PaymentMethod, req.CardDetails)
	if !ok {
		return
	}

	payment, err := pc.payments.ProcessRegistrationPayment(eventID, userID, details)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pc.sendReceipt(payment, eventID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment successful, registration complete",
		"payment": payment,
	})
}

func (pc *PaymentController) EventPromotionPayment(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	eventID := c.Param("eventId")

	var req PromotionPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	details, ok := pc.paymentDetails(c, req.PaymentMethod, req.CardDetails)
	if !ok {
		return
	}

	payment, promotion, err := pc.payments.ProcessPromotionPayment(
		eventID, userID, middleware.CallerRole(c), req.PromotionLevel, details)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pc.sendReceipt(payment, eventID)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Payment successful, event promoted",
		"payment":   payment,
		"promotion": promotion,
	})
}

func (pc *PaymentController) paymentDetails(c *gin.Context, method models.PaymentMethod, card *CardDetails) (services.PaymentDetails, bool) {
	details := services.PaymentDetails{Method: method}
	if card != nil {
		if card.CardNumber != "" && !utils.IsValidCardNumber(card.CardNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid card number"})
			return details, false
		}
		details.CardNumber = card.CardNumber
	}
	return details, true
}

func (pc *PaymentController) sendReceipt(payment *models.Payment, eventID string) {
	var user models.User
	var event models.Event
	if pc.db.First(&user, "id = ?", payment.UserID).Error != nil ||
		pc.db.First(&event, "id = ?", eventID).Error != nil {
		return
	}

	go func() {
		if err := pc.emailService.SendPaymentReceipt(user.Email, user.Name, payment, event.Title); err != nil {
			fmt.Printf("Failed to send payment receipt: %v\n", err)
		}
	}()
}
