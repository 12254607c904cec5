// File: /services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sees-api/models"
)

// PromotionTier fixes the price and duration of a purchasable promotion
// level.
type PromotionTier struct {
	Cost float64
	Days int
}

// PromotionPricing is the single pricing table for event promotion. The
// client-submitted amount is ignored; cost is always derived from the level.
var PromotionPricing = map[models.PromotionLevel]PromotionTier{
	models.PromotionBasic:    {Cost: 25, Days: 7},
	models.PromotionPremium:  {Cost: 50, Days: 14},
	models.PromotionFeatured: {Cost: 100, Days: 30},
}

// PaymentDetails is the simulated card input. Capture always succeeds; only
// request validation can fail a payment.
type PaymentDetails struct {
	Method     models.PaymentMethod
	CardNumber string
}

// PaymentService owns the simulated payment capture and the two workflows it
// gates: fee-paid registration and event promotion.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// ProcessRegistrationPayment captures the registration fee and enrolls the
// payer, atomically. If no seat is left the whole transaction rolls back and
// no payment record survives.
func (s *PaymentService) ProcessRegistrationPayment(eventID, userID string, details PaymentDetails) (*models.Payment, error) {
	var payment *models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
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

		payment = &models.Payment{
			ID:              uuid.New().String(),
			UserID:          userID,
			Amount:          event.RegistrationFee,
			PaymentType:     models.PaymentTypeEventRegistration,
			EntityType:      models.EntityTypeEvent,
			RelatedEntityID: event.ID,
			CardLast4:       cardLast4(details.CardNumber),
			PaymentMethod:   methodOrDefault(details.Method),
			Status:          models.PaymentStatusCompleted,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		// Same conditional seat claim as the free path: a full event fails
		// the payment too, not just the enrollment.
		return addAttendee(tx, event.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ProcessPromotionPayment captures the tier cost, creates the Promotion and
// mirrors it onto the event, as one transaction. Only promoters may buy
// promotions, and an event with a live promotion cannot be promoted again.
func (s *PaymentService) ProcessPromotionPayment(eventID, promoterID string, promoterRole models.Role, level models.PromotionLevel, details PaymentDetails) (*models.Payment, *models.Promotion, error) {
	if promoterRole != models.RolePromoter {
		return nil, nil, ErrForbidden
	}

	tier, ok := PromotionPricing[level]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown promotion level %q", ErrValidation, level)
	}

	var (
		payment   *models.Payment
		promotion *models.Promotion
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		now := time.Now()
		if event.HasActivePromotion(now) {
			return ErrAlreadyPromoted
		}

		endDate := now.AddDate(0, 0, tier.Days)

		payment = &models.Payment{
			ID:              uuid.New().String(),
			UserID:          promoterID,
			Amount:          tier.Cost,
			PaymentType:     models.PaymentTypeEventPromotion,
			EntityType:      models.EntityTypeEvent,
			RelatedEntityID: event.ID,
			CardLast4:       cardLast4(details.CardNumber),
			PaymentMethod:   methodOrDefault(details.Method),
			Status:          models.PaymentStatusCompleted,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		promotion = &models.Promotion{
			ID:             uuid.New().String(),
			EventID:        event.ID,
			PromoterID:     promoterID,
			StartDate:      now,
			EndDate:        endDate,
			PromotionLevel: level,
			Status:         models.PromotionStatusActive,
			Cost:           tier.Cost,
		}
		if err := tx.Create(promotion).Error; err != nil {
			return fmt.Errorf("failed to record promotion: %w", err)
		}

		return tx.Model(&event).Updates(map[string]interface{}{
			"is_promoted":      true,
			"promotion_level":  level,
			"promotion_expiry": endDate,
			"promoter_id":      promoterID,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, promotion, nil
}

// cardLast4 derives the stored suffix of a submitted card number
func cardLast4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "0000"
	}
	return cardNumber[len(cardNumber)-4:]
}

func methodOrDefault(m models.PaymentMethod) models.PaymentMethod {
	if m.IsValid() {
		return m
	}
	return models.PaymentMethodCreditCard
}
