// File: /services/payment_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sees-api/models"
)

func TestPromotionPricing(t *testing.T) {
	tests := []struct {
		level models.PromotionLevel
		cost  float64
		days  int
	}{
		{models.PromotionBasic, 25, 7},
		{models.PromotionPremium, 50, 14},
		{models.PromotionFeatured, 100, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			tier, ok := PromotionPricing[tt.level]
			require.True(t, ok, "missing pricing for %s", tt.level)
			assert.Equal(t, tt.cost, tier.Cost)
			assert.Equal(t, tt.days, tier.Days)
		})
	}

	_, ok := PromotionPricing[models.PromotionNone]
	assert.False(t, ok, "none must not be purchasable")
}

func TestProcessRegistrationPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	attendee := createTestUser(t, db, models.RoleClient)
	event := createTestEvent(t, db, organizer.ID, 10, 35)

	payment, err := svc.ProcessRegistrationPayment(event.ID, attendee.ID, PaymentDetails{
		Method:     models.PaymentMethodCreditCard,
		CardNumber: "4242424242424242",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, 35.0, payment.Amount)
	assert.Equal(t, models.PaymentTypeEventRegistration, payment.PaymentType)
	assert.Equal(t, models.EntityTypeEvent, payment.EntityType)
	assert.Equal(t, event.ID, payment.RelatedEntityID)
	assert.Equal(t, "4242", payment.CardLast4)

	// Payment also enrolled the payer
	var count int64
	db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", event.ID, attendee.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestProcessRegistrationPayment_MissingCardDefaultsLast4(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	attendee := createTestUser(t, db, models.RoleClient)
	event := createTestEvent(t, db, organizer.ID, 10, 10)

	payment, err := svc.ProcessRegistrationPayment(event.ID, attendee.ID, PaymentDetails{
		Method: models.PaymentMethodPayPal,
	})
	require.NoError(t, err)
	assert.Equal(t, "0000", payment.CardLast4)
	assert.Equal(t, models.PaymentMethodPayPal, payment.PaymentMethod)
}

// A full event must fail the whole payment: no completed Payment row may
// survive without its matching enrollment.
func TestProcessRegistrationPayment_FullEventLeavesNoPayment(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db)
	events := NewEventService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	first := createTestUser(t, db, models.RoleClient)
	second := createTestUser(t, db, models.RoleClient)
	event := createTestEvent(t, db, organizer.ID, 1, 0)

	require.NoError(t, events.Register(event.ID, first.ID))

	_, err := payments.ProcessRegistrationPayment(event.ID, second.ID, PaymentDetails{})
	require.ErrorIs(t, err, ErrCapacityFull)

	var count int64
	db.Model(&models.Payment{}).Where("user_id = ?", second.ID).Count(&count)
	assert.EqualValues(t, 0, count, "rolled-back payment must not persist")
}

func TestProcessRegistrationPayment_AlreadyRegistered(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db)
	events := NewEventService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	attendee := createTestUser(t, db, models.RoleClient)
	event := createTestEvent(t, db, organizer.ID, 10, 0)

	require.NoError(t, events.Register(event.ID, attendee.ID))

	_, err := payments.ProcessRegistrationPayment(event.ID, attendee.ID, PaymentDetails{})
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	var count int64
	db.Model(&models.Payment{}).Where("user_id = ?", attendee.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestProcessPromotionPayment_EndToEnd(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	promoter := createTestUser(t, db, models.RolePromoter)
	event := createTestEvent(t, db, organizer.ID, 50, 0)

	before := time.Now()
	payment, promotion, err := svc.ProcessPromotionPayment(
		event.ID, promoter.ID, models.RolePromoter, models.PromotionPremium,
		PaymentDetails{Method: models.PaymentMethodCreditCard, CardNumber: "5555444433331111"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, payment.Amount)
	assert.Equal(t, models.PaymentTypeEventPromotion, payment.PaymentType)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

	assert.Equal(t, event.ID, promotion.EventID)
	assert.Equal(t, promoter.ID, promotion.PromoterID)
	assert.Equal(t, models.PromotionStatusActive, promotion.Status)
	assert.Equal(t, 50.0, promotion.Cost)

	wantEnd := before.AddDate(0, 0, 14)
	assert.WithinDuration(t, wantEnd, promotion.EndDate, time.Minute)

	var stored models.Event
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.True(t, stored.IsPromoted)
	assert.Equal(t, models.PromotionPremium, stored.PromotionLevel)
	require.NotNil(t, stored.PromotionExpiry)
	assert.WithinDuration(t, wantEnd, *stored.PromotionExpiry, time.Minute)
	require.NotNil(t, stored.PromoterID)
	assert.Equal(t, promoter.ID, *stored.PromoterID)

	// Exactly one payment and one promotion reference the event
	var paymentCount, promotionCount int64
	db.Model(&models.Payment{}).Where("related_entity_id = ?", event.ID).Count(&paymentCount)
	db.Model(&models.Promotion{}).Where("event_id = ?", event.ID).Count(&promotionCount)
	assert.EqualValues(t, 1, paymentCount)
	assert.EqualValues(t, 1, promotionCount)
}

func TestProcessPromotionPayment_NonPromoter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	client := createTestUser(t, db, models.RoleClient)
	event := createTestEvent(t, db, organizer.ID, 50, 0)

	_, _, err := svc.ProcessPromotionPayment(
		event.ID, client.ID, models.RoleClient, models.PromotionBasic, PaymentDetails{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProcessPromotionPayment_UnknownLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	promoter := createTestUser(t, db, models.RolePromoter)

	_, _, err := svc.ProcessPromotionPayment(
		"whatever", promoter.ID, models.RolePromoter, "platinum", PaymentDetails{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProcessPromotionPayment_AlreadyPromoted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	organizer := createTestUser(t, db, models.RoleAdmin)
	promoter := createTestUser(t, db, models.RolePromoter)
	event := createTestEvent(t, db, organizer.ID, 50, 0)

	_, _, err := svc.ProcessPromotionPayment(
		event.ID, promoter.ID, models.RolePromoter, models.PromotionBasic, PaymentDetails{})
	require.NoError(t, err)

	_, _, err = svc.ProcessPromotionPayment(
		event.ID, promoter.ID, models.RolePromoter, models.PromotionFeatured, PaymentDetails{})
	assert.ErrorIs(t, err, ErrAlreadyPromoted)

	// The failed attempt must not leave a second payment behind
	var count int64
	db.Model(&models.Payment{}).Where("related_entity_id = ?", event.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestProcessPromotionPayment_EventNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	promoter := createTestUser(t, db, models.RolePromoter)

	_, _, err := svc.ProcessPromotionPayment(
		"missing", promoter.ID, models.RolePromoter, models.PromotionBasic, PaymentDetails{})
	require.ErrorIs(t, err, ErrEventNotFound)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.EqualValues(t, 0, count, "no payment may survive a missing event")
}
