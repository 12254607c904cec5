// File: /repositories/analytics_repository.go
package repositories

import (
	"time"

	"gorm.io/gorm"

	"sees-api/models"
)

// AnalyticsRepository aggregates event, attendance and revenue figures for
// the admin and promoter dashboards.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

type Summary struct {
	TotalEvents        int64              `json:"total_events"`
	TotalAttendees     int64              `json:"total_attendees"`
	TotalRevenue       float64            `json:"total_revenue"`
	EventsByDay        map[string]int     `json:"events_by_day"`
	RegistrationsByDay map[string]int     `json:"registrations_by_day"`
}

type AttendancePoint struct {
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	Attendees      int     `json:"attendees"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type RevenueDay struct {
	Registration float64 `json:"registration"`
	Promotion    float64 `json:"promotion"`
}

type PromotionBreakdown struct {
	CategoryCount   map[models.EventCategory]int  `json:"category_count"`
	PromotionLevels map[models.PromotionLevel]int `json:"promotion_levels"`
}

// Summary returns the headline totals plus per-day creation and registration
// series for the past month, scoped to one organizer's events.
func (r *AnalyticsRepository) Summary(organizerID string, now time.Time) (*Summary, error) {
	var events []models.Event
	if err := r.db.Where("organizer_id = ?", organizerID).Find(&events).Error; err != nil {
		return nil, err
	}

	summary := &Summary{
		EventsByDay:        map[string]int{},
		RegistrationsByDay: map[string]int{},
	}
	summary.TotalEvents = int64(len(events))

	eventIDs := make([]string, 0, len(events))
	for _, e := range events {
		summary.TotalAttendees += int64(e.AttendeesCount)
		eventIDs = append(eventIDs, e.ID)
	}

	if len(eventIDs) > 0 {
		err := r.db.Model(&models.Payment{}).
			Where("related_entity_id IN ? AND status = ?", eventIDs, models.PaymentStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.TotalRevenue).Error
		if err != nil {
			return nil, err
		}
	}

	pastMonth := now.AddDate(0, -1, 0)
	for _, e := range events {
		if e.CreatedAt.Before(pastMonth) {
			continue
		}
		day := e.CreatedAt.Format("2006-01-02")
		summary.EventsByDay[day]++
		summary.RegistrationsByDay[day] += e.AttendeesCount
	}

	return summary, nil
}

// Attendance returns fill rates for the organizer's ten most recent events.
func (r *AnalyticsRepository) Attendance(organizerID string) ([]AttendancePoint, error) {
	var events []models.Event
	err := r.db.Where("organizer_id = ?", organizerID).
		Order("date_time DESC").Limit(10).Find(&events).Error
	if err != nil {
		return nil, err
	}

	points := make([]AttendancePoint, 0, len(events))
	for _, e := range events {
		rate := 0.0
		if e.Capacity > 0 {
			rate = float64(e.AttendeesCount) / float64(e.Capacity) * 100
		}
		points = append(points, AttendancePoint{
			Name:           e.Title,
			Capacity:       e.Capacity,
			Attendees:      e.AttendeesCount,
			AttendanceRate: rate,
		})
	}
	return points, nil
}

// Revenue groups the past month's completed payments on the organizer's
// events by day and payment type.
func (r *AnalyticsRepository) Revenue(organizerID string, now time.Time) (map[string]RevenueDay, error) {
	var eventIDs []string
	err := r.db.Model(&models.Event{}).
		Where("organizer_id = ?", organizerID).
		Pluck("id", &eventIDs).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]RevenueDay{}
	if len(eventIDs) == 0 {
		return byDay, nil
	}

	var payments []models.Payment
	err = r.db.Where("related_entity_id IN ? AND status = ? AND created_at >= ?",
		eventIDs, models.PaymentStatusCompleted, now.AddDate(0, -1, 0)).
		Order("created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		day := p.CreatedAt.Format("2006-01-02")
		entry := byDay[day]
		switch p.PaymentType {
		case models.PaymentTypeEventRegistration:
			entry.Registration += p.Amount
		case models.PaymentTypeEventPromotion:
			entry.Promotion += p.Amount
		}
		byDay[day] = entry
	}
	return byDay, nil
}

// Promotions counts the organizer's events by category and, for promoted
// ones, by tier.
func (r *AnalyticsRepository) Promotions(organizerID string) (*PromotionBreakdown, error) {
	var events []models.Event
	if err := r.db.Where("organizer_id = ?", organizerID).Find(&events).Error; err != nil {
		return nil, err
	}

	breakdown := &PromotionBreakdown{
		CategoryCount: map[models.EventCategory]int{},
		PromotionLevels: map[models.PromotionLevel]int{
			models.PromotionBasic:    0,
			models.PromotionPremium:  0,
			models.PromotionFeatured: 0,
		},
	}

	for _, e := range events {
		category := e.Category
		if category == "" {
			category = models.CategoryOther
		}
		breakdown.CategoryCount[category]++

		if e.IsPromoted && e.PromotionLevel != models.PromotionNone {
			breakdown.PromotionLevels[e.PromotionLevel]++
		}
	}
	return breakdown, nil
}
