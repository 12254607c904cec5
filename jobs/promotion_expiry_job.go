// File: /jobs/promotion_expiry_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"sees-api/models"
)

// PromotionExpiryJob periodically completes promotions past their end date
// and clears the denormalized promotion fields on the owning events.
type PromotionExpiryJob struct {
	db     *gorm.DB
	ticker *time.Ticker
	done   chan bool
}

// NewPromotionExpiryJob creates a new promotion expiry job
func NewPromotionExpiryJob(db *gorm.DB, interval time.Duration) *PromotionExpiryJob {
	return &PromotionExpiryJob{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the expiry sweep
func (j *PromotionExpiryJob) Start() {
	fmt.Println("Promotion expiry job started")

	go func() {
		// Run immediately on start
		j.sweep()

		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				fmt.Println("Promotion expiry job stopped")
				return
			}
		}
	}()
}

// Stop stops the expiry sweep
func (j *PromotionExpiryJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *PromotionExpiryJob) sweep() {
	now := time.Now()

	var expired []models.Promotion
	err := j.db.Where("status = ? AND end_date <= ?", models.PromotionStatusActive, now).
		Find(&expired).Error
	if err != nil {
		fmt.Printf("Error during promotion expiry sweep: %v\n", err)
		return
	}

	for _, promotion := range expired {
		promotion := promotion
		err := j.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&promotion).Update("status", models.PromotionStatusCompleted).Error; err != nil {
				return err
			}
			// Only clear the event if this promotion is still the one
			// reflected on it
			return tx.Model(&models.Event{}).
				Where("id = ? AND promotion_expiry <= ?", promotion.EventID, now).
				Updates(map[string]interface{}{
					"is_promoted":      false,
					"promotion_level":  models.PromotionNone,
					"promotion_expiry": nil,
					"promoter_id":      nil,
				}).Error
		})
		if err != nil {
			fmt.Printf("Error expiring promotion %s: %v\n", promotion.ID, err)
		}
	}

	if len(expired) > 0 {
		fmt.Printf("Promotion expiry sweep completed: %d promotion(s) expired\n", len(expired))
	}
}
