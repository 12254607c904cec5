// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/google/uuid"

	"sees-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Payment{},
		&models.Promotion{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better query performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Upcoming-event listings filter on date and promotion tier
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_promoted_date ON events(is_promoted DESC, date_time ASC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	// Revenue analytics group payments by type within a time window
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_payments_type_created ON payments(payment_type, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for payments: %v\n", err)
	}

	// Promotion expiry sweep scans active promotions by end date
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_promotions_status_end ON promotions(status, end_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for promotions: %v\n", err)
	}

	return nil
}

// SeedData loads development fixtures: one user per role and a few upcoming
// events. It is a no-op once any user exists.
func SeedData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:       uuid.New().String(),
		Name:     "Ava Admin",
		Email:    "admin@sees.events",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	promoter := models.User{
		ID:       uuid.New().String(),
		Name:     "Pete Promoter",
		Email:    "promoter@sees.events",
		Password: string(hashed),
		Role:     models.RolePromoter,
	}
	client := models.User{
		ID:           uuid.New().String(),
		Name:         "Cleo Client",
		Email:        "client@sees.events",
		Password:     string(hashed),
		Role:         models.RoleClient,
		Skills:       models.StringSliceType{"go", "databases"},
		Expertise:    models.StringSliceType{"workshop"},
		Achievements: models.StringSliceType{"aws certified"},
	}

	if err := db.Create([]*models.User{&admin, &promoter, &client}).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	events := []*models.Event{
		{
			ID:          uuid.New().String(),
			Title:       "Go Concurrency Workshop",
			Description: "Hands-on goroutines, channels and race detection.",
			DateTime:    time.Now().AddDate(0, 0, 14),
			Location:    "Room 204, Engineering Building",
			Category:    models.CategoryWorkshop,
			Capacity:    30,
			IsPublic:    true,
			OrganizerID: admin.ID,
		},
		{
			ID:              uuid.New().String(),
			Title:           "Careers in Data Engineering",
			Description:     "Panel discussion and networking with industry guests.",
			DateTime:        time.Now().AddDate(0, 1, 0),
			Location:        "Main Auditorium",
			Category:        models.CategoryNetworking,
			Capacity:        150,
			IsPublic:        true,
			RegistrationFee: 15,
			OrganizerID:     admin.ID,
		},
	}

	if err := db.Create(events).Error; err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	return nil
}
