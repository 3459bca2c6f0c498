package bootstrap

import (
	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/pkg/logger"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.ScheduleSlot{},
		&model.Lesson{},
		&model.IncomeRecord{},
		&model.Material{},
	)
}

// EnsureDefaultTutor seeds the "tutor" account the cabinet ships with.
// Development only; the credential matches the original deployment.
func EnsureDefaultTutor(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", "tutor").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("default tutor already exists, skipping seed")
		return nil
	}

	tutor := model.User{
		Username:    "tutor",
		Password:    "tutor",
		Role:        model.RoleTutor,
		FirstName:   "Main",
		LastName:    "Tutor",
		LessonPrice: 1500,
		ContactInfo: "tutor@example.com",
		IsActive:    true,
	}

	if err := db.Create(&tutor).Error; err != nil {
		return err
	}

	log.Info("default tutor seeded", "username", tutor.Username)
	return nil
}
