package service

import (
	"context"
	"fmt"
	"testing"

	"anoa.com/tutorcabinet/internal/model"
	applog "anoa.com/tutorcabinet/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.ScheduleSlot{},
		&model.Lesson{},
		&model.IncomeRecord{},
		&model.Material{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func nopLogger() *applog.Logger {
	return applog.NewNop()
}

func seedTutor(t *testing.T, db *gorm.DB, username string) model.Identity {
	t.Helper()

	tutor := &model.User{
		Username:  username,
		Password:  "secret",
		Role:      model.RoleTutor,
		FirstName: "Anna",
		LastName:  "Petrova",
		IsActive:  true,
	}
	if err := db.Create(tutor).Error; err != nil {
		t.Fatalf("failed to seed tutor: %v", err)
	}

	return model.Identity{
		UserID:    tutor.ID,
		Role:      model.RoleTutor,
		FirstName: tutor.FirstName,
		LastName:  tutor.LastName,
	}
}

func studentIdentity(id uint) model.Identity {
	return model.Identity{UserID: id, Role: model.RoleStudent}
}

func testContext() context.Context {
	return context.Background()
}
