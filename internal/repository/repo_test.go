package repository

import (
	"context"
	"fmt"
	"testing"

	"anoa.com/tutorcabinet/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

func createTutor(t *testing.T, db *gorm.DB, username string) *model.User {
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
		t.Fatalf("failed to create tutor: %v", err)
	}
	return tutor
}

func createStudent(t *testing.T, db *gorm.DB, username string, tutorID uint) *model.User {
	t.Helper()

	exam := model.ExamOGE
	student := &model.User{
		Username:    username,
		Password:    "secret",
		Role:        model.RoleStudent,
		FirstName:   "Ivan",
		LastName:    "Sidorov",
		ExamType:    &exam,
		LessonPrice: 1500,
		IsActive:    true,
		CreatedBy:   &tutorID,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return student
}

func createTopic(t *testing.T, db *gorm.DB, tutorID uint) *model.Topic {
	t.Helper()

	topic := &model.Topic{Title: "Lessons", CreatedBy: tutorID}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}
	return topic
}

func createSlot(t *testing.T, db *gorm.DB, studentID, tutorID, topicID uint, day model.Weekday, start, end string) *model.ScheduleSlot {
	t.Helper()

	slot := &model.ScheduleSlot{
		StudentID: studentID,
		TutorID:   tutorID,
		TopicID:   topicID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Status:    model.SlotActive,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
	return slot
}

func testContext() context.Context {
	return context.Background()
}
