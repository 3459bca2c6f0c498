package repository

import (
	"context"

	"anoa.com/tutorcabinet/internal/model"
	"gorm.io/gorm"
)

// weekdayOrder is the fixed monday-first ordering every schedule listing
// uses, regardless of insertion order.
const weekdayOrder = `CASE day_of_week
	WHEN 'monday' THEN 1
	WHEN 'tuesday' THEN 2
	WHEN 'wednesday' THEN 3
	WHEN 'thursday' THEN 4
	WHEN 'friday' THEN 5
	WHEN 'saturday' THEN 6
	WHEN 'sunday' THEN 7
END, start_time`

// StudentSlotRow is a slot as the student sees it.
type StudentSlotRow struct {
	model.ScheduleSlot `gorm:"embedded"`
	TopicTitle         string `gorm:"column:topic_title" json:"topic_title"`
	TutorName          string `gorm:"column:tutor_name" json:"tutor_name"`
}

// TutorSlotRow is a slot as the tutor sees it, carrying the student and
// billing context the timetable renders.
type TutorSlotRow struct {
	model.ScheduleSlot `gorm:"embedded"`
	TopicTitle         string          `gorm:"column:topic_title" json:"topic_title"`
	StudentName        string          `gorm:"column:student_name" json:"student_name"`
	StudentLastName    string          `gorm:"column:student_last_name" json:"student_last_name"`
	LessonPrice        float64         `gorm:"column:lesson_price" json:"lesson_price"`
	ExamType           *model.ExamType `gorm:"column:exam_type" json:"exam_type,omitempty"`
}

type ScheduleRepository interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	FindByID(ctx context.Context, id uint) (*model.ScheduleSlot, error)
	ListForStudent(ctx context.Context, studentID uint) ([]StudentSlotRow, error)
	ListForTutor(ctx context.Context, tutorID uint) ([]TutorSlotRow, error)
	RecordLesson(ctx context.Context, lesson *model.Lesson) error
	// CountLessons counts conducted lessons across all of a student's slots.
	CountLessons(ctx context.Context, studentID uint) (int64, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uint) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&slot).Error; err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *scheduleRepository) ListForStudent(ctx context.Context, studentID uint) ([]StudentSlotRow, error) {
	var rows []StudentSlotRow
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleSlot{}).
		Select("schedule.*, t.title AS topic_title, u.first_name AS tutor_name").
		Joins("JOIN topics t ON schedule.topic_id = t.id").
		Joins("JOIN users u ON schedule.tutor_id = u.id").
		Where("schedule.student_id = ? AND schedule.status = ?", studentID, model.SlotActive).
		Order(weekdayOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *scheduleRepository) ListForTutor(ctx context.Context, tutorID uint) ([]TutorSlotRow, error) {
	var rows []TutorSlotRow
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleSlot{}).
		Select("schedule.*, t.title AS topic_title, u.first_name AS student_name, u.last_name AS student_last_name, u.lesson_price AS lesson_price, u.exam_type AS exam_type").
		Joins("JOIN topics t ON schedule.topic_id = t.id").
		Joins("JOIN users u ON schedule.student_id = u.id").
		Where("schedule.tutor_id = ? AND schedule.status = ?", tutorID, model.SlotActive).
		Order(weekdayOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *scheduleRepository) RecordLesson(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *scheduleRepository) CountLessons(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("schedule_id IN (?)", r.db.Model(&model.ScheduleSlot{}).Select("id").Where("student_id = ?", studentID)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
