package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/logger"
	"gorm.io/gorm"
)

type CreateSlotInput struct {
	StudentID  uint          `json:"student_id" binding:"required"`
	TopicID    uint          `json:"topic_id" binding:"required"`
	DayOfWeek  model.Weekday `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime  string        `json:"start_time" binding:"required,datetime=15:04"`
	LessonLink *string       `json:"lesson_link"`
}

// ScheduleView is the role-shaped schedule: exactly one of the two listings
// is populated depending on who asks.
type ScheduleView struct {
	Tutor   []repository.TutorSlotRow   `json:"tutor,omitempty"`
	Student []repository.StudentSlotRow `json:"student,omitempty"`
}

type ScheduleService interface {
	// CreateWeeklySlot adds a recurring slot for the acting tutor. End time
	// is always start + 1h. No overlap validation is performed: the store
	// accepts double-booked slots, matching the deployed behavior.
	CreateWeeklySlot(ctx context.Context, actor model.Identity, input CreateSlotInput) (*model.ScheduleSlot, error)
	// ListSchedule returns the actor's own schedule: the tutor view for
	// tutors, the student view for students.
	ListSchedule(ctx context.Context, actor model.Identity) (*ScheduleView, error)
	// RecordLesson appends a conducted-lesson row for a slot owned by the
	// acting tutor. It never touches the income ledger.
	RecordLesson(ctx context.Context, actor model.Identity, slotID uint) (*model.Lesson, error)
}

type scheduleService struct {
	schedule repository.ScheduleRepository
	log      *logger.Logger
}

func NewScheduleService(schedule repository.ScheduleRepository, log *logger.Logger) ScheduleService {
	return &scheduleService{schedule: schedule, log: log}
}

func (s *scheduleService) CreateWeeklySlot(ctx context.Context, actor model.Identity, input CreateSlotInput) (*model.ScheduleSlot, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}

	endTime, err := lessonEndTime(input.StartTime)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	slot := &model.ScheduleSlot{
		StudentID:  input.StudentID,
		TutorID:    actor.UserID,
		TopicID:    input.TopicID,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.StartTime,
		EndTime:    endTime,
		LessonLink: input.LessonLink,
		Status:     model.SlotActive,
	}

	if err := s.schedule.Create(ctx, slot); err != nil {
		s.log.Error("slot creation failed", "tutor_id", actor.UserID, "error", err)
		return nil, err
	}

	return slot, nil
}

func (s *scheduleService) ListSchedule(ctx context.Context, actor model.Identity) (*ScheduleView, error) {
	switch actor.Role {
	case model.RoleTutor:
		rows, err := s.schedule.ListForTutor(ctx, actor.UserID)
		if err != nil {
			s.log.Error("tutor schedule listing failed", "tutor_id", actor.UserID, "error", err)
			return nil, err
		}
		return &ScheduleView{Tutor: rows}, nil
	case model.RoleStudent:
		rows, err := s.schedule.ListForStudent(ctx, actor.UserID)
		if err != nil {
			s.log.Error("student schedule listing failed", "student_id", actor.UserID, "error", err)
			return nil, err
		}
		return &ScheduleView{Student: rows}, nil
	default:
		return nil, apperror.ErrForbidden
	}
}

func (s *scheduleService) RecordLesson(ctx context.Context, actor model.Identity, slotID uint) (*model.Lesson, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}

	slot, err := s.schedule.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.log.Error("slot lookup failed", "slot_id", slotID, "error", err)
		return nil, err
	}

	if slot.TutorID != actor.UserID {
		return nil, apperror.ErrForbidden
	}
	if slot.Status != model.SlotActive {
		return nil, apperror.ErrBadRequest
	}

	lesson := &model.Lesson{
		ScheduleID: slot.ID,
		LessonDate: time.Now(),
	}
	if err := s.schedule.RecordLesson(ctx, lesson); err != nil {
		s.log.Error("lesson recording failed", "slot_id", slotID, "error", err)
		return nil, err
	}

	return lesson, nil
}
