package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/progress"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/logger"
	"gorm.io/gorm"
)

type CreateStudentInput struct {
	Username    string         `json:"username" binding:"required,min=3,max=50"`
	Password    string         `json:"password" binding:"required,min=4"`
	FirstName   string         `json:"first_name" binding:"required"`
	LastName    string         `json:"last_name" binding:"required"`
	ExamType    model.ExamType `json:"exam_type" binding:"required,oneof=oge ege"`
	LessonPrice float64        `json:"lesson_price" binding:"required,gt=0"`
	ContactInfo string         `json:"contact_info"`
	DayOfWeek   model.Weekday  `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	LessonTime  string         `json:"lesson_time" binding:"required,datetime=15:04"`
	LessonLink  *string        `json:"lesson_link"`
}

// StudentView is one row of the tutor's student listing: the student, their
// active slot, and the derived progress/lesson-count fields.
type StudentView struct {
	repository.StudentRow
	Progress    int   `json:"progress"`
	LessonCount int64 `json:"lesson_count"`
}

type StudentService interface {
	// CreateStudent writes the student, one topic and one weekly schedule
	// slot atomically and returns the new student id.
	CreateStudent(ctx context.Context, actor model.Identity, input CreateStudentInput) (uint, error)
	ListStudents(ctx context.Context, actor model.Identity) ([]StudentView, error)
	// DeactivateStudent soft-deletes the student and cancels all their
	// active slots. Historical income and lesson rows are kept.
	DeactivateStudent(ctx context.Context, actor model.Identity, studentID uint) error
}

type studentService struct {
	users    repository.UserRepository
	schedule repository.ScheduleRepository
	progress progress.Strategy
	log      *logger.Logger
}

func NewStudentService(users repository.UserRepository, schedule repository.ScheduleRepository, strategy progress.Strategy, log *logger.Logger) StudentService {
	return &studentService{
		users:    users,
		schedule: schedule,
		progress: strategy,
		log:      log,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, actor model.Identity, input CreateStudentInput) (uint, error) {
	if !actor.IsTutor() {
		return 0, apperror.ErrForbidden
	}

	exists, err := s.users.UsernameExists(ctx, input.Username)
	if err != nil {
		s.log.Error("username lookup failed", "username", input.Username, "error", err)
		return 0, err
	}
	if exists {
		return 0, apperror.ErrConflict
	}

	endTime, err := lessonEndTime(input.LessonTime)
	if err != nil {
		return 0, apperror.ErrInvalidInput
	}

	examType := input.ExamType
	student := &model.User{
		Username:    input.Username,
		Password:    input.Password,
		Role:        model.RoleStudent,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		ExamType:    &examType,
		LessonPrice: input.LessonPrice,
		ContactInfo: input.ContactInfo,
		IsActive:    true,
		CreatedBy:   &actor.UserID,
	}

	topic := &model.Topic{
		Title:       fmt.Sprintf("Lessons with %s %s", input.FirstName, input.LastName),
		Description: fmt.Sprintf("Individual %s preparation", strings.ToUpper(string(input.ExamType))),
		CreatedBy:   actor.UserID,
	}

	slot := &model.ScheduleSlot{
		TutorID:    actor.UserID,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.LessonTime,
		EndTime:    endTime,
		LessonLink: input.LessonLink,
		Status:     model.SlotActive,
	}

	if err := s.users.CreateStudent(ctx, student, topic, slot); err != nil {
		s.log.Error("student creation failed", "username", input.Username, "error", err)
		return 0, err
	}

	s.log.Info("student created",
		"student_id", student.ID,
		"tutor_id", actor.UserID,
		"day_of_week", slot.DayOfWeek,
		"start_time", slot.StartTime,
	)

	return student.ID, nil
}

func (s *studentService) ListStudents(ctx context.Context, actor model.Identity) ([]StudentView, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.users.FindStudentsByTutor(ctx, actor.UserID)
	if err != nil {
		s.log.Error("student listing failed", "tutor_id", actor.UserID, "error", err)
		return nil, err
	}

	views := make([]StudentView, 0, len(rows))
	for _, row := range rows {
		count, err := s.schedule.CountLessons(ctx, row.ID)
		if err != nil {
			s.log.Error("lesson count failed", "student_id", row.ID, "error", err)
			return nil, err
		}

		views = append(views, StudentView{
			StudentRow:  row,
			Progress:    s.progress.Compute(count),
			LessonCount: count,
		})
	}

	return views, nil
}

func (s *studentService) DeactivateStudent(ctx context.Context, actor model.Identity, studentID uint) error {
	if !actor.IsTutor() {
		return apperror.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		s.log.Error("student lookup failed", "student_id", studentID, "error", err)
		return err
	}

	if target.Role != model.RoleStudent || !target.IsActive {
		return apperror.ErrNotFound
	}
	if target.CreatedBy == nil || *target.CreatedBy != actor.UserID {
		return apperror.ErrForbidden
	}

	affected, err := s.users.Deactivate(ctx, studentID)
	if err != nil {
		s.log.Error("student deactivation failed", "student_id", studentID, "error", err)
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}

	s.log.Info("student deactivated", "student_id", studentID, "tutor_id", actor.UserID)
	return nil
}

// lessonEndTime computes start + 1h on a wall clock. The arithmetic is
// modulo 24h and the weekday is never adjusted: "23:30" yields "00:30" on
// the same slot.
func lessonEndTime(start string) (string, error) {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", err
	}
	return t.Add(time.Hour).Format("15:04"), nil
}
