package repository

import (
	"context"

	"anoa.com/tutorcabinet/internal/model"
	"gorm.io/gorm"
)

// StudentRow is a student joined with their active weekly slot, the shape the
// cabinet listing renders.
type StudentRow struct {
	model.User `gorm:"embedded"`
	DayOfWeek  *model.Weekday `gorm:"column:day_of_week" json:"day_of_week,omitempty"`
	LessonTime *string        `gorm:"column:lesson_time" json:"lesson_time,omitempty"`
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// CreateStudent writes the student, their topic and their weekly slot in
	// one transaction. Partial application (user without slot) must never
	// hit the store.
	CreateStudent(ctx context.Context, student *model.User, topic *model.Topic, slot *model.ScheduleSlot) error
	// Deactivate soft-deletes the student and cancels all their active slots
	// in one transaction. Returns the number of user rows affected.
	Deactivate(ctx context.Context, studentID uint) (int64, error)
	FindStudentsByTutor(ctx context.Context, tutorID uint) ([]StudentRow, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) CreateStudent(ctx context.Context, student *model.User, topic *model.Topic, slot *model.ScheduleSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}

		if err := tx.Create(topic).Error; err != nil {
			return err
		}

		slot.StudentID = student.ID
		slot.TopicID = topic.ID
		if err := tx.Create(slot).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *userRepository) Deactivate(ctx context.Context, studentID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND role = ? AND is_active = ?", studentID, model.RoleStudent, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}

		return tx.Model(&model.ScheduleSlot{}).
			Where("student_id = ? AND status = ?", studentID, model.SlotActive).
			Update("status", model.SlotCancelled).Error
	})
	return affected, err
}

func (r *userRepository) FindStudentsByTutor(ctx context.Context, tutorID uint) ([]StudentRow, error) {
	var rows []StudentRow
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.*, s.day_of_week AS day_of_week, s.start_time AS lesson_time").
		Joins("LEFT JOIN schedule s ON users.id = s.student_id AND s.status = ?", model.SlotActive).
		Where("users.created_by = ? AND users.role = ? AND users.is_active = ?", tutorID, model.RoleStudent, true).
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
