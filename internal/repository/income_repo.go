package repository

import (
	"context"

	"anoa.com/tutorcabinet/internal/model"
	"gorm.io/gorm"
)

type IncomeRepository interface {
	Create(ctx context.Context, record *model.IncomeRecord) error
	FindByID(ctx context.Context, id uint) (*model.IncomeRecord, error)
	ListByTutor(ctx context.Context, tutorID uint) ([]model.IncomeRecord, error)
	// UpdateStatus only touches rows owned by tutorID; the WHERE tutor_id
	// guard is the protection against cross-tutor tampering. Returns the
	// number of rows affected.
	UpdateStatus(ctx context.Context, id, tutorID uint, status model.IncomeStatus) (int64, error)
	DeleteAllByTutor(ctx context.Context, tutorID uint) error
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, record *model.IncomeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *incomeRepository) FindByID(ctx context.Context, id uint) (*model.IncomeRecord, error) {
	var record model.IncomeRecord
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *incomeRepository) ListByTutor(ctx context.Context, tutorID uint) ([]model.IncomeRecord, error) {
	var records []model.IncomeRecord
	err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("lesson_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *incomeRepository) UpdateStatus(ctx context.Context, id, tutorID uint, status model.IncomeStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.IncomeRecord{}).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (r *incomeRepository) DeleteAllByTutor(ctx context.Context, tutorID uint) error {
	return r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Delete(&model.IncomeRecord{}).Error
}
