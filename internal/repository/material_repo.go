package repository

import (
	"context"

	"anoa.com/tutorcabinet/internal/model"
	"gorm.io/gorm"
)

type MaterialFilter struct {
	Category string
	ExamType model.MaterialExam
}

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	FindByID(ctx context.Context, id uint) (*model.Material, error)
	ListByTutor(ctx context.Context, tutorID uint, filter MaterialFilter) ([]model.Material, error)
	// ListForStudent resolves the student's owning tutor through created_by
	// and returns that tutor's materials.
	ListForStudent(ctx context.Context, studentID uint, filter MaterialFilter) ([]model.Material, error)
	// Delete only removes the row when it belongs to tutorID. Returns the
	// number of rows affected.
	Delete(ctx context.Context, id, tutorID uint) (int64, error)
	IncrementDownloadCount(ctx context.Context, id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) FindByID(ctx context.Context, id uint) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&material).Error; err != nil {
		return nil, err
	}

	return &material, nil
}

func applyMaterialFilter(q *gorm.DB, filter MaterialFilter) *gorm.DB {
	if filter.Category != "" {
		q = q.Where("materials.category = ?", filter.Category)
	}
	if filter.ExamType != "" && filter.ExamType != model.MaterialBoth {
		q = q.Where("materials.exam_type IN (?, ?)", filter.ExamType, model.MaterialBoth)
	}
	return q
}

func (r *materialRepository) ListByTutor(ctx context.Context, tutorID uint, filter MaterialFilter) ([]model.Material, error) {
	var materials []model.Material
	q := r.db.WithContext(ctx).
		Where("materials.tutor_id = ?", tutorID)
	err := applyMaterialFilter(q, filter).
		Order("materials.id DESC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) ListForStudent(ctx context.Context, studentID uint, filter MaterialFilter) ([]model.Material, error) {
	var materials []model.Material
	q := r.db.WithContext(ctx).
		Model(&model.Material{}).
		Joins("JOIN users u ON u.created_by = materials.tutor_id").
		Where("u.id = ? AND u.role = ?", studentID, model.RoleStudent)
	err := applyMaterialFilter(q, filter).
		Order("materials.id DESC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) Delete(ctx context.Context, id, tutorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		Delete(&model.Material{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (r *materialRepository) IncrementDownloadCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Material{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}
