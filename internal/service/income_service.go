package service

import (
	"context"
	"errors"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/logger"
	"gorm.io/gorm"
)

type AddIncomeInput struct {
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	Student string  `json:"student" binding:"required"`
	Exam    string  `json:"exam" binding:"omitempty,oneof=oge ege"`
	Price   float64 `json:"price" binding:"required,gt=0"`
	Status  string  `json:"status" binding:"omitempty,oneof=pending paid overdue"`
}

type UpdateIncomeStatusInput struct {
	Status model.IncomeStatus `json:"status" binding:"required,oneof=pending paid overdue"`
}

type IncomeService interface {
	Add(ctx context.Context, actor model.Identity, input AddIncomeInput) (*model.IncomeRecord, error)
	List(ctx context.Context, actor model.Identity) ([]model.IncomeRecord, error)
	UpdateStatus(ctx context.Context, actor model.Identity, id uint, status model.IncomeStatus) error
	// Reset deletes every record of the acting tutor. Irreversible;
	// confirmation is the caller's concern.
	Reset(ctx context.Context, actor model.Identity) error
}

type incomeService struct {
	income repository.IncomeRepository
	log    *logger.Logger
}

func NewIncomeService(income repository.IncomeRepository, log *logger.Logger) IncomeService {
	return &incomeService{income: income, log: log}
}

func (s *incomeService) Add(ctx context.Context, actor model.Identity, input AddIncomeInput) (*model.IncomeRecord, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}

	status := model.IncomeStatus(input.Status)
	if status == "" {
		status = model.IncomePending
	}

	record := &model.IncomeRecord{
		TutorID:     actor.UserID,
		LessonDate:  input.Date,
		StudentName: input.Student,
		Exam:        input.Exam,
		Price:       input.Price,
		Status:      status,
	}

	if err := s.income.Create(ctx, record); err != nil {
		s.log.Error("income record creation failed", "tutor_id", actor.UserID, "error", err)
		return nil, err
	}

	return record, nil
}

func (s *incomeService) List(ctx context.Context, actor model.Identity) ([]model.IncomeRecord, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}

	records, err := s.income.ListByTutor(ctx, actor.UserID)
	if err != nil {
		s.log.Error("income listing failed", "tutor_id", actor.UserID, "error", err)
		return nil, err
	}

	return records, nil
}

func (s *incomeService) UpdateStatus(ctx context.Context, actor model.Identity, id uint, status model.IncomeStatus) error {
	if !actor.IsTutor() {
		return apperror.ErrForbidden
	}
	if !status.Valid() {
		return apperror.ErrInvalidInput
	}

	record, err := s.income.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		s.log.Error("income lookup failed", "record_id", id, "error", err)
		return err
	}
	if record.TutorID != actor.UserID {
		return apperror.ErrForbidden
	}

	// The tutor_id guard in the UPDATE is what actually protects against
	// cross-tutor tampering; the lookup above only shapes the error.
	affected, err := s.income.UpdateStatus(ctx, id, actor.UserID, status)
	if err != nil {
		s.log.Error("income status update failed", "record_id", id, "error", err)
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (s *incomeService) Reset(ctx context.Context, actor model.Identity) error {
	if !actor.IsTutor() {
		return apperror.ErrForbidden
	}

	if err := s.income.DeleteAllByTutor(ctx, actor.UserID); err != nil {
		s.log.Error("income reset failed", "tutor_id", actor.UserID, "error", err)
		return err
	}

	s.log.Info("income ledger reset", "tutor_id", actor.UserID)
	return nil
}
