package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/internal/search"
	"anoa.com/tutorcabinet/pkg/apperror"
	"anoa.com/tutorcabinet/pkg/logger"
	"anoa.com/tutorcabinet/pkg/storage"
	"gorm.io/gorm"
)

type UploadMaterialInput struct {
	Title       string             `form:"title" binding:"required,max=255"`
	Description string             `form:"description"`
	Category    string             `form:"category" binding:"required,max=100"`
	ExamType    model.MaterialExam `form:"exam_type" binding:"required,oneof=oge ege both"`
}

// MaterialFile is the uploaded file, decoupled from the multipart plumbing.
type MaterialFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

// DownloadResult carries what the frontend needs to fetch the file.
type DownloadResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	DownloadCount int    `json:"download_count"`
}

type MaterialService interface {
	Upload(ctx context.Context, actor model.Identity, input UploadMaterialInput, file MaterialFile) (*model.Material, error)
	// List returns the actor's own materials for tutors, and the owning
	// tutor's materials for students.
	List(ctx context.Context, actor model.Identity, filter repository.MaterialFilter) ([]model.Material, error)
	Delete(ctx context.Context, actor model.Identity, id uint) error
	// Download resolves the file URL and bumps the download counter.
	Download(ctx context.Context, actor model.Identity, id uint) (*DownloadResult, error)
	// SearchToken issues a tenant token scoped to the materials the actor
	// may see.
	SearchToken(ctx context.Context, actor model.Identity) (string, error)
}

type materialService struct {
	materials repository.MaterialRepository
	users     repository.UserRepository
	files     storage.FileStorage
	index     search.MaterialIndex
	log       *logger.Logger
}

func NewMaterialService(materials repository.MaterialRepository, users repository.UserRepository, files storage.FileStorage, index search.MaterialIndex, log *logger.Logger) MaterialService {
	return &materialService{
		materials: materials,
		users:     users,
		files:     files,
		index:     index,
		log:       log,
	}
}

func (s *materialService) Upload(ctx context.Context, actor model.Identity, input UploadMaterialInput, file MaterialFile) (*model.Material, error) {
	if !actor.IsTutor() {
		return nil, apperror.ErrForbidden
	}
	if file.Reader == nil || file.FileName == "" {
		return nil, apperror.ErrInvalidInput
	}

	url, err := s.files.UploadFile(ctx, file.Reader, "materials", file.FileName)
	if err != nil {
		s.log.Error("material upload failed", "tutor_id", actor.UserID, "error", err)
		return nil, err
	}

	material := &model.Material{
		TutorID:     actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		FileType:    strings.TrimPrefix(strings.ToLower(filepath.Ext(file.FileName)), "."),
		FileSize:    file.Size,
		FilePath:    url,
		Category:    input.Category,
		ExamType:    input.ExamType,
	}

	if err := s.materials.Create(ctx, material); err != nil {
		s.log.Error("material creation failed", "tutor_id", actor.UserID, "error", err)
		// The row never landed; don't leave the file orphaned.
		if delErr := s.files.DeleteFile(ctx, url); delErr != nil {
			s.log.Warn("orphaned material file cleanup failed", "url", url, "error", delErr)
		}
		return nil, err
	}

	if s.index != nil {
		if err := s.index.IndexMaterial(material); err != nil {
			s.log.Warn("material indexing failed", "material_id", material.ID, "error", err)
		}
	}

	return material, nil
}

func (s *materialService) List(ctx context.Context, actor model.Identity, filter repository.MaterialFilter) ([]model.Material, error) {
	switch actor.Role {
	case model.RoleTutor:
		return s.materials.ListByTutor(ctx, actor.UserID, filter)
	case model.RoleStudent:
		return s.materials.ListForStudent(ctx, actor.UserID, filter)
	default:
		return nil, apperror.ErrForbidden
	}
}

func (s *materialService) Delete(ctx context.Context, actor model.Identity, id uint) error {
	if !actor.IsTutor() {
		return apperror.ErrForbidden
	}

	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		s.log.Error("material lookup failed", "material_id", id, "error", err)
		return err
	}
	if material.TutorID != actor.UserID {
		return apperror.ErrForbidden
	}

	affected, err := s.materials.Delete(ctx, id, actor.UserID)
	if err != nil {
		s.log.Error("material deletion failed", "material_id", id, "error", err)
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}

	if err := s.files.DeleteFile(ctx, material.FilePath); err != nil {
		s.log.Warn("material file deletion failed", "material_id", id, "error", err)
	}
	if s.index != nil {
		if err := s.index.DeleteMaterial(id); err != nil {
			s.log.Warn("material deindexing failed", "material_id", id, "error", err)
		}
	}

	return nil
}

func (s *materialService) Download(ctx context.Context, actor model.Identity, id uint) (*DownloadResult, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		s.log.Error("material lookup failed", "material_id", id, "error", err)
		return nil, err
	}

	ownerID, err := s.visibleTutorID(ctx, actor)
	if err != nil {
		return nil, err
	}
	if material.TutorID != ownerID {
		return nil, apperror.ErrForbidden
	}

	if err := s.materials.IncrementDownloadCount(ctx, id); err != nil {
		s.log.Error("download counter update failed", "material_id", id, "error", err)
		return nil, err
	}

	return &DownloadResult{
		URL:           material.FilePath,
		Title:         material.Title,
		DownloadCount: material.DownloadCount + 1,
	}, nil
}

func (s *materialService) SearchToken(ctx context.Context, actor model.Identity) (string, error) {
	if s.index == nil {
		return "", apperror.ErrNotFound
	}

	tutorID, err := s.visibleTutorID(ctx, actor)
	if err != nil {
		return "", err
	}

	return s.index.GenerateSearchToken(tutorID)
}

// visibleTutorID resolves whose materials the actor may see: a tutor sees
// their own, a student sees their creator's.
func (s *materialService) visibleTutorID(ctx context.Context, actor model.Identity) (uint, error) {
	switch actor.Role {
	case model.RoleTutor:
		return actor.UserID, nil
	case model.RoleStudent:
		student, err := s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			s.log.Error("student lookup failed", "student_id", actor.UserID, "error", err)
			return 0, err
		}
		if student.CreatedBy == nil {
			return 0, apperror.ErrForbidden
		}
		return *student.CreatedBy, nil
	default:
		return 0, apperror.ErrForbidden
	}
}
