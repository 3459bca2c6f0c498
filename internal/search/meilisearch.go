package search

import (
	"fmt"
	"time"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/pkg/logger"
	"github.com/meilisearch/meilisearch-go"
)

// MaterialIndex keeps the Meilisearch "materials" index in step with the
// store and issues scoped search tokens so the frontend can query the index
// directly without seeing another tutor's materials.
type MaterialIndex interface {
	IndexMaterial(material *model.Material) error
	DeleteMaterial(id uint) error
	// GenerateSearchToken returns a tenant token restricted to one tutor's
	// materials (a tutor's own, or the owning tutor of a student).
	GenerateSearchToken(tutorID uint) (string, error)
}

type meiliMaterialIndex struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	log           *logger.Logger
}

func NewMaterialIndex(client meilisearch.ServiceManager, log *logger.Logger) MaterialIndex {
	s := &meiliMaterialIndex{
		client: client,
		log:    log,
	}
	s.initIndex()
	s.initSigningKey()
	return s
}

func (s *meiliMaterialIndex) initIndex() {
	filterableAttrs := []string{"tutor_id", "category", "exam_type"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index("materials").UpdateFilterableAttributes(&filterableInterface); err != nil {
		s.log.Warn("failed to update materials filterable attributes", "error", err)
	}

	sortableAttrs := []string{"download_count"}
	if _, err := s.client.Index("materials").UpdateSortableAttributes(&sortableAttrs); err != nil {
		s.log.Warn("failed to update materials sortable attributes", "error", err)
	}
}

func (s *meiliMaterialIndex) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		s.log.Warn("failed to get meilisearch keys", "error", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "MaterialTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)
	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign material search tenant tokens",
		Name:        "MaterialTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"materials"},
		ExpiresAt:   expiry,
	})
	if err != nil {
		s.log.Warn("failed to create meilisearch signing key", "error", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	s.log.Info("created meilisearch material signing key")
}

type meiliMaterialDoc struct {
	ID            uint   `json:"id"`
	TutorID       uint   `json:"tutor_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	ExamType      string `json:"exam_type"`
	FileType      string `json:"file_type"`
	DownloadCount int    `json:"download_count"`
}

func (s *meiliMaterialIndex) IndexMaterial(material *model.Material) error {
	doc := meiliMaterialDoc{
		ID:            material.ID,
		TutorID:       material.TutorID,
		Title:         material.Title,
		Description:   material.Description,
		Category:      material.Category,
		ExamType:      string(material.ExamType),
		FileType:      material.FileType,
		DownloadCount: material.DownloadCount,
	}

	task, err := s.client.Index("materials").AddDocuments([]meiliMaterialDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	s.log.Debug("indexed material", "material_id", material.ID, "task_id", task.TaskUID)
	return nil
}

func (s *meiliMaterialIndex) DeleteMaterial(id uint) error {
	_, err := s.client.Index("materials").DeleteDocument(fmt.Sprintf("%d", id))
	return err
}

func (s *meiliMaterialIndex) GenerateSearchToken(tutorID uint) (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		"materials": map[string]any{
			"filter": fmt.Sprintf("tutor_id = %d", tutorID),
		},
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func strPtr(s string) *string {
	return &s
}
