package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// FileStorage defines the contract for the material file store (Cloudinary
// implementation). The rest of the app only ever sees the returned URL.
type FileStorage interface {
	// UploadFile uploads a file from reader and returns the secure URL.
	// folder is an optional logical folder in storage (e.g. "materials").
	UploadFile(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteFile deletes a file from storage using its URL.
	DeleteFile(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates the Cloudinary-backed implementation. It
// expects CLOUDINARY_URL (or the individual CLOUDINARY_* variables) in the
// environment, per the Cloudinary Go SDK docs.
func NewCloudinaryStorage() (FileStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld}, nil
}

func (s *cloudinaryStorage) UploadFile(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	// Random public ID so two tutors can upload files with the same name.
	publicID := fmt.Sprintf("%s-%s", uuid.NewString(), fileName)

	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		// Materials are PDFs, docs, archives; store them verbatim.
		ResourceType: "raw",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) DeleteFile(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID := s.extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	params := uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
		Invalidate:   api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID pulls the public ID out of a Cloudinary delivery URL.
// Example: https://res.cloudinary.com/demo/raw/upload/v123/materials/x.pdf -> materials/x
func (s *cloudinaryStorage) extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevantParts := parts[uploadIndex+1:]

	// Cloudinary versions are a 'v' followed by digits.
	if len(relevantParts) > 0 && strings.HasPrefix(relevantParts[0], "v") {
		relevantParts = relevantParts[1:]
	}

	if len(relevantParts) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevantParts, "/")
	ext := filepath.Ext(publicIDWithExt)
	return strings.TrimSuffix(publicIDWithExt, ext)
}
