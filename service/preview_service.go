package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"bracelet-customizer/models"
	"bracelet-customizer/repository"
)

// PreviewService attaches rendered bracelet previews to stored customizations
type PreviewService struct {
	repo  repository.CustomizationRepositoryInterface
	store PreviewStore
	now   func() time.Time
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(repo repository.CustomizationRepositoryInterface, store PreviewStore) *PreviewService {
	return &PreviewService{repo: repo, store: store, now: time.Now}
}

// UploadPreview decodes a data URL, normalizes the image and stores it as
// preview_<id>_<unix>.png. key may be a record id or a session id.
func (s *PreviewService) UploadPreview(ctx context.Context, key, dataURL string) (*models.PreviewUploadResponse, error) {
	log.Printf("📥 UploadPreview: Received preview for %s", key)

	record, err := s.repo.GetByIDOrSession(ctx, key)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	png, err := OptimizePreview(raw)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("preview_%s_%d.png", record.ID, s.now().Unix())
	url, err := s.store.Put(ctx, name, png)
	if err != nil {
		log.Printf("❌ UploadPreview: Error storing %s: %v", name, err)
		return nil, fmt.Errorf("failed to store preview: %w", err)
	}

	if err := s.repo.SetPreviewImage(ctx, record.ID, url); err != nil {
		return nil, err
	}

	log.Printf("✅ UploadPreview: Stored %s for customization %s", url, record.ID)
	return &models.PreviewUploadResponse{
		Success:         true,
		ImageURL:        url,
		CustomizationID: record.ID,
		FileSize:        len(png),
	}, nil
}
