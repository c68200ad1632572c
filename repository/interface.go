package repository

import (
	"context"
	"errors"
	"time"

	"bracelet-customizer/models"
)

// ErrNotFound is returned when no customization matches the lookup
var ErrNotFound = errors.New("customization not found")

// TimeRange bounds listing queries. Zero times are open ends.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// CustomizationRepositoryInterface defines the contract for customization storage.
// Save replaces any earlier record for the same session (last write wins).
type CustomizationRepositoryInterface interface {
	Save(ctx context.Context, record *models.CustomizationRecord) error
	GetBySession(ctx context.Context, sessionID, productID string) (*models.CustomizationRecord, error)
	GetByIDOrSession(ctx context.Context, key string) (*models.CustomizationRecord, error)
	SetPreviewImage(ctx context.Context, id, url string) error
	Stats(ctx context.Context, r TimeRange) (*models.CustomizationStats, error)
	List(ctx context.Context, r TimeRange) ([]models.CustomizationRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
