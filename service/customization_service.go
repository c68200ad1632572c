package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"bracelet-customizer/customizer"
	"bracelet-customizer/models"
	"bracelet-customizer/repository"
	"bracelet-customizer/utils"
)

// CSVHeader is the column order of the customization export
var CSVHeader = []string{"ID", "Session ID", "Product ID", "Word", "Letter Color", "Charms", "Price", "Created At"}

// CustomizationService resolves, stores and hands off customizations
type CustomizationService struct {
	resolver *customizer.Resolver
	catalog  customizer.ProductCatalog
	repo     repository.CustomizationRepositoryInterface
	currency string
	now      func() time.Time
}

// NewCustomizationService creates a new CustomizationService
func NewCustomizationService(
	resolver *customizer.Resolver,
	catalog customizer.ProductCatalog,
	repo repository.CustomizationRepositoryInterface,
	currency string,
) *CustomizationService {
	return &CustomizationService{
		resolver: resolver,
		catalog:  catalog,
		repo:     repo,
		currency: currency,
		now:      time.Now,
	}
}

// Save validates and prices req, then stores it under its session.
// An Invalid result returns a nil response and nil error.
func (s *CustomizationService) Save(ctx context.Context, req models.CustomizationRequest) (*models.SaveCustomizationResponse, models.ValidationResult, error) {
	record, result, err := s.resolver.Resolve(ctx, req)
	if err != nil || !result.Valid {
		return nil, result, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, result, err
	}

	return &models.SaveCustomizationResponse{
		Success:   true,
		SessionID: record.SessionID,
		ID:        record.ID,
		Record:    *record,
	}, result, nil
}

// GetBySession returns the current record for a session
func (s *CustomizationService) GetBySession(ctx context.Context, sessionID, productID string) (*models.CustomizationRecord, error) {
	return s.repo.GetBySession(ctx, sessionID, productID)
}

// CartLines builds the cart handoff for a stored customization
func (s *CustomizationService) CartLines(ctx context.Context, key string, qty int) (*models.CartLinesResponse, error) {
	record, err := s.repo.GetByIDOrSession(ctx, key)
	if err != nil {
		return nil, err
	}

	lines, err := customizer.BuildCartLines(record, qty)
	if err != nil {
		return nil, err
	}

	var product *models.ProductConfig
	cfg, found, err := s.catalog.GetConfig(ctx, record.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product config: %w", err)
	}
	if found {
		product = &cfg
		lines[0].Name = cfg.Name
	} else {
		log.Printf("⚠️ CartLines: Product %s is no longer in the catalog", record.ProductID)
	}

	total := customizer.LinesTotal(lines)
	return &models.CartLinesResponse{
		CustomizationID: record.ID,
		Lines:           lines,
		Total:           total,
		FormattedTotal:  utils.FormatMoney(total, s.currency),
		Display:         customizer.DisplayFields(record, product),
	}, nil
}

// Stats summarizes stored customizations in the range
func (s *CustomizationService) Stats(ctx context.Context, tr repository.TimeRange) (*models.CustomizationStats, error) {
	return s.repo.Stats(ctx, tr)
}

// ExportCSV writes stored customizations in the range as CSV, newest first
func (s *CustomizationService) ExportCSV(ctx context.Context, w io.Writer, tr repository.TimeRange) (int, error) {
	records, err := s.repo.List(ctx, tr)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		names := make([]string, 0, len(r.SelectedCharms))
		for _, c := range r.SelectedCharms {
			names = append(names, c.Name)
		}
		row := []string{
			r.ID,
			r.SessionID,
			r.ProductID,
			r.Word,
			r.LetterColorID,
			strings.Join(names, ", "),
			utils.FormatMoney(r.ComputedPrice, s.currency),
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush csv: %w", err)
	}

	log.Printf("✅ ExportCSV: Exported %d customizations", len(records))
	return len(records), nil
}

// ErrInvalidRetention is returned for cleanup windows below one day
var ErrInvalidRetention = errors.New("days must be at least 1")

// Cleanup deletes customizations older than days
func (s *CustomizationService) Cleanup(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, ErrInvalidRetention
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
