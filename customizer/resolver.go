package customizer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"bracelet-customizer/models"
	"bracelet-customizer/pricing"
)

// SessionPrefix marks generated session ids
const SessionPrefix = "session_"

// ProductCatalog resolves product ids to configs. Unknown ids return found=false;
// only storage failures are returned as errors.
type ProductCatalog interface {
	GetConfig(ctx context.Context, productID string) (models.ProductConfig, bool, error)
}

// Resolver turns a raw request into a priced CustomizationRecord
type Resolver struct {
	catalog   ProductCatalog
	validator *Validator
	now       func() time.Time
	newID     func() string
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock overrides the record timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator overrides record and session id generation
func WithIDGenerator(newID func() string) Option {
	return func(r *Resolver) { r.newID = newID }
}

// NewResolver creates a Resolver
func NewResolver(catalog ProductCatalog, validator *Validator, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:   catalog,
		validator: validator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewSessionID returns a fresh "session_<uuid>" id
func NewSessionID() string {
	return SessionPrefix + uuid.NewString()
}

// Resolve validates and prices req. An Invalid result comes back with a nil record and nil error;
// the error is reserved for catalog failures.
func (r *Resolver) Resolve(ctx context.Context, req models.CustomizationRequest) (*models.CustomizationRecord, models.ValidationResult, error) {
	cfg, found, err := r.catalog.GetConfig(ctx, req.ProductID)
	if err != nil {
		log.Printf("❌ Resolve: Error loading product %s: %v", req.ProductID, err)
		return nil, models.ValidationResult{}, fmt.Errorf("failed to get product config: %w", err)
	}

	var product *models.ProductConfig
	if found {
		product = &cfg
	}

	result := r.validator.Validate(req, product)
	if !result.Valid {
		log.Printf("⚠️ Resolve: Product %s rejected: %s", req.ProductID, result.Reason)
		return nil, result, nil
	}
	n := result.Normalized

	charmPrices := make([]int64, len(n.SelectedCharms))
	for i, c := range n.SelectedCharms {
		charmPrices[i] = c.Price
	}
	total, err := pricing.ComputePrice(product.BasePrice, n.LetterColorSurcharge, charmPrices)
	if err != nil {
		return nil, result, fmt.Errorf("failed to compute price: %w", err)
	}
	log.Printf("💰 Resolve: Product %s base=%d color=%d charms=%d total=%d",
		n.ProductID, product.BasePrice, n.LetterColorSurcharge, len(charmPrices), total)

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = SessionPrefix + r.newID()
	}

	record := &models.CustomizationRecord{
		ID:             r.newID(),
		SessionID:      sessionID,
		ProductID:      n.ProductID,
		Word:           n.Word,
		LetterColorID:  n.LetterColorID,
		SelectedCharms: n.SelectedCharms,
		Size:           n.Size,
		ComputedPrice:  total,
		CreatedAt:      r.now().UTC().Truncate(time.Millisecond),
	}
	return record, result, nil
}
