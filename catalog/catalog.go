package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bracelet-customizer/models"
)

// Catalog sources reported by the listing endpoints
const (
	SourceFile     = "file"
	SourceFallback = "fallback"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Catalog is an immutable snapshot of product configs and store settings.
// It is safe for concurrent reads.
type Catalog struct {
	settings models.Settings
	products map[string]*models.ProductConfig
	order    []string
	source   string
}

// Parse builds a catalog from JSON, rejecting any product that breaks its invariants
func Parse(data []byte, source string) (*Catalog, error) {
	f, err := decodeFile(data)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		settings: resolveSettings(f.Settings),
		products: make(map[string]*models.ProductConfig, len(f.Products)),
		source:   source,
	}

	for _, p := range f.Products {
		if _, dup := c.products[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidConfig, p.ID)
		}
		cfg, err := buildProductConfig(p, c.settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := ValidateProductConfig(cfg); err != nil {
			return nil, err
		}
		c.products[cfg.ProductID] = cfg
		c.order = append(c.order, cfg.ProductID)
	}

	return c, nil
}

// LoadFile reads a catalog JSON file
func LoadFile(path string) (*Catalog, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data, SourceFile)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Catalog: Loaded %d products from %s", len(c.order), path)
	return c, nil
}

// Default returns the embedded fallback catalog
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog, SourceFallback)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback catalog: %w", err)
	}
	return c, nil
}

// Load reads path, or the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		log.Printf("⚠️ Catalog: CATALOG_PATH not set, using fallback catalog")
		return Default()
	}
	return LoadFile(path)
}

// GetConfig resolves a product id. Unknown ids return found=false, never an error.
func (c *Catalog) GetConfig(ctx context.Context, productID string) (models.ProductConfig, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.ProductConfig{}, false, err
	}
	cfg, ok := c.products[productID]
	if !ok {
		return models.ProductConfig{}, false, nil
	}
	return *cfg, true, nil
}

// Charm resolves a charm product by id
func (c *Catalog) Charm(id string) (models.ProductConfig, bool) {
	cfg, ok := c.products[id]
	if !ok || cfg.ProductType != models.ProductTypeCharm {
		return models.ProductConfig{}, false
	}
	return *cfg, true
}

// Settings returns the store-wide settings
func (c *Catalog) Settings() models.Settings {
	return c.settings
}

// Source reports where the catalog was loaded from
func (c *Catalog) Source() string {
	return c.source
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.order)
}
