package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"bracelet-customizer/catalog"
	"bracelet-customizer/models"
)

// CatalogController handles HTTP requests for product listings
type CatalogController struct {
	catalog *catalog.Catalog
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(c *catalog.Catalog) *CatalogController {
	return &CatalogController{
		catalog: c,
	}
}

// ListBracelets handles GET /api/bracelets?category=Standard
func (c *CatalogController) ListBracelets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	items := c.catalog.Bracelets(category)
	log.Printf("🔍 ListBracelets: category=%q -> %d bracelets", category, len(items))

	writeJSON(w, "ListBracelets", models.ListResponse{
		Success:    true,
		Data:       items,
		Source:     c.catalog.Source(),
		Total:      len(items),
		Categories: c.catalog.BraceletCategories(),
	})
}

// ListCharms handles GET /api/charms?category=Bestsellers&q=heart
func (c *CatalogController) ListCharms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")
	items := c.catalog.Charms(category, query)
	log.Printf("🔍 ListCharms: category=%q q=%q -> %d charms", category, query, len(items))

	writeJSON(w, "ListCharms", models.ListResponse{
		Success:    true,
		Data:       items,
		Source:     c.catalog.Source(),
		Total:      len(items),
		Categories: c.catalog.CharmCategories(),
	})
}

// GetSettings handles GET /api/settings
func (c *CatalogController) GetSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, "GetSettings", c.catalog.Settings())
}

// writeJSON writes a 200 JSON response
func writeJSON(w http.ResponseWriter, op string, v interface{}) {
	writeJSONStatus(w, op, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, op string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
	}
}
