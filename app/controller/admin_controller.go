package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"bracelet-customizer/repository"
	"bracelet-customizer/service"
)

// AdminController handles admin reporting and maintenance of customizations
type AdminController struct {
	service     *service.CustomizationService
	defaultDays int
}

// NewAdminController creates a new AdminController
// defaultDays is the retention used when cleanup is called without ?days=
func NewAdminController(svc *service.CustomizationService, defaultDays int) *AdminController {
	return &AdminController{
		service:     svc,
		defaultDays: defaultDays,
	}
}

// Stats handles GET /admin/customizations/stats?from=2024-01-01&to=2024-01-31
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tr, err := parseTimeRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := c.service.Stats(r.Context(), tr)
	if err != nil {
		log.Printf("❌ Stats: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, "Stats", stats)
}

// Export handles GET /admin/customizations/export?from=&to=
// Streams a CSV attachment
func (c *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tr, err := parseTimeRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("bracelet-customizations-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	n, err := c.service.ExportCSV(r.Context(), w, tr)
	if err != nil {
		// Headers may be gone already; the error is only logged
		log.Printf("❌ Export: %v", err)
		return
	}
	log.Printf("✅ Export: Sent %d customizations as %s", n, filename)
}

// Cleanup handles POST /admin/customizations/cleanup?days=30
func (c *AdminController) Cleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := c.defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "days must be an integer", http.StatusBadRequest)
			return
		}
		days = n
	}

	removed, err := c.service.Cleanup(r.Context(), days)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRetention) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("❌ Cleanup: %v", err)
		http.Error(w, fmt.Sprintf("Failed to clean up: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, "Cleanup", map[string]interface{}{
		"success": true,
		"deleted": removed,
		"days":    days,
	})
}

// parseTimeRange reads from/to as YYYY-MM-DD (to is inclusive) or RFC3339
func parseTimeRange(r *http.Request) (repository.TimeRange, error) {
	var tr repository.TimeRange
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if tr.From, _, err = parseTime(v); err != nil {
			return tr, fmt.Errorf("invalid from: %v", err)
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		var dateOnly bool
		if tr.To, dateOnly, err = parseTime(v); err != nil {
			return tr, fmt.Errorf("invalid to: %v", err)
		}
		if dateOnly {
			tr.To = tr.To.Add(24*time.Hour - time.Millisecond)
		}
	}
	return tr, nil
}

func parseTime(v string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, false, err
}
