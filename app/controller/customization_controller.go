package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"bracelet-customizer/customizer"
	"bracelet-customizer/models"
	"bracelet-customizer/repository"
	"bracelet-customizer/service"
)

const maxRequestBody = 1 << 20

// CustomizationController handles HTTP requests for bracelet customizations
type CustomizationController struct {
	service *service.CustomizationService
}

// NewCustomizationController creates a new CustomizationController
func NewCustomizationController(svc *service.CustomizationService) *CustomizationController {
	return &CustomizationController{
		service: svc,
	}
}

// SaveCustomization handles POST /api/customizations
// Validates and prices the selection, then stores it under the session
func (c *CustomizationController) SaveCustomization(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SaveCustomization: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ SaveCustomization: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CustomizationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		log.Printf("❌ SaveCustomization: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, result, err := c.service.Save(r.Context(), req)
	if err != nil {
		log.Printf("❌ SaveCustomization: Error saving customization: %v", err)
		http.Error(w, models.GenericFailureMessage, http.StatusInternalServerError)
		return
	}
	if !result.Valid {
		writeValidationError(w, result)
		return
	}

	log.Printf("✅ SaveCustomization: Saved id=%s session=%s price=%d", resp.ID, resp.SessionID, resp.Record.ComputedPrice)
	writeJSON(w, "SaveCustomization", resp)
}

// GetCustomization handles GET /api/customizations/{sessionId}?productId=bluestone
func (c *CustomizationController) GetCustomization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/customizations/"), "/")
	if sessionID == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	record, err := c.service.GetBySession(r.Context(), sessionID, r.URL.Query().Get("productId"))
	if err != nil {
		writeLookupError(w, "GetCustomization", err)
		return
	}

	writeJSON(w, "GetCustomization", map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

// CartLines handles POST /api/cart-lines
// Returns the bracelet and charm lines for the external cart
func (c *CustomizationController) CartLines(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CartLines: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CartLinesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		log.Printf("❌ CartLines: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CustomizationID) == "" {
		http.Error(w, "customizationId is required", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > customizer.MaxCartQuantity {
		log.Printf("❌ CartLines: Quantity out of range: %d", req.Quantity)
		http.Error(w, customizer.ErrInvalidQuantity.Error(), http.StatusBadRequest)
		return
	}

	resp, err := c.service.CartLines(r.Context(), strings.TrimSpace(req.CustomizationID), req.Quantity)
	if err != nil {
		if errors.Is(err, customizer.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeLookupError(w, "CartLines", err)
		return
	}

	log.Printf("✅ CartLines: %d lines for %s, total=%d", len(resp.Lines), resp.CustomizationID, resp.Total)
	writeJSON(w, "CartLines", resp)
}

// writeValidationError maps an Invalid result to 422 with a shopper-facing message
func writeValidationError(w http.ResponseWriter, result models.ValidationResult) {
	log.Printf("⚠️ Validation failed: reason=%s message=%s", result.Reason, result.Message)
	writeJSONStatus(w, "Validation", http.StatusUnprocessableEntity, models.ValidationErrorResponse{
		Success: false,
		Reason:  result.Reason,
		Field:   result.Reason.Field(),
		Message: result.UserMessage(),
	})
}

// writeLookupError maps repository errors to 404 or a generic 500
func writeLookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Customization not found", http.StatusNotFound)
		return
	}
	log.Printf("❌ %s: %v", op, err)
	http.Error(w, models.GenericFailureMessage, http.StatusInternalServerError)
}
