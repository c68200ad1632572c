package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"bracelet-customizer/models"
	"bracelet-customizer/service"
)

// Data URLs carry base64, so the body may be a third larger than the image limit
const maxPreviewBody = 8 << 20

// PreviewController handles HTTP requests for preview images
type PreviewController struct {
	service *service.PreviewService
}

// NewPreviewController creates a new PreviewController
func NewPreviewController(svc *service.PreviewService) *PreviewController {
	return &PreviewController{
		service: svc,
	}
}

// UploadPreview handles POST /api/customizations/{id}/preview
// Example body: {"imageData": "data:image/png;base64,iVBORw0..."}
func (c *PreviewController) UploadPreview(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadPreview: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/customizations/")
	id := strings.Trim(strings.TrimSuffix(path, "/preview"), "/")
	if id == "" {
		http.Error(w, "customization id is required", http.StatusBadRequest)
		return
	}

	var req models.PreviewUploadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBody)).Decode(&req); err != nil {
		log.Printf("❌ UploadPreview: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ImageData == "" {
		http.Error(w, "imageData is required", http.StatusBadRequest)
		return
	}

	resp, err := c.service.UploadPreview(r.Context(), id, req.ImageData)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeLookupError(w, "UploadPreview", err)
		return
	}

	writeJSON(w, "UploadPreview", resp)
}
