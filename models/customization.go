package models

import "time"

// CustomizationRequest is the raw shopper selection
// Example: {"sessionId": "session_...", "productId": "bluestone", "word": "LET THEM", "letterColorId": "gold", "selectedCharmIds": ["heart"], "size": "M/L"}
type CustomizationRequest struct {
	SessionID        string   `json:"sessionId,omitempty"`
	ProductID        string   `json:"productId"`
	Word             string   `json:"word,omitempty"`
	LetterColorID    string   `json:"letterColorId,omitempty"`
	SelectedCharmIDs []string `json:"selectedCharmIds,omitempty"`
	Size             string   `json:"size"`
}

// CharmSnapshot captures a charm's name and price at validation time
type CharmSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// NormalizedCustomization is the payload of a Valid result
type NormalizedCustomization struct {
	ProductID            string          `json:"productId"`
	Word                 string          `json:"word"`
	LetterColorID        string          `json:"letterColorId"`
	LetterColorSurcharge int64           `json:"letterColorSurcharge"`
	SelectedCharms       []CharmSnapshot `json:"selectedCharms"`
	Size                 string          `json:"size"`
}

// CustomizationRecord is the validated, priced customization handed to the cart.
// Records are never mutated; a new record for the same session replaces the old one.
type CustomizationRecord struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"sessionId"`
	ProductID       string          `json:"productId"`
	Word            string          `json:"word"`
	LetterColorID   string          `json:"letterColorId"`
	SelectedCharms  []CharmSnapshot `json:"selectedCharms"`
	Size            string          `json:"size"`
	ComputedPrice   int64           `json:"computedPrice"` // minor units
	PreviewImageURL string          `json:"previewImageUrl,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CharmsTotal sums the captured charm prices
func (r *CustomizationRecord) CharmsTotal() int64 {
	var total int64
	for _, c := range r.SelectedCharms {
		total += c.Price
	}
	return total
}

// SaveCustomizationResponse is returned after a customization is stored
type SaveCustomizationResponse struct {
	Success   bool                `json:"success"`
	SessionID string              `json:"sessionId"`
	ID        string              `json:"id"`
	Record    CustomizationRecord `json:"record"`
}

// CustomizationStats summarizes stored customizations
type CustomizationStats struct {
	TotalCustomizations int `json:"totalCustomizations"`
	UniqueSessions      int `json:"uniqueSessions"`
	UniqueProducts      int `json:"uniqueProducts"`
}

// PreviewUploadRequest represents the request body for a preview upload
// Example: {"imageData": "data:image/png;base64,iVBORw0..."}
type PreviewUploadRequest struct {
	ImageData string `json:"imageData"`
}

// PreviewUploadResponse represents the response after storing a preview image
type PreviewUploadResponse struct {
	Success         bool   `json:"success"`
	ImageURL        string `json:"imageUrl"`
	CustomizationID string `json:"customizationId"`
	FileSize        int    `json:"fileSize"`
}
