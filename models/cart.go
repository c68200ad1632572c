package models

// Cart line kinds
const (
	CartLineBracelet = "bracelet"
	CartLineCharm    = "charm"
)

// CartLine is one line handed to the external cart, priced at capture time
type CartLine struct {
	Key             string `json:"key"`
	Kind            string `json:"kind"` // bracelet or charm
	ProductID       string `json:"productId"`
	Name            string `json:"name,omitempty"`
	Qty             int    `json:"qty"`
	UnitPrice       int64  `json:"unitPrice"`
	LineTotal       int64  `json:"lineTotal"`
	CustomizationID string `json:"customizationId"`
}

// CartLinesRequest represents the request body for building cart lines
// Example: {"customizationId": "session_1f0c...", "quantity": 2}
type CartLinesRequest struct {
	CustomizationID string `json:"customizationId"`
	Quantity        int    `json:"quantity"`
}

// CartLinesResponse groups the lines for one customization
type CartLinesResponse struct {
	CustomizationID string         `json:"customizationId"`
	Lines           []CartLine     `json:"lines"`
	Total           int64          `json:"total"`
	FormattedTotal  string         `json:"formattedTotal"`
	Display         []DisplayField `json:"display"`
}

// DisplayField is a key/value shown next to a cart or order line
type DisplayField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
