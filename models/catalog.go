package models

// Settings holds the store-wide customizer settings
type Settings struct {
	Currency           string        `json:"currency"`
	MinWordLength      int           `json:"minWordLength"`
	MaxWordLength      int           `json:"maxWordLength"`
	AllowedCharacters  string        `json:"allowedCharacters"`
	LetterColors       []LetterColor `json:"letterColors"`
	TrendingWords      []string      `json:"trendingWords"`
	CharmCategories    []string      `json:"charmCategories"`
	BraceletCategories []string      `json:"braceletCategories"`
}

// BraceletItem represents a bracelet in the listing response
type BraceletItem struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description,omitempty"`
	BasePrice             int64             `json:"basePrice"`
	FormattedPrice        string            `json:"formattedPrice"`
	Image                 string            `json:"image,omitempty"`
	GapImages             map[int]string    `json:"gapImages"`
	SpaceStoneImages      map[string]string `json:"spaceStoneImages"` // keyed "03_O"
	AvailableSizes        []string          `json:"availableSizes"`
	AvailableLetterColors []LetterColor     `json:"availableLetterColors"`
	IsBestSeller          bool              `json:"isBestSeller"`
	Category              string            `json:"category"`
	ProductType           ProductType       `json:"productType"`
	MinWordLength         int               `json:"minWordLength"`
	MaxWordLength         int               `json:"maxWordLength"`
	SupportsCharms        bool              `json:"supportsCharms"`
	Slug                  string            `json:"slug,omitempty"`
	SKU                   string            `json:"sku,omitempty"`
}

// CharmItem represents a charm in the listing response
type CharmItem struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Description           string         `json:"description,omitempty"`
	Price                 int64          `json:"price"`
	FormattedPrice        string         `json:"formattedPrice"`
	Image                 string         `json:"image,omitempty"`
	PositionImages        map[int]string `json:"positionImages"`
	NoWordsPositionImages map[int]string `json:"noWordsPositionImages"`
	IsNew                 bool           `json:"isNew"`
	IsBestSeller          bool           `json:"isBestSeller"`
	Category              string         `json:"category"`
	Vibe                  string         `json:"vibe,omitempty"`
	Tags                  []string       `json:"tags"`
	Slug                  string         `json:"slug,omitempty"`
	SKU                   string         `json:"sku,omitempty"`
}

// ListResponse wraps listing results
// Example response:
// {
//   "success": true,
//   "data": [...],
//   "source": "file",
//   "total": 4,
//   "categories": ["Standard", "Tiny Words"]
// }
type ListResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Source     string      `json:"source"`
	Total      int         `json:"total"`
	Categories []string    `json:"categories"`
}
