package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bracelet-customizer/models"
)

// Letter color policies for a product
const (
	LetterColorPolicyAllEnabled = "all_enabled"
	LetterColorPolicyListed     = "listed"
)

// Settings defaults applied when the catalog file leaves them out
const (
	DefaultCurrency          = "USD"
	DefaultMinWordLength     = 2
	DefaultMaxWordLength     = 13
	DefaultAllowedCharacters = `a-zA-Z0-9:)\<3!#&:\s`
)

// DefaultLetterColors are the global colors used when the file defines none
var DefaultLetterColors = []models.LetterColor{
	{ID: "white", Name: "White", Surcharge: 0, Hex: "#FFFFFF", Enabled: true},
	{ID: "pink", Name: "Pink", Surcharge: 0, Hex: "#FFB6C1", Enabled: true},
	{ID: "black", Name: "Black", Surcharge: 0, Hex: "#000000", Enabled: true},
	{ID: "gold", Name: "Gold", Surcharge: 1500, Hex: "#FFD700", Enabled: true},
}

// fileCatalog is the on-disk catalog layout
type fileCatalog struct {
	Settings fileSettings  `json:"settings"`
	Products []fileProduct `json:"products"`
}

type fileSettings struct {
	Currency           string               `json:"currency"`
	MinWordLength      int                  `json:"minWordLength"`
	MaxWordLength      int                  `json:"maxWordLength"`
	AllowedCharacters  string               `json:"allowedCharacters"`
	LetterColors       []models.LetterColor `json:"letterColors"`
	TrendingWords      []string             `json:"trendingWords"`
	CharmCategories    []string             `json:"charmCategories"`
	BraceletCategories []string             `json:"braceletCategories"`
}

// fileProduct is one product entry. Prices are minor units.
// Image maps use string keys: "2".."13" for gap images, "03_O" for space stones.
type fileProduct struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Type                  string            `json:"type"`
	Category              string            `json:"category"`
	Price                 int64             `json:"price"`
	Image                 string            `json:"image"`
	Slug                  string            `json:"slug"`
	SKU                   string            `json:"sku"`
	MinWordLength         *int              `json:"minWordLength"`
	MaxWordLength         *int              `json:"maxWordLength"`
	AllowedCharacters     string            `json:"allowedCharacters"`
	LetterColorPolicy     string            `json:"letterColorPolicy"`
	LetterColors          []string          `json:"letterColors"`
	DefaultLetterColor    string            `json:"defaultLetterColor"`
	Sizes                 []string          `json:"sizes"`
	SupportsCharms        *bool             `json:"supportsCharms"`
	GapImages             map[string]string `json:"gapImages"`
	SpaceStoneImages      map[string]string `json:"spaceStoneImages"`
	IsBestSeller          bool              `json:"isBestSeller"`
	IsNew                 bool              `json:"isNew"`
	Vibe                  string            `json:"vibe"`
	Tags                  []string          `json:"tags"`
	PositionImages        map[string]string `json:"positionImages"`
	NoWordsPositionImages map[string]string `json:"noWordsPositionImages"`
}

// decodeFile parses raw JSON into the file layout
func decodeFile(data []byte) (*fileCatalog, error) {
	var f fileCatalog
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &f, nil
}

// resolveSettings fills in defaults
func resolveSettings(s fileSettings) models.Settings {
	out := models.Settings{
		Currency:           s.Currency,
		MinWordLength:      s.MinWordLength,
		MaxWordLength:      s.MaxWordLength,
		AllowedCharacters:  s.AllowedCharacters,
		LetterColors:       s.LetterColors,
		TrendingWords:      s.TrendingWords,
		CharmCategories:    s.CharmCategories,
		BraceletCategories: s.BraceletCategories,
	}
	if out.Currency == "" {
		out.Currency = DefaultCurrency
	}
	if out.MinWordLength == 0 {
		out.MinWordLength = DefaultMinWordLength
	}
	if out.MaxWordLength == 0 {
		out.MaxWordLength = DefaultMaxWordLength
	}
	if out.AllowedCharacters == "" {
		out.AllowedCharacters = DefaultAllowedCharacters
	}
	if len(out.LetterColors) == 0 {
		out.LetterColors = append([]models.LetterColor(nil), DefaultLetterColors...)
	}
	if out.TrendingWords == nil {
		out.TrendingWords = []string{}
	}
	if out.CharmCategories == nil {
		out.CharmCategories = []string{}
	}
	if out.BraceletCategories == nil {
		out.BraceletCategories = []string{}
	}
	return out
}

// buildProductConfig turns a file entry into a typed config.
// Word bounds and colors fall back to the global settings; the result is not yet validated.
func buildProductConfig(p fileProduct, settings models.Settings) (*models.ProductConfig, error) {
	productType := models.ProductType(p.Type)
	if !productType.Valid() {
		return nil, fmt.Errorf("product %q: unknown type %q", p.ID, p.Type)
	}

	cfg := &models.ProductConfig{
		ProductID:            p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		ProductType:          productType,
		Category:             p.Category,
		BasePrice:            p.Price,
		MainImage:            models.ImageRef(p.Image),
		Slug:                 p.Slug,
		SKU:                  p.SKU,
		AvailableSizes:       normalizeSizes(p.Sizes),
		IsBestSeller:         p.IsBestSeller,
		IsNew:                p.IsNew,
		Vibe:                 p.Vibe,
		Tags:                 p.Tags,
		DefaultLetterColorID: p.DefaultLetterColor,
	}
	if cfg.Category == "" {
		cfg.Category = productType.Category()
	}
	if cfg.Tags == nil {
		cfg.Tags = []string{}
	}

	if productType.RequiresWord() {
		if err := applyWordRules(cfg, p, settings); err != nil {
			return nil, err
		}
	}

	cfg.SupportsCharms = productType != models.ProductTypeTinyWords &&
		productType != models.ProductTypeBraceletCollabs &&
		productType != models.ProductTypeCharm
	if p.SupportsCharms != nil {
		cfg.SupportsCharms = *p.SupportsCharms
	}

	var err error
	if cfg.GapImageByLength, err = parseIntKeyed(p.GapImages); err != nil {
		return nil, fmt.Errorf("product %q gap images: %w", p.ID, err)
	}
	if cfg.SpaceStoneImageByPositionAndParity, err = parseSpaceStones(p.SpaceStoneImages); err != nil {
		return nil, fmt.Errorf("product %q space stone images: %w", p.ID, err)
	}
	if cfg.PositionImages, err = parseIntKeyed(p.PositionImages); err != nil {
		return nil, fmt.Errorf("product %q position images: %w", p.ID, err)
	}
	if cfg.NoWordsPositionImages, err = parseIntKeyed(p.NoWordsPositionImages); err != nil {
		return nil, fmt.Errorf("product %q no-words position images: %w", p.ID, err)
	}

	return cfg, nil
}

// applyWordRules sets word bounds, the character pattern and letter colors
func applyWordRules(cfg *models.ProductConfig, p fileProduct, settings models.Settings) error {
	wordCap := cfg.ProductType.MaxWordLengthCap()

	cfg.MinWordLength = settings.MinWordLength
	if p.MinWordLength != nil {
		cfg.MinWordLength = *p.MinWordLength
	}
	cfg.MaxWordLength = settings.MaxWordLength
	if p.MaxWordLength != nil {
		cfg.MaxWordLength = *p.MaxWordLength
	} else if cfg.MaxWordLength > wordCap {
		// Global default is shared by every type; clamp it to the family cap.
		cfg.MaxWordLength = wordCap
	}

	cfg.AllowedCharacters = settings.AllowedCharacters
	if p.AllowedCharacters != "" {
		cfg.AllowedCharacters = p.AllowedCharacters
	}
	pattern, err := CompileAllowedPattern(cfg.AllowedCharacters)
	if err != nil {
		return fmt.Errorf("product %q: %w", p.ID, err)
	}
	cfg.AllowedPattern = pattern

	colors, err := selectLetterColors(p, settings.LetterColors)
	if err != nil {
		return err
	}
	cfg.AvailableLetterColors = colors
	return nil
}

// selectLetterColors applies the product's letter color policy to the global colors
func selectLetterColors(p fileProduct, global []models.LetterColor) ([]models.LetterColor, error) {
	policy := p.LetterColorPolicy
	if policy == "" {
		policy = LetterColorPolicyAllEnabled
	}

	switch policy {
	case LetterColorPolicyAllEnabled:
		var colors []models.LetterColor
		for _, c := range global {
			if c.Enabled {
				colors = append(colors, c)
			}
		}
		return colors, nil

	case LetterColorPolicyListed:
		byID := make(map[string]models.LetterColor, len(global))
		for _, c := range global {
			byID[c.ID] = c
		}
		var colors []models.LetterColor
		for _, id := range p.LetterColors {
			c, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("product %q: unknown letter color %q", p.ID, id)
			}
			if c.Enabled {
				colors = append(colors, c)
			}
		}
		return colors, nil
	}

	return nil, fmt.Errorf("product %q: unknown letter color policy %q", p.ID, policy)
}

// CompileAllowedPattern compiles a character-class body into a full-match pattern
func CompileAllowedPattern(class string) (*regexp.Regexp, error) {
	if class == "" {
		return nil, fmt.Errorf("allowed characters must not be empty")
	}
	re, err := regexp.Compile(`^[` + class + `]+$`)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed characters %q: %w", class, err)
	}
	return re, nil
}

// parseIntKeyed converts {"2": "a.webp"} into map[int]ImageRef, skipping empty refs
func parseIntKeyed(in map[string]string) (map[int]models.ImageRef, error) {
	out := make(map[int]models.ImageRef, len(in))
	for k, v := range in {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("invalid key %q", k)
		}
		if v == "" {
			continue
		}
		out[n] = models.ImageRef(v)
	}
	return out, nil
}

// parseSpaceStones converts {"03_O": "a.webp"} into typed keys
func parseSpaceStones(in map[string]string) (map[models.SpaceStoneKey]models.ImageRef, error) {
	out := make(map[models.SpaceStoneKey]models.ImageRef, len(in))
	for k, v := range in {
		key, err := ParseSpaceStoneKey(k)
		if err != nil {
			return nil, err
		}
		if v == "" {
			continue
		}
		out[key] = models.ImageRef(v)
	}
	return out, nil
}

// ParseSpaceStoneKey parses "03_O" or "3_E" into a SpaceStoneKey
func ParseSpaceStoneKey(s string) (models.SpaceStoneKey, error) {
	pos, parity, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return models.SpaceStoneKey{}, fmt.Errorf("invalid space stone key %q", s)
	}
	n, err := strconv.Atoi(pos)
	if err != nil {
		return models.SpaceStoneKey{}, fmt.Errorf("invalid space stone position in %q", s)
	}
	p := models.Parity(strings.ToUpper(parity))
	if p != models.ParityOdd && p != models.ParityEven {
		return models.SpaceStoneKey{}, fmt.Errorf("invalid space stone parity in %q", s)
	}
	return models.SpaceStoneKey{Position: n, Parity: p}, nil
}

func normalizeSizes(sizes []string) []string {
	var out []string
	for _, s := range sizes {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
