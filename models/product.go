package models

import (
	"fmt"
	"regexp"
)

// ProductType tags which customization rules apply to a product
type ProductType string

const (
	ProductTypeStandardBracelet ProductType = "standard_bracelet"
	ProductTypeBraceletCollabs  ProductType = "bracelet_collabs"
	ProductTypeBraceletNoWords  ProductType = "bracelet_no_words"
	ProductTypeTinyWords        ProductType = "tiny_words"
	ProductTypeCharm            ProductType = "charm"
)

// Word length caps by product family
const (
	MaxWordLengthTinyWords = 10
	MaxWordLengthStandard  = 13
	MaxSpaceStonePosition  = 13
	MaxCharmPosition       = 9
	MaxNoWordsPosition     = 7
)

// DefaultSizes is used when a product has no sizes configured
var DefaultSizes = []string{"XS", "S/M", "M/L", "L/XL"}

// Valid reports whether t is one of the known product types
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeStandardBracelet, ProductTypeBraceletCollabs, ProductTypeBraceletNoWords,
		ProductTypeTinyWords, ProductTypeCharm:
		return true
	}
	return false
}

// RequiresWord reports whether a customization of this type must carry a word
func (t ProductType) RequiresWord() bool {
	switch t {
	case ProductTypeStandardBracelet, ProductTypeBraceletCollabs, ProductTypeTinyWords:
		return true
	}
	return false
}

// MaxWordLengthCap returns the hard cap for maxWordLength (0 for word-less types)
func (t ProductType) MaxWordLengthCap() int {
	switch t {
	case ProductTypeTinyWords:
		return MaxWordLengthTinyWords
	case ProductTypeStandardBracelet, ProductTypeBraceletCollabs:
		return MaxWordLengthStandard
	}
	return 0
}

// GapLengthRange returns the character counts that may carry a gap image
func (t ProductType) GapLengthRange() (int, int) {
	if t == ProductTypeTinyWords {
		return 1, MaxWordLengthTinyWords
	}
	return 2, MaxWordLengthStandard
}

// Category returns the shopper-facing category label
func (t ProductType) Category() string {
	switch t {
	case ProductTypeBraceletCollabs:
		return "Collabs"
	case ProductTypeTinyWords:
		return "Tiny Words"
	case ProductTypeBraceletNoWords:
		return "No Words"
	case ProductTypeCharm:
		return "Charm"
	}
	return "Standard"
}

// Parity of the total word length, used to pick space-stone images.
// Values follow the O/E format codes used in image keys.
type Parity string

const (
	ParityOdd  Parity = "O"
	ParityEven Parity = "E"
)

// ParityOf returns odd or even for a length
func ParityOf(n int) Parity {
	if n%2 == 0 {
		return ParityEven
	}
	return ParityOdd
}

// ImageRef is an opaque image reference resolved by the asset host
type ImageRef string

// SpaceStoneKey identifies a space-stone image by position and word-length parity
type SpaceStoneKey struct {
	Position int
	Parity   Parity
}

// String formats the key as "03_O"
func (k SpaceStoneKey) String() string {
	return fmt.Sprintf("%02d_%s", k.Position, k.Parity)
}

// LetterColor is a letter color with its surcharge in minor currency units
type LetterColor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surcharge int64  `json:"price"`
	Hex       string `json:"color,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// ProductConfig holds the per-product customization rules.
// Fields that do not apply to a product type are left zero.
type ProductConfig struct {
	ProductID   string
	Name        string
	Description string
	ProductType ProductType
	Category    string // charm category slug or bracelet category label
	BasePrice   int64  // minor units
	MainImage   ImageRef
	Slug        string
	SKU         string

	MinWordLength         int
	MaxWordLength         int
	AllowedCharacters     string         // character-class body, e.g. `a-zA-Z0-9\s`
	AllowedPattern        *regexp.Regexp // compiled `^[AllowedCharacters]+$`
	AvailableLetterColors []LetterColor
	DefaultLetterColorID  string
	AvailableSizes        []string
	SupportsCharms        bool

	GapImageByLength                  map[int]ImageRef
	SpaceStoneImageByPositionAndParity map[SpaceStoneKey]ImageRef

	IsBestSeller          bool
	IsNew                 bool
	Vibe                  string
	Tags                  []string
	PositionImages        map[int]ImageRef
	NoWordsPositionImages map[int]ImageRef
}

// Sizes returns the configured sizes or the default set
func (p *ProductConfig) Sizes() []string {
	if len(p.AvailableSizes) == 0 {
		return DefaultSizes
	}
	return p.AvailableSizes
}

// LetterColor looks up an available letter color by id
func (p *ProductConfig) LetterColor(id string) (LetterColor, bool) {
	for _, c := range p.AvailableLetterColors {
		if c.ID == id {
			return c, true
		}
	}
	return LetterColor{}, false
}

// DefaultLetterColor returns the designated default color, or the first available one
func (p *ProductConfig) DefaultLetterColor() (LetterColor, bool) {
	if p.DefaultLetterColorID != "" {
		if c, ok := p.LetterColor(p.DefaultLetterColorID); ok {
			return c, true
		}
	}
	if len(p.AvailableLetterColors) == 0 {
		return LetterColor{}, false
	}
	return p.AvailableLetterColors[0], true
}
