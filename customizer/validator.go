package customizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"bracelet-customizer/models"
	"bracelet-customizer/utils"
)

// CharmSource resolves charm products for price and name snapshots
type CharmSource interface {
	Charm(id string) (models.ProductConfig, bool)
}

// Validator checks a customization request against its product's rules.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	charms CharmSource
}

// NewValidator creates a Validator. charms may be nil when no charms are sold.
func NewValidator(charms CharmSource) *Validator {
	return &Validator{charms: charms}
}

// Validate runs the rules in order and stops at the first failure.
// A nil cfg means the product was not found.
func (v *Validator) Validate(req models.CustomizationRequest, cfg *models.ProductConfig) models.ValidationResult {
	if cfg == nil {
		return models.Invalid(models.ReasonUnknownProduct, fmt.Sprintf("Product %q was not found", req.ProductID))
	}

	// Interior spaces select space-stone images, so only the ends are trimmed.
	// Other whitespace inside the word becomes a plain space.
	word := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, strings.TrimSpace(req.Word))
	if cfg.ProductType.RequiresWord() && word == "" {
		return models.Invalid(models.ReasonWordRequired, "Please enter a word for your bracelet")
	}

	if word != "" {
		n := utf8.RuneCountInString(word)
		if n < cfg.MinWordLength || n > cfg.MaxWordLength {
			if cfg.MaxWordLength == 0 {
				return models.Invalid(models.ReasonWordLength, "This product cannot be personalized with a word")
			}
			return models.Invalid(models.ReasonWordLength,
				fmt.Sprintf("Word must be between %d and %d characters", cfg.MinWordLength, cfg.MaxWordLength))
		}
		if cfg.AllowedPattern == nil || !cfg.AllowedPattern.MatchString(word) {
			return models.Invalid(models.ReasonInvalidCharacters, "Word contains characters that cannot be engraved")
		}
	}

	color, ok := v.letterColor(req, cfg)
	if !ok {
		return models.Invalid(models.ReasonInvalidLetterColor, "Please choose one of the available letter colors")
	}

	charms, result := v.charmSnapshots(req.SelectedCharmIDs, cfg)
	if result != nil {
		return *result
	}

	size, ok := utils.MatchSize(req.Size, cfg.Sizes())
	if !ok {
		return models.Invalid(models.ReasonInvalidSize,
			fmt.Sprintf("Please choose a size: %s", strings.Join(cfg.Sizes(), ", ")))
	}

	return models.Valid(models.NormalizedCustomization{
		ProductID:            cfg.ProductID,
		Word:                 word,
		LetterColorID:        color.ID,
		LetterColorSurcharge: color.Surcharge,
		SelectedCharms:       charms,
		Size:                 size,
	})
}

// letterColor resolves the requested color, defaulting only for word-bearing products
func (v *Validator) letterColor(req models.CustomizationRequest, cfg *models.ProductConfig) (models.LetterColor, bool) {
	id := strings.TrimSpace(req.LetterColorID)
	if id != "" {
		return cfg.LetterColor(id)
	}
	if !cfg.ProductType.RequiresWord() {
		return models.LetterColor{}, true
	}
	return cfg.DefaultLetterColor()
}

func (v *Validator) charmSnapshots(ids []string, cfg *models.ProductConfig) ([]models.CharmSnapshot, *models.ValidationResult) {
	charms := []models.CharmSnapshot{}
	if len(ids) == 0 {
		return charms, nil
	}
	if !cfg.SupportsCharms {
		r := models.Invalid(models.ReasonCharmsNotSupported, "Charms cannot be added to this product")
		return nil, &r
	}

	for _, id := range ids {
		id = strings.TrimSpace(id)
		var charm models.ProductConfig
		ok := false
		if v.charms != nil && id != "" {
			charm, ok = v.charms.Charm(id)
		}
		if !ok {
			r := models.Invalid(models.ReasonInvalidCharm, fmt.Sprintf("Charm %q is not available", id))
			return nil, &r
		}
		charms = append(charms, models.CharmSnapshot{ID: charm.ProductID, Name: charm.Name, Price: charm.BasePrice})
	}
	return charms, nil
}
