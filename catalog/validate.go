package catalog

import (
	"errors"
	"fmt"

	"bracelet-customizer/models"
	"bracelet-customizer/utils"
)

// ErrInvalidConfig is wrapped by every product config rejection
var ErrInvalidConfig = errors.New("invalid product config")

func invalid(cfg *models.ProductConfig, format string, args ...interface{}) error {
	return fmt.Errorf("%w: product %q: %s", ErrInvalidConfig, cfg.ProductID, fmt.Sprintf(format, args...))
}

// ValidateProductConfig enforces the construction invariants of a product config
func ValidateProductConfig(cfg *models.ProductConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if cfg.ProductID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidConfig)
	}
	if !cfg.ProductType.Valid() {
		return invalid(cfg, "unknown product type %q", cfg.ProductType)
	}
	if cfg.BasePrice < 0 {
		return invalid(cfg, "base price %d is negative", cfg.BasePrice)
	}

	if err := validateWordRules(cfg); err != nil {
		return err
	}

	if cfg.SupportsCharms {
		switch cfg.ProductType {
		case models.ProductTypeTinyWords, models.ProductTypeBraceletCollabs, models.ProductTypeCharm:
			return invalid(cfg, "%s products cannot carry charms", cfg.ProductType)
		}
	}

	seen := make(map[string]bool, len(cfg.AvailableSizes))
	for _, s := range cfg.AvailableSizes {
		n := utils.NormalizeSize(s)
		if n == "" {
			return invalid(cfg, "empty size")
		}
		if seen[n] {
			return invalid(cfg, "duplicate size %q", s)
		}
		seen[n] = true
	}

	return validateImages(cfg)
}

func validateWordRules(cfg *models.ProductConfig) error {
	if !cfg.ProductType.RequiresWord() {
		if cfg.MinWordLength != 0 || cfg.MaxWordLength != 0 {
			return invalid(cfg, "%s products carry no word", cfg.ProductType)
		}
		return nil
	}

	wordCap := cfg.ProductType.MaxWordLengthCap()
	if cfg.MinWordLength < 1 {
		return invalid(cfg, "minWordLength %d must be at least 1", cfg.MinWordLength)
	}
	if cfg.MinWordLength > cfg.MaxWordLength {
		return invalid(cfg, "minWordLength %d exceeds maxWordLength %d", cfg.MinWordLength, cfg.MaxWordLength)
	}
	if cfg.MaxWordLength > wordCap {
		return invalid(cfg, "maxWordLength %d exceeds the %s cap of %d", cfg.MaxWordLength, cfg.ProductType, wordCap)
	}
	if cfg.AllowedPattern == nil {
		return invalid(cfg, "allowed character pattern is required")
	}
	if len(cfg.AvailableLetterColors) == 0 {
		return invalid(cfg, "at least one letter color is required")
	}

	ids := make(map[string]bool, len(cfg.AvailableLetterColors))
	for _, c := range cfg.AvailableLetterColors {
		if c.ID == "" {
			return invalid(cfg, "letter color without id")
		}
		if ids[c.ID] {
			return invalid(cfg, "duplicate letter color %q", c.ID)
		}
		if c.Surcharge < 0 {
			return invalid(cfg, "letter color %q has negative surcharge", c.ID)
		}
		ids[c.ID] = true
	}
	if cfg.DefaultLetterColorID != "" && !ids[cfg.DefaultLetterColorID] {
		return invalid(cfg, "default letter color %q is not available", cfg.DefaultLetterColorID)
	}
	return nil
}

func validateImages(cfg *models.ProductConfig) error {
	lo, hi := cfg.ProductType.GapLengthRange()
	for n := range cfg.GapImageByLength {
		if n < lo || n > hi {
			return invalid(cfg, "gap image for %d characters is outside %d..%d", n, lo, hi)
		}
	}
	for k := range cfg.SpaceStoneImageByPositionAndParity {
		if k.Position < 1 || k.Position > models.MaxSpaceStonePosition {
			return invalid(cfg, "space stone position %d is outside 1..%d", k.Position, models.MaxSpaceStonePosition)
		}
		if k.Parity != models.ParityOdd && k.Parity != models.ParityEven {
			return invalid(cfg, "space stone parity %q", k.Parity)
		}
	}
	for n := range cfg.PositionImages {
		if n < 1 || n > models.MaxCharmPosition {
			return invalid(cfg, "charm position image %d is outside 1..%d", n, models.MaxCharmPosition)
		}
	}
	for n := range cfg.NoWordsPositionImages {
		if n < 1 || n > models.MaxNoWordsPosition {
			return invalid(cfg, "no-words position image %d is outside 1..%d", n, models.MaxNoWordsPosition)
		}
	}
	return nil
}
