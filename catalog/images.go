package catalog

import (
	"unicode/utf8"

	"bracelet-customizer/models"
)

// SpaceStone is the lookup result for one literal space in a word
type SpaceStone struct {
	Position int             `json:"position"` // 1-based, in characters
	Parity   models.Parity   `json:"parity"`   // parity of the whole word length
	Image    models.ImageRef `json:"image,omitempty"`
	Found    bool            `json:"found"`
}

// GapImage looks up the gap image for a word of wordLength characters.
// A missing entry is not an error; callers fall back to the main image.
func GapImage(cfg *models.ProductConfig, wordLength int) (models.ImageRef, bool) {
	if cfg == nil {
		return "", false
	}
	ref, ok := cfg.GapImageByLength[wordLength]
	return ref, ok
}

// SpaceStoneImage looks up the stone image for a position and word-length parity
func SpaceStoneImage(cfg *models.ProductConfig, position int, parity models.Parity) (models.ImageRef, bool) {
	if cfg == nil {
		return "", false
	}
	ref, ok := cfg.SpaceStoneImageByPositionAndParity[models.SpaceStoneKey{Position: position, Parity: parity}]
	return ref, ok
}

// SpaceStoneImages returns one entry per literal space in word.
// Every entry uses the parity of the total word length, wherever the space sits.
func SpaceStoneImages(cfg *models.ProductConfig, word string) []SpaceStone {
	parity := models.ParityOf(utf8.RuneCountInString(word))

	var stones []SpaceStone
	pos := 0
	for _, r := range word {
		pos++
		if r != ' ' {
			continue
		}
		ref, ok := SpaceStoneImage(cfg, pos, parity)
		stones = append(stones, SpaceStone{Position: pos, Parity: parity, Image: ref, Found: ok})
	}
	return stones
}
