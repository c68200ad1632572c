package customizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bracelet-customizer/models"
)

// Display keys shown next to a cart or order line
const (
	DisplayWord        = "Word"
	DisplayLetterColor = "Letter Color"
	DisplayCharms      = "Charms"
	DisplaySize        = "Size"
)

// DisplayFields returns the customization summary in display order.
// cfg is used for the letter color name and may be nil.
func DisplayFields(record *models.CustomizationRecord, cfg *models.ProductConfig) []models.DisplayField {
	fields := []models.DisplayField{}
	if record == nil {
		return fields
	}

	if record.Word != "" {
		fields = append(fields, models.DisplayField{Key: DisplayWord, Value: strings.ToUpper(record.Word)})
	}

	if record.LetterColorID != "" {
		name := ""
		if cfg != nil {
			if c, ok := cfg.LetterColor(record.LetterColorID); ok {
				name = c.Name
			}
		}
		if name == "" {
			name = capitalize(record.LetterColorID)
		}
		fields = append(fields, models.DisplayField{Key: DisplayLetterColor, Value: name})
	}

	if len(record.SelectedCharms) > 0 {
		names := make([]string, 0, len(record.SelectedCharms))
		for _, c := range record.SelectedCharms {
			names = append(names, c.Name)
		}
		fields = append(fields, models.DisplayField{Key: DisplayCharms, Value: strings.Join(names, ", ")})
	}

	if record.Size != "" {
		fields = append(fields, models.DisplayField{Key: DisplaySize, Value: strings.ToUpper(record.Size)})
	}

	return fields
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
