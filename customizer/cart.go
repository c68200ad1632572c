package customizer

import (
	"errors"
	"fmt"

	"bracelet-customizer/models"
	"bracelet-customizer/pricing"
)

// MaxCartQuantity is the largest quantity accepted for one customization
const MaxCartQuantity = 99

// ErrInvalidQuantity is returned for cart quantities outside 1..MaxCartQuantity
var ErrInvalidQuantity = fmt.Errorf("quantity must be between 1 and %d", MaxCartQuantity)

// BuildCartLines splits a record into the lines handed to the external cart:
// one bracelet line without charms, then one line per charm at its captured price.
// Every line shares the same quantity.
func BuildCartLines(record *models.CustomizationRecord, qty int) ([]models.CartLine, error) {
	if record == nil {
		return nil, errors.New("nil customization record")
	}
	if qty < 1 || qty > MaxCartQuantity {
		return nil, ErrInvalidQuantity
	}
	// Line totals sum to this, so LinesTotal cannot overflow once it fits
	if _, err := pricing.LineTotal(record.ComputedPrice, qty); err != nil {
		return nil, fmt.Errorf("customization %s: %w", record.ID, err)
	}

	braceletPrice := record.ComputedPrice - record.CharmsTotal()
	if braceletPrice < 0 {
		return nil, fmt.Errorf("customization %s: charms exceed computed price", record.ID)
	}

	braceletTotal, err := pricing.LineTotal(braceletPrice, qty)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(record.SelectedCharms)+1)
	lines = append(lines, models.CartLine{
		Key:             record.ID + ":bracelet",
		Kind:            models.CartLineBracelet,
		ProductID:       record.ProductID,
		Qty:             qty,
		UnitPrice:       braceletPrice,
		LineTotal:       braceletTotal,
		CustomizationID: record.ID,
	})

	for i, c := range record.SelectedCharms {
		charmTotal, err := pricing.LineTotal(c.Price, qty)
		if err != nil {
			return nil, fmt.Errorf("charm %s: %w", c.ID, err)
		}
		lines = append(lines, models.CartLine{
			Key:             fmt.Sprintf("%s:charm:%d:%s", record.ID, i, c.ID),
			Kind:            models.CartLineCharm,
			ProductID:       c.ID,
			Name:            c.Name,
			Qty:             qty,
			UnitPrice:       c.Price,
			LineTotal:       charmTotal,
			CustomizationID: record.ID,
		})
	}

	return lines, nil
}

// LinesTotal sums line totals
func LinesTotal(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal
	}
	return total
}
