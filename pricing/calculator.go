package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeAmount is returned when a price component is below zero
var ErrNegativeAmount = errors.New("negative amount")

// ErrOverflow is returned when the total does not fit in int64 minor units
var ErrOverflow = errors.New("price overflow")

// Breakdown shows how a total was built. All amounts are minor units.
type Breakdown struct {
	BasePrice            int64   `json:"basePrice"`
	LetterColorSurcharge int64   `json:"letterColorSurcharge"`
	CharmPrices          []int64 `json:"charmPrices"`
	CharmsTotal          int64   `json:"charmsTotal"`
	Total                int64   `json:"total"`
}

// ComputePrice returns basePrice + letterColorSurcharge + sum(charmPrices).
// No rounding is done here; formatting belongs to the caller.
func ComputePrice(basePrice, letterColorSurcharge int64, charmPrices []int64) (int64, error) {
	b, err := Calculate(basePrice, letterColorSurcharge, charmPrices)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Calculate is ComputePrice with the intermediate sums kept
func Calculate(basePrice, letterColorSurcharge int64, charmPrices []int64) (Breakdown, error) {
	if basePrice < 0 {
		return Breakdown{}, fmt.Errorf("base price %d: %w", basePrice, ErrNegativeAmount)
	}
	if letterColorSurcharge < 0 {
		return Breakdown{}, fmt.Errorf("letter color surcharge %d: %w", letterColorSurcharge, ErrNegativeAmount)
	}

	var charmsTotal int64
	var ok bool
	for i, p := range charmPrices {
		if p < 0 {
			return Breakdown{}, fmt.Errorf("charm %d price %d: %w", i, p, ErrNegativeAmount)
		}
		if charmsTotal, ok = add(charmsTotal, p); !ok {
			return Breakdown{}, ErrOverflow
		}
	}

	total, ok := add(basePrice, letterColorSurcharge)
	if !ok {
		return Breakdown{}, ErrOverflow
	}
	if total, ok = add(total, charmsTotal); !ok {
		return Breakdown{}, ErrOverflow
	}

	prices := make([]int64, len(charmPrices))
	copy(prices, charmPrices)

	return Breakdown{
		BasePrice:            basePrice,
		LetterColorSurcharge: letterColorSurcharge,
		CharmPrices:          prices,
		CharmsTotal:          charmsTotal,
		Total:                total,
	}, nil
}

// add sums two non-negative amounts, reporting false on overflow
func add(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return -1, false
	}
	return a + b, true
}

// LineTotal returns unitPrice * qty, rejecting negatives and overflow
func LineTotal(unitPrice int64, qty int) (int64, error) {
	if unitPrice < 0 {
		return 0, fmt.Errorf("unit price %d: %w", unitPrice, ErrNegativeAmount)
	}
	if qty < 0 {
		return 0, fmt.Errorf("quantity %d: %w", qty, ErrNegativeAmount)
	}
	if qty > 0 && unitPrice > math.MaxInt64/int64(qty) {
		return 0, ErrOverflow
	}
	return unitPrice * int64(qty), nil
}
