package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{0, "USD", "$0.00"},
		{5, "USD", "$0.05"},
		{1000, "USD", "$10.00"},
		{2800, "usd", "$28.00"},
		{123456, "USD", "$1,234.56"},
		{100000000, "USD", "$1,000,000.00"},
		{1500, "EUR", "€15.00"},
		{1500, "GBP", "£15.00"},
		{1500, "", "$15.00"},
		{-250, "USD", "-$2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.amount, tt.currency))
		})
	}
}
