package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, "S/M", NormalizeSize(" s/m "))
	assert.Equal(t, "M/L", NormalizeSize("m-l"))
	assert.Equal(t, "XS", NormalizeSize("xs"))
	assert.Equal(t, "", NormalizeSize("   "))
}

func TestMatchSize(t *testing.T) {
	sizes := []string{"XS", "S/M", "M/L", "L/XL"}

	got, ok := MatchSize("m/l", sizes)
	assert.True(t, ok)
	assert.Equal(t, "M/L", got)

	got, ok = MatchSize(" l-xl", sizes)
	assert.True(t, ok)
	assert.Equal(t, "L/XL", got)

	_, ok = MatchSize("XXL", sizes)
	assert.False(t, ok)

	_, ok = MatchSize("", sizes)
	assert.False(t, ok)

	_, ok = MatchSize("M", nil)
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"New Drops & Favs": "new-drops-favs",
		"Bestsellers":      "bestsellers",
		"  Love  Charms ":  "love-charms",
		"Tiny Words!":      "tiny-words",
		"":                 "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Slugify(in))
		})
	}
}
