package customizer

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracelet-customizer/models"
	"bracelet-customizer/pricing"
)

func sampleRecord() *models.CustomizationRecord {
	return &models.CustomizationRecord{
		ID:            "rec-1",
		SessionID:     "session_1",
		ProductID:     "bluestone",
		Word:          "let them",
		LetterColorID: "gold",
		SelectedCharms: []models.CharmSnapshot{
			{ID: "heart", Name: "Heart", Price: 500},
			{ID: "star", Name: "Star", Price: 300},
		},
		Size:          "m/l",
		ComputedPrice: 2800,
		CreatedAt:     time.Unix(1700000000, 0).UTC(),
	}
}

func TestBuildCartLines(t *testing.T) {
	lines, err := BuildCartLines(sampleRecord(), 2)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, models.CartLineBracelet, lines[0].Kind)
	assert.Equal(t, "bluestone", lines[0].ProductID)
	assert.Equal(t, int64(2000), lines[0].UnitPrice)
	assert.Equal(t, int64(4000), lines[0].LineTotal)

	assert.Equal(t, models.CartLineCharm, lines[1].Kind)
	assert.Equal(t, "heart", lines[1].ProductID)
	assert.Equal(t, int64(500), lines[1].UnitPrice)
	assert.Equal(t, 2, lines[1].Qty)
	assert.Equal(t, int64(600), lines[2].LineTotal)

	keys := map[string]bool{}
	for _, l := range lines {
		assert.Equal(t, "rec-1", l.CustomizationID)
		keys[l.Key] = true
	}
	assert.Len(t, keys, 3, "keys are unique")

	assert.Equal(t, int64(2800*2), LinesTotal(lines))
}

func TestBuildCartLinesSameCharmTwice(t *testing.T) {
	rec := sampleRecord()
	rec.SelectedCharms = []models.CharmSnapshot{{ID: "heart", Name: "Heart", Price: 500}, {ID: "heart", Name: "Heart", Price: 500}}
	rec.ComputedPrice = 3000

	lines, err := BuildCartLines(rec, 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.NotEqual(t, lines[1].Key, lines[2].Key)
	assert.Equal(t, int64(3000), LinesTotal(lines))
}

func TestBuildCartLinesErrors(t *testing.T) {
	_, err := BuildCartLines(sampleRecord(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BuildCartLines(nil, 1)
	assert.Error(t, err)

	_, err = BuildCartLines(sampleRecord(), MaxCartQuantity+1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	rec := sampleRecord()
	rec.ComputedPrice = 100
	_, err = BuildCartLines(rec, 1)
	assert.Error(t, err)
}

func TestBuildCartLinesOverflow(t *testing.T) {
	rec := sampleRecord()
	rec.SelectedCharms = []models.CharmSnapshot{{ID: "heart", Name: "Heart", Price: math.MaxInt64 / 4}}
	rec.ComputedPrice = math.MaxInt64/4 + 2500

	_, err := BuildCartLines(rec, 5)
	assert.ErrorIs(t, err, pricing.ErrOverflow)

	lines, err := BuildCartLines(rec, 1)
	require.NoError(t, err)
	assert.Equal(t, rec.ComputedPrice, LinesTotal(lines))

	lines, err = BuildCartLines(sampleRecord(), MaxCartQuantity)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Positive(t, l.LineTotal)
	}
	assert.Equal(t, int64(2800*MaxCartQuantity), LinesTotal(lines))
}

func TestDisplayFields(t *testing.T) {
	cfg := standardConfig()

	fields := DisplayFields(sampleRecord(), cfg)
	assert.Equal(t, []models.DisplayField{
		{Key: DisplayWord, Value: "LET THEM"},
		{Key: DisplayLetterColor, Value: "Gold"},
		{Key: DisplayCharms, Value: "Heart, Star"},
		{Key: DisplaySize, Value: "M/L"},
	}, fields)
}

func TestDisplayFieldsFallbacks(t *testing.T) {
	rec := sampleRecord()
	rec.LetterColorID = "silver"
	rec.SelectedCharms = nil
	rec.Word = ""

	fields := DisplayFields(rec, nil)
	assert.Equal(t, []models.DisplayField{
		{Key: DisplayLetterColor, Value: "Silver"},
		{Key: DisplaySize, Value: "M/L"},
	}, fields)

	assert.Empty(t, DisplayFields(nil, nil))

	rec.LetterColorID = "émeraude"
	fields = DisplayFields(rec, nil)
	assert.Equal(t, "Émeraude", fields[0].Value)
	assert.True(t, utf8.ValidString(fields[0].Value))
}
