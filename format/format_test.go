package format_test

import (
	"encoding/json"
	"testing"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/format"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceBands(t *testing.T) {
	cases := []struct {
		c     float64
		label string
		tone  format.Tone
	}{
		{0.92, "92%", format.TonePositive},
		{0.90, "90%", format.TonePositive},
		{0.895, "90%", format.ToneCaution},
		{0.70, "70%", format.ToneCaution},
		{0.699, "70%", format.ToneNegative},
		{0.45, "45%", format.ToneNegative},
		{1.0, "100%", format.TonePositive},
		{0, "0%", format.ToneNegative},
	}
	for _, tc := range cases {
		label, tone := format.Confidence(tc.c)
		assert.Equal(t, tc.label, label, "confidence %v", tc.c)
		assert.Equal(t, tc.tone, tone, "confidence %v", tc.c)
	}
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Flower type", format.FieldLabel("flower_type"))
	assert.Equal(t, "Stem height (cm)", format.FieldLabel("stem_height_cm"))
	assert.Equal(t, "mystery_field", format.FieldLabel("mystery_field"))
}

func TestValueRendering(t *testing.T) {
	var seq models.SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`["red","white","pink"]`), &seq))
	assert.Equal(t, "red, white, pink", format.Value(seq))

	var obj models.SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`{"min":50,"max":70}`), &obj))
	// map marshalling sorts keys, so the canonical form is stable
	assert.Equal(t, `{"max":70,"min":50}`, format.Value(obj))

	var absent models.SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`null`), &absent))
	assert.Equal(t, "—", format.Value(absent))

	var scalar models.SuggestedValue
	require.NoError(t, json.Unmarshal([]byte(`60`), &scalar))
	assert.Equal(t, "60", format.Value(scalar))
}

func TestSuggestionBadge(t *testing.T) {
	b := format.SuggestionBadge(models.AppliedStatusManualApplied)
	assert.Equal(t, "Applied manually", b.Label)
	assert.Equal(t, format.TonePositive, b.Tone)

	unknown := format.SuggestionBadge(models.AppliedStatus("archived"))
	assert.Equal(t, "archived", unknown.Label)
	assert.Equal(t, format.ToneNeutral, unknown.Tone)
}

func TestImportBadgePublishedWithWarnings(t *testing.T) {
	warn := format.ImportBadge(models.ImportStatusPublished, 4)
	assert.Equal(t, "Published with warnings", warn.Label)
	assert.Equal(t, format.ToneCaution, warn.Tone)

	clean := format.ImportBadge(models.ImportStatusPublished, 0)
	assert.Equal(t, "Published", clean.Label)
	assert.Equal(t, format.TonePositive, clean.Tone)

	failed := format.ImportBadge(models.ImportStatusFailed, 0)
	assert.Equal(t, format.ToneNegative, failed.Tone)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1250.50 RUB", format.Money(decimal.RequireFromString("1250.5"), "RUB"))
	assert.Equal(t, "3.00 EUR", format.Money(decimal.NewFromInt(3), "EUR"))
}

func TestOptionalFallsBackToDash(t *testing.T) {
	name := "prices.xlsx"
	assert.Equal(t, "prices.xlsx", format.Optional(&name))
	assert.Equal(t, "—", format.Optional(nil))
	empty := ""
	assert.Equal(t, "—", format.Optional(&empty))
}
