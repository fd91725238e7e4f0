// Package format holds the presentation rules shared by every dashboard view.
// All functions are pure and deterministic so the same input renders the same
// bytes at every call site.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/shopspring/decimal"
)

// Tone is the semantic color band attached to a label.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneCaution  Tone = "caution"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneInfo     Tone = "info"
)

// Badge couples a display label with its tone.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// Confidence renders a [0,1] fraction as a rounded percentage with its band.
// Boundaries land on the higher band: 0.90 is positive, 0.70 is caution.
func Confidence(c float64) (string, Tone) {
	label := fmt.Sprintf("%d%%", int(math.Round(c*100)))
	switch {
	case c >= 0.90:
		return label, TonePositive
	case c >= 0.70:
		return label, ToneCaution
	default:
		return label, ToneNegative
	}
}

var fieldLabels = map[string]string{
	"name":              "Name",
	"description":       "Description",
	"flower_type":       "Flower type",
	"variety":           "Variety",
	"color":             "Color",
	"stem_height_cm":    "Stem height (cm)",
	"stems_per_pack":    "Stems per pack",
	"country_of_origin": "Country of origin",
	"maturity":          "Maturity",
	"price":             "Price",
}

// FieldLabel maps a machine field name to its display label. Unmapped names
// pass through unchanged.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

// Value renders a suggested value for display. Sequences join with a comma,
// objects serialize to canonical JSON (sorted keys), absent values render as
// an em dash.
func Value(v models.SuggestedValue) string {
	switch v.Kind {
	case models.ValueSequence:
		return strings.Join(v.Sequence, ", ")
	case models.ValueObject:
		b, err := json.Marshal(v.Object)
		if err != nil {
			return "—"
		}
		return string(b)
	case models.ValueScalar:
		return v.Scalar
	default:
		return "—"
	}
}

var suggestionBadges = map[models.AppliedStatus]Badge{
	models.AppliedStatusNeedsReview:   {Label: "Needs review", Tone: ToneCaution},
	models.AppliedStatusPending:       {Label: "Pending", Tone: ToneInfo},
	models.AppliedStatusAutoApplied:   {Label: "Applied automatically", Tone: TonePositive},
	models.AppliedStatusManualApplied: {Label: "Applied manually", Tone: TonePositive},
	models.AppliedStatusRejected:      {Label: "Rejected", Tone: ToneNeutral},
}

// SuggestionBadge maps an applied status to its badge. Unknown statuses fall
// back to the raw status text with a neutral tone.
func SuggestionBadge(status models.AppliedStatus) Badge {
	if b, ok := suggestionBadges[status]; ok {
		return b
	}
	return Badge{Label: string(status), Tone: ToneNeutral}
}

// ImportBadge maps a batch status to its badge. A published batch that still
// carries parse errors is flagged as published with warnings.
func ImportBadge(status models.ImportStatus, parseErrors int) Badge {
	switch status {
	case models.ImportStatusPublished:
		if parseErrors > 0 {
			return Badge{Label: "Published with warnings", Tone: ToneCaution}
		}
		return Badge{Label: "Published", Tone: TonePositive}
	case models.ImportStatusFailed:
		return Badge{Label: "Import failed", Tone: ToneNegative}
	case models.ImportStatusParsed:
		return Badge{Label: "Parsed", Tone: ToneInfo}
	case models.ImportStatusReceived:
		return Badge{Label: "Received", Tone: ToneInfo}
	default:
		return Badge{Label: string(status), Tone: ToneNeutral}
	}
}

var orderBadges = map[models.OrderStatus]Badge{
	models.OrderStatusNew:       {Label: "New", Tone: ToneInfo},
	models.OrderStatusConfirmed: {Label: "Confirmed", Tone: TonePositive},
	models.OrderStatusAssembled: {Label: "Assembled", Tone: ToneInfo},
	models.OrderStatusShipped:   {Label: "Shipped", Tone: ToneInfo},
	models.OrderStatusCompleted: {Label: "Completed", Tone: TonePositive},
	models.OrderStatusCancelled: {Label: "Cancelled", Tone: ToneNegative},
}

// OrderBadge maps an order status to its badge.
func OrderBadge(status models.OrderStatus) Badge {
	if b, ok := orderBadges[status]; ok {
		return b
	}
	return Badge{Label: string(status), Tone: ToneNeutral}
}

var candidateBadges = map[string]Badge{
	"pending":   {Label: "Awaiting review", Tone: ToneInfo},
	"published": {Label: "Published", Tone: TonePositive},
	"discarded": {Label: "Discarded", Tone: ToneNeutral},
	"error":     {Label: "Error", Tone: ToneNegative},
}

// CandidateBadge maps an offer-candidate status to its badge.
func CandidateBadge(status string) Badge {
	if b, ok := candidateBadges[status]; ok {
		return b
	}
	return Badge{Label: status, Tone: ToneNeutral}
}

// Money renders an amount with two decimal places and its currency code.
func Money(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}

// Optional renders an optional string, falling back to an em dash. Used for
// source filenames and denormalized display names that the marketplace may
// omit.
func Optional(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
