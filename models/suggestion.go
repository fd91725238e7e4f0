package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// AppliedStatus tracks what happened to an AI suggestion after generation.
// Only NeedsReview and Pending are actionable from the dashboard; every
// other status is terminal and the UI renders no controls for it.
type AppliedStatus string

const (
	AppliedStatusNeedsReview   AppliedStatus = "needs_review"
	AppliedStatusPending       AppliedStatus = "pending"
	AppliedStatusAutoApplied   AppliedStatus = "auto_applied"
	AppliedStatusManualApplied AppliedStatus = "manual_applied"
	AppliedStatusRejected      AppliedStatus = "rejected"
)

// Actionable reports whether accept/reject may still be offered for a
// suggestion in this status.
func (s AppliedStatus) Actionable() bool {
	return s == AppliedStatusNeedsReview || s == AppliedStatusPending
}

// SuggestedValueKind discriminates the JSON shapes a generation run may
// propose for a target field.
type SuggestedValueKind int

const (
	ValueAbsent SuggestedValueKind = iota
	ValueScalar
	ValueSequence
	ValueObject
)

// SuggestedValue is the proposed value carried by a suggestion. The upstream
// generator emits whatever JSON shape the target field takes (string, number,
// list, object or null), so the payload is decoded once into a tagged union
// instead of being re-inspected at render time.
type SuggestedValue struct {
	Kind     SuggestedValueKind
	Scalar   string
	Sequence []string
	Object   map[string]interface{}
}

// UnmarshalJSON dispatches on the JSON shape of the payload.
func (v *SuggestedValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = SuggestedValue{Kind: ValueAbsent}
		return nil
	}
	switch data[0] {
	case '[':
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		seq := make([]string, 0, len(raw))
		for _, el := range raw {
			seq = append(seq, scalarText(el))
		}
		*v = SuggestedValue{Kind: ValueSequence, Sequence: seq}
		return nil
	case '{':
		var obj map[string]interface{}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*v = SuggestedValue{Kind: ValueObject, Object: obj}
		return nil
	default:
		var raw interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*v = SuggestedValue{Kind: ValueScalar, Scalar: scalarText(raw)}
		return nil
	}
}

// MarshalJSON emits the union back in its wire shape.
func (v SuggestedValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueScalar:
		return json.Marshal(v.Scalar)
	case ValueSequence:
		return json.Marshal(v.Sequence)
	case ValueObject:
		return json.Marshal(v.Object)
	default:
		return []byte("null"), nil
	}
}

// scalarText renders a decoded JSON scalar as display text. Numbers keep
// their shortest decimal form rather than the float64 default formatting.
func scalarText(raw interface{}) string {
	switch val := raw.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// AISuggestion is one machine-generated change proposal against a catalog
// entity. Confidence is a fraction in [0, 1].
type AISuggestion struct {
	ID             string         `json:"id"`
	RunID          string         `json:"ai_run_id"`
	SuggestionType string         `json:"suggestion_type"`
	TargetEntity   string         `json:"target_entity"`
	TargetID       string         `json:"target_id"`
	FieldName      *string        `json:"field_name,omitempty"`
	SuggestedValue SuggestedValue `json:"suggested_value"`
	Confidence     float64        `json:"confidence"`
	AppliedStatus  AppliedStatus  `json:"applied_status"`
	AppliedAt      *time.Time     `json:"applied_at,omitempty"`
	AppliedBy      *string        `json:"applied_by,omitempty"`
	ItemRawName    *string        `json:"item_raw_name,omitempty"`
	SupplierName   *string        `json:"supplier_name,omitempty"`
}
