package contracts

import (
	"bytes"
	"encoding/json"
)

// RawValueKind tags the shape a stored metric value arrived in.
// Upstream storage is schema-flexible: the same column holds plain
// numbers, numeric strings, and wrapper objects depending on which
// import path wrote the row.
type RawValueKind int

const (
	// RawValueInvalid marks a shape the extractor does not understand.
	RawValueInvalid RawValueKind = iota

	// RawValueNumber is a plain JSON number.
	RawValueNumber

	// RawValueString is a JSON string, possibly numeric.
	RawValueString

	// RawValueObject is a wrapper object, usually {"value": ...} or {"raw": "..."}.
	RawValueObject
)

// RawValue is the tagged union for a stored metric value. Exactly one
// of the payload fields is meaningful, selected by Kind.
type RawValue struct {
	Kind   RawValueKind
	Number float64
	Text   string
	Fields map[string]RawValue
}

// UnmarshalJSON decodes any JSON shape into the union. Unknown shapes
// (arrays, booleans, null) decode to RawValueInvalid rather than failing,
// so a single bad row never aborts a batch.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op against any target, so the
	// number attempt below would silently read it as 0. A stored null
	// must stay invalid, never become a phantom zero in aggregates.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = RawValue{Kind: RawValueInvalid}
		return nil
	}

	// Try number first: it is the dominant shape in practice.
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = RawValue{Kind: RawValueNumber, Number: num}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*v = RawValue{Kind: RawValueString, Text: str}
		return nil
	}

	var fields map[string]RawValue
	if err := json.Unmarshal(data, &fields); err == nil {
		*v = RawValue{Kind: RawValueObject, Fields: fields}
		return nil
	}

	*v = RawValue{Kind: RawValueInvalid}
	return nil
}

// MarshalJSON re-encodes the union in its original shape.
func (v RawValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case RawValueNumber:
		return json.Marshal(v.Number)
	case RawValueString:
		return json.Marshal(v.Text)
	case RawValueObject:
		return json.Marshal(v.Fields)
	default:
		return []byte("null"), nil
	}
}

// NumberValue wraps a plain number.
func NumberValue(n float64) RawValue {
	return RawValue{Kind: RawValueNumber, Number: n}
}

// StringValue wraps a string.
func StringValue(s string) RawValue {
	return RawValue{Kind: RawValueString, Text: s}
}

// ObjectValue wraps a field map.
func ObjectValue(fields map[string]RawValue) RawValue {
	return RawValue{Kind: RawValueObject, Fields: fields}
}
