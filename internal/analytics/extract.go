package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/fundlens/backend/internal/contracts"
)

// ExtractValue normalizes a raw stored metric value into a float64.
// The second return is false when the value is not a usable number.
// The function is total: any shape the union can hold produces a
// result, never a panic, because upstream storage is schema-flexible
// and a single malformed row must not abort a batch.
func ExtractValue(rv contracts.RawValue) (float64, bool) {
	switch rv.Kind {
	case contracts.RawValueNumber:
		return finite(rv.Number)

	case contracts.RawValueString:
		return parseNumeric(rv.Text)

	case contracts.RawValueObject:
		// Wrapper objects carry the number under "value", or as a raw
		// string under "raw". Recurse one level only.
		if inner, ok := rv.Fields["value"]; ok {
			switch inner.Kind {
			case contracts.RawValueNumber:
				return finite(inner.Number)
			case contracts.RawValueString:
				return parseNumeric(inner.Text)
			}
			return 0, false
		}
		if inner, ok := rv.Fields["raw"]; ok && inner.Kind == contracts.RawValueString {
			return parseNumeric(inner.Text)
		}
		return 0, false

	case contracts.RawValueInvalid:
		return 0, false
	}

	return 0, false
}

func parseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return finite(v)
}

// finite rejects NaN and infinities so they never enter aggregation.
func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
