package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/fundlens/backend/internal/contracts"
)

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name   string
		raw    contracts.RawValue
		want   float64
		wantOK bool
	}{
		{
			name:   "plain number",
			raw:    contracts.NumberValue(1250000),
			want:   1250000,
			wantOK: true,
		},
		{
			name:   "negative number",
			raw:    contracts.NumberValue(-42.5),
			want:   -42.5,
			wantOK: true,
		},
		{
			name:   "numeric string",
			raw:    contracts.StringValue("300.25"),
			want:   300.25,
			wantOK: true,
		},
		{
			name:   "numeric string with whitespace",
			raw:    contracts.StringValue("  98 "),
			want:   98,
			wantOK: true,
		},
		{
			name:   "non-numeric string",
			raw:    contracts.StringValue("n/a"),
			wantOK: false,
		},
		{
			name:   "empty string",
			raw:    contracts.StringValue(""),
			wantOK: false,
		},
		{
			name: "object with numeric value field",
			raw: contracts.ObjectValue(map[string]contracts.RawValue{
				"value": contracts.NumberValue(500),
			}),
			want:   500,
			wantOK: true,
		},
		{
			name: "object with numeric-string value field",
			raw: contracts.ObjectValue(map[string]contracts.RawValue{
				"value": contracts.StringValue("500"),
			}),
			want:   500,
			wantOK: true,
		},
		{
			name: "object with raw string field",
			raw: contracts.ObjectValue(map[string]contracts.RawValue{
				"raw": contracts.StringValue("987.25"),
			}),
			want:   987.25,
			wantOK: true,
		},
		{
			name: "object with unparseable raw field",
			raw: contracts.ObjectValue(map[string]contracts.RawValue{
				"raw": contracts.StringValue("pending"),
			}),
			wantOK: false,
		},
		{
			name: "object with nested object value does not recurse twice",
			raw: contracts.ObjectValue(map[string]contracts.RawValue{
				"value": contracts.ObjectValue(map[string]contracts.RawValue{
					"value": contracts.NumberValue(7),
				}),
			}),
			wantOK: false,
		},
		{
			name:   "object with no known fields",
			raw:    contracts.ObjectValue(map[string]contracts.RawValue{"unit": contracts.StringValue("USD")}),
			wantOK: false,
		},
		{
			name:   "invalid shape",
			raw:    contracts.RawValue{Kind: contracts.RawValueInvalid},
			wantOK: false,
		},
		{
			name:   "NaN is rejected",
			raw:    contracts.NumberValue(math.NaN()),
			wantOK: false,
		},
		{
			name:   "infinity is rejected",
			raw:    contracts.NumberValue(math.Inf(1)),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractValue(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractValue_FromStoredJSON(t *testing.T) {
	// Shapes exactly as they come out of the jsonb column
	rows := []struct {
		data   string
		want   float64
		wantOK bool
	}{
		{`120000`, 120000, true},
		{`"120000"`, 120000, true},
		{`{"value": 120000}`, 120000, true},
		{`{"raw": "120000"}`, 120000, true},
		{`[120000]`, 0, false},
		{`null`, 0, false},
		{`{"value": null}`, 0, false},
		{` null `, 0, false},
	}

	for _, row := range rows {
		var rv contracts.RawValue
		if err := json.Unmarshal([]byte(row.data), &rv); err != nil {
			t.Fatalf("unmarshal %s: %v", row.data, err)
		}

		got, ok := ExtractValue(rv)
		if ok != row.wantOK {
			t.Errorf("%s: ok = %v, want %v", row.data, ok, row.wantOK)
			continue
		}
		if ok && got != row.want {
			t.Errorf("%s: value = %v, want %v", row.data, got, row.want)
		}
	}
}
