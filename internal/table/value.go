package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the native scalar type of a cell value.
type Kind string

const (
	KindMissing Kind = "missing"
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindTime    Kind = "time"
	KindString  Kind = "string"
)

// Value is a single typed cell. The zero Value is the missing marker.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	t    time.Time
	s    string
}

// Missing returns the internal missing-value marker. All null tokens in
// source data normalize to this single representation before type
// inference or statistics run.
func Missing() Value { return Value{kind: KindMissing} }

// Bool returns a boolean cell value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer cell value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point cell value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Time returns a date/time cell value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// String returns a text cell value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the scalar kind of the value.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindMissing
	}
	return v.kind
}

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.Kind() == KindMissing }

// BoolValue returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.b }

// IntValue returns the integer payload. Only meaningful for KindInt.
func (v Value) IntValue() int64 { return v.i }

// FloatValue returns the numeric payload as float64 for KindInt and
// KindFloat values.
func (v Value) FloatValue() float64 {
	if v.Kind() == KindInt {
		return float64(v.i)
	}
	return v.f
}

// TimeValue returns the time payload. Only meaningful for KindTime.
func (v Value) TimeValue() time.Time { return v.t }

// TimeLayout returns the source layout a KindTime value was parsed
// from, or "" for values constructed directly from a time.Time.
func (v Value) TimeLayout() string {
	if v.Kind() != KindTime {
		return ""
	}
	return v.s
}

// StringValue returns the text payload. Only meaningful for KindString.
func (v Value) StringValue() string { return v.s }

// IsNumeric reports whether the value carries a number.
func (v Value) IsNumeric() bool {
	k := v.Kind()
	return k == KindInt || k == KindFloat
}

// String renders the value for display and for distinct/mode counting.
// Missing values render as an empty string.
func (v Value) String() string {
	switch v.Kind() {
	case KindMissing:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return v.s
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindMissing:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		// NaN cells compare equal to each other so round-trip
		// comparisons behave.
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	case KindTime:
		return v.t.Equal(other.t)
	default:
		return v.s == other.s
	}
}

// nullTokens are the raw strings treated as missing values, compared
// case-insensitively after trimming.
var nullTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nil":  {},
	"nan":  {},
	"-":    {},
}

// dateLayouts are the date/time formats recognized during parsing, tried
// in order. The first matching layout wins.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
}

// ParseOptions controls locale-dependent number parsing.
type ParseOptions struct {
	// Decimal is the decimal separator, default ".".
	Decimal string
	// Thousands is the thousands separator, default "," (empty disables).
	Thousands string
}

// DefaultParseOptions returns the parsing defaults for en-style numbers.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Decimal: ".", Thousands: ","}
}

// ParseValue converts a raw source token into a typed Value. Null
// sentinels map to the missing marker; booleans, numbers (honoring the
// configured separators) and recognized date layouts map to their typed
// kinds; everything else stays text.
func ParseValue(raw string, opts ParseOptions) Value {
	trimmed := strings.TrimSpace(raw)
	if _, ok := nullTokens[strings.ToLower(trimmed)]; ok {
		return Missing()
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if v, ok := parseNumber(trimmed, opts); ok {
		return v
	}

	if layout, ok := ParseValueLayout(trimmed); ok {
		t, _ := time.Parse(layout, trimmed)
		v := Time(t)
		v.s = layout
		return v
	}

	return String(trimmed)
}

// ParseValueLayout reports the date layout a raw token matches, if any.
// Used to record the detected format in column metadata.
func ParseValueLayout(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return layout, true
		}
	}
	return "", false
}

func parseNumber(s string, opts ParseOptions) (Value, bool) {
	if s == "" {
		return Value{}, false
	}
	decimal := opts.Decimal
	if decimal == "" {
		decimal = "."
	}
	normalized := s
	if opts.Thousands != "" && opts.Thousands != decimal {
		normalized = strings.ReplaceAll(normalized, opts.Thousands, "")
	}
	if decimal != "." {
		if strings.Contains(normalized, ".") {
			// A "." that is neither the decimal nor the thousands
			// separator means this is not a number in this locale.
			return Value{}, false
		}
		normalized = strings.ReplaceAll(normalized, decimal, ".")
	}

	if i, err := strconv.ParseInt(normalized, 10, 64); err == nil {
		return Int(i), true
	}
	if f, err := strconv.ParseFloat(normalized, 64); err == nil {
		return Float(f), true
	}
	return Value{}, false
}

// ValueError reports a cell that cannot be represented.
type ValueError struct {
	Column string
	Row    int
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("column %q row %d: %s", e.Column, e.Row, e.Reason)
}
