package model

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/datainspect/datainspect/internal/table"
)

// maxSafeInt is the largest integer a JSON number can carry without
// losing precision. Larger integers are emitted as strings, with the
// cell kind recording that they are integers.
const maxSafeInt = int64(1) << 53

// portableValue converts a typed cell into a plain scalar a textual
// serializer can represent: nil, bool, float64 or string. It is total
// for every value a valid column can hold; the cell's kind travels
// alongside so the inverse conversion is exact.
func portableValue(v table.Value) any {
	switch v.Kind() {
	case table.KindMissing:
		return nil
	case table.KindBool:
		return v.BoolValue()
	case table.KindInt:
		i := v.IntValue()
		if i > maxSafeInt || i < -maxSafeInt {
			return strconv.FormatInt(i, 10)
		}
		return float64(i)
	case table.KindFloat:
		return portableFloat(v.FloatValue())
	case table.KindTime:
		return v.TimeValue().Format(time.RFC3339Nano)
	default:
		return v.StringValue()
	}
}

// portableFloat maps the float sentinels a plain number cannot express
// to explicit strings.
func portableFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

// valueFromPortable reconstructs a typed cell from its portable form.
func valueFromPortable(kind table.Kind, raw any) (table.Value, error) {
	switch kind {
	case table.KindMissing:
		return table.Missing(), nil
	case table.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return table.Value{}, fmt.Errorf("bool cell holds %T", raw)
		}
		return table.Bool(b), nil
	case table.KindInt:
		switch n := raw.(type) {
		case float64:
			return table.Int(int64(n)), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return table.Value{}, fmt.Errorf("int cell %q: %w", n, err)
			}
			return table.Int(i), nil
		default:
			return table.Value{}, fmt.Errorf("int cell holds %T", raw)
		}
	case table.KindFloat:
		f, err := floatFromPortable(raw)
		if err != nil {
			return table.Value{}, err
		}
		return table.Float(f), nil
	case table.KindTime:
		s, ok := raw.(string)
		if !ok {
			return table.Value{}, fmt.Errorf("time cell holds %T", raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return table.Value{}, fmt.Errorf("time cell %q: %w", s, err)
		}
		return table.Time(t), nil
	case table.KindString:
		s, ok := raw.(string)
		if !ok {
			return table.Value{}, fmt.Errorf("string cell holds %T", raw)
		}
		return table.String(s), nil
	}
	return table.Value{}, fmt.Errorf("unknown cell kind %q", kind)
}

// floatFromPortable accepts a plain number or a float sentinel string.
func floatFromPortable(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case string:
		switch n {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("unrecognized float sentinel %q", n)
	default:
		return 0, fmt.Errorf("float holds %T", raw)
	}
}

// portableAny normalizes free-form metadata recursively: integers become
// plain numbers, times become strings, maps and slices are walked.
// Values that survive a JSON round-trip unchanged pass through as-is.
// Anything else cannot be represented and fails loudly rather than
// being dropped.
func portableAny(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case float64:
		return portableFloat(x), nil
	case float32:
		return portableFloat(float64(x)), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		if x > maxSafeInt || x < -maxSafeInt {
			return strconv.FormatInt(x, 10), nil
		}
		return float64(x), nil
	case uint64:
		if x > uint64(maxSafeInt) {
			return strconv.FormatUint(x, 10), nil
		}
		return float64(x), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case table.Value:
		return portableValue(x), nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			p, err := portableAny(item)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			out[k] = p
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			p, err := portableAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = p
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %T is not serializable", v)
	}
}
