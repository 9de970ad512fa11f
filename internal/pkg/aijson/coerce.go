package aijson

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// First returns the first non-null value among keys, in order.
func First(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String coerces scalars to their string form. Numbers keep the literal the
// model wrote unless it used exponent notation.
func String(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		lit := x.String()
		if strings.ContainsAny(lit, "eE") {
			if f, err := x.Float64(); err == nil {
				return strconv.FormatFloat(f, 'f', -1, 64), true
			}
		}
		return lit, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// StringPtr is String returning nil when v is absent or not a scalar.
func StringPtr(v any) *string {
	s, ok := String(v)
	if !ok {
		return nil
	}
	return &s
}

// StringList accepts a single string (promoted to a one-element list) or a
// list; non-scalar list items are dropped. Never returns nil.
func StringList(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := String(item); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string{}, x...)
	default:
		return []string{}
	}
}

// Int coerces numbers and numeric strings, rounding fractions.
func Int(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
		if f, err := x.Float64(); err == nil {
			return int(math.Round(f)), true
		}
	case float64:
		return int(math.Round(x)), true
	case int:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}
