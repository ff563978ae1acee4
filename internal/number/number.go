package number

import (
	"encoding/json"
	"math"
	"strings"
)

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		if i, ok := ToInt64(value); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ToInt64 converts integer-typed values into int64. Unsigned values above
// math.MaxInt64 are rejected rather than wrapped.
func ToInt64(value any) (int64, bool) {
	switch current := value.(type) {
	case int:
		return int64(current), true
	case int8:
		return int64(current), true
	case int16:
		return int64(current), true
	case int32:
		return int64(current), true
	case int64:
		return current, true
	case uint:
		return fromUint(uint64(current))
	case uint8:
		return int64(current), true
	case uint16:
		return int64(current), true
	case uint32:
		return int64(current), true
	case uint64:
		return fromUint(current)
	case json.Number:
		if IsFloatLiteral(current.String()) {
			return 0, false
		}
		parsed, err := current.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func fromUint(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Integral reports whether f can be represented exactly as an int64.
func Integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// IsFloatLiteral reports whether a numeric literal is written as a float
// (fraction or exponent), as opposed to an integer literal.
func IsFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE") ||
		strings.EqualFold(s, "nan") || strings.Contains(strings.ToLower(s), "inf")
}
