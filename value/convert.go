package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/bblfsh/uastclient/internal/number"
)

// ErrUnsupported is returned when a Go value has no tree representation.
var ErrUnsupported = errors.New("unsupported value")

// FromAny converts a plain Go value into a tree value. Maps with string keys
// are converted with their keys sorted, since Go maps carry no order.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		if i, ok := number.ToInt64(x); ok {
			return Int(i), nil
		}
		f, ok := number.ToFloat64(x)
		if !ok {
			return nil, fmt.Errorf("%w: number %q", ErrUnsupported, x.String())
		}
		return Float(f), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case []any:
		out := make(Sequence, len(x))
		for i, item := range x {
			cv, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = cv
		}
		return out, nil
	case []Value:
		return Sequence(x), nil
	case []string:
		out := make(Sequence, len(x))
		for i, s := range x {
			out[i] = String(s)
		}
		return out, nil
	case map[string]any:
		out := NewMap(len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			cv, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out.Set(k, cv)
		}
		return out, nil
	}

	if i, ok := number.ToInt64(v); ok {
		return Int(i), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

// MustFromAny is FromAny for literals known to be convertible.
func MustFromAny(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToAny converts a tree value into plain Go values: map[string]any, []any,
// int64, float64, string, bool and nil.
func ToAny(v Value) any {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case Sequence:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = ToAny(item)
		}
		return out
	case *Map:
		if x == nil {
			return nil
		}
		out := make(map[string]any, x.Len())
		for k, item := range x.All() {
			out[k] = ToAny(item)
		}
		return out
	}
	return nil
}
