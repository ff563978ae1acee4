package value

import "math"

// Equal reports whether a and b are deeply equal. Maps are equal when they
// hold the same keys in the same order with equal values. Int and Float never
// compare equal to each other.
func Equal(a, b Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindFloat:
		fa, fb := float64(a.(Float)), float64(b.(Float))
		return fa == fb || math.IsNaN(fa) && math.IsNaN(fb)
	case KindSequence:
		sa, sb := a.(Sequence), b.(Sequence)
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !Equal(sa[i], sb[i]) {
				return false
			}
		}
		return true
	case KindMap:
		ma, mb := a.(*Map), b.(*Map)
		if ma == mb {
			return true
		}
		if ma.Len() != mb.Len() {
			return false
		}
		for i, k := range ma.keys {
			if mb.keys[i] != k || !Equal(ma.vals[i], mb.vals[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Sequence:
		if x == nil {
			return Sequence(nil)
		}
		out := make(Sequence, len(x))
		for i, item := range x {
			out[i] = Clone(item)
		}
		return out
	case *Map:
		if x == nil {
			return Null{}
		}
		out := NewMap(x.Len())
		for k, item := range x.All() {
			out.Set(k, Clone(item))
		}
		return out
	default:
		return v
	}
}
