package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMap
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "str",
	KindSequence: "seq",
	KindMap:      "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tree value. The set of implementations is closed: Null, Bool,
// Int, Float, String, Sequence and *Map.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Null     struct{}
	Bool     bool
	Int      int64
	Float    float64
	String   string
	Sequence []Value
)

func (Null) Kind() Kind     { return KindNull }
func (Bool) Kind() Kind     { return KindBool }
func (Int) Kind() Kind      { return KindInt }
func (Float) Kind() Kind    { return KindFloat }
func (String) Kind() Kind   { return KindString }
func (Sequence) Kind() Kind { return KindSequence }
func (*Map) Kind() Kind     { return KindMap }

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Sequence) isValue() {}
func (*Map) isValue()     {}

// KindOf returns the kind of v, treating a nil interface or nil map as Null.
func KindOf(v Value) Kind {
	if IsNull(v) {
		return KindNull
	}
	return v.Kind()
}

// IsNull reports whether v is Null, a nil interface or a nil *Map.
func IsNull(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case Null:
		return true
	case *Map:
		return x == nil
	}
	return false
}

// IsScalar reports whether v is a Bool, Int, Float or String.
func IsScalar(v Value) bool {
	switch KindOf(v) {
	case KindBool, KindInt, KindFloat, KindString:
		return true
	}
	return false
}

// ScalarString renders a scalar the way it is exposed to query attributes.
// Containers and nulls render as the empty string.
func ScalarString(v Value) string {
	switch x := v.(type) {
	case Bool:
		return strconv.FormatBool(bool(x))
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case String:
		return string(x)
	}
	return ""
}

// AsMap returns v as a map if it is one.
func AsMap(v Value) (*Map, bool) {
	m, ok := v.(*Map)
	return m, ok && m != nil
}

// GoString is used by %#v and in test failure output.
func (m *Map) GoString() string {
	return fmt.Sprintf("value.Map%v", m.Keys())
}
