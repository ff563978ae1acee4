package value

import (
	"iter"
	"slices"
)

// Map is an insertion-ordered mapping from string keys to values.
// The zero value is an empty map ready to use.
type Map struct {
	keys  []string
	index map[string]int
	vals  []Value
}

// NewMap creates an empty map with room for n entries.
func NewMap(n int) *Map {
	return &Map{
		keys:  make([]string, 0, n),
		index: make(map[string]int, n),
		vals:  make([]Value, 0, n),
	}
}

// MapOf builds a map from alternating key/value pairs. It panics when the
// pairs are unbalanced or a key is not a string; it is meant for literals.
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("value.MapOf: odd number of arguments")
	}
	m := NewMap(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("value.MapOf: key is not a string")
		}
		v, ok := kv[i+1].(Value)
		if !ok {
			v = MustFromAny(kv[i+1])
		}
		m.Set(k, v)
	}
	return m
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (m *Map) Set(key string, v Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if v == nil {
		v = Null{}
	}
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

func (m *Map) Delete(key string) {
	if m == nil || m.index == nil {
		return
	}
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.keys = slices.Delete(m.keys, i, i+1)
	m.vals = slices.Delete(m.vals, i, i+1)
	delete(m.index, key)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// StringField returns the string stored under key, or "" when absent or not a string.
func (m *Map) StringField(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(String)
	return string(s)
}

// MapField returns the map stored under key.
func (m *Map) MapField(key string) (*Map, bool) {
	v, _ := m.Get(key)
	return AsMap(v)
}
