package value

// Reserved keys of structural node maps.
const (
	KeyType     = "@type"
	KeyToken    = "@token"
	KeyRoles    = "@role"
	KeyPos      = "@pos"
	KeyChildren = "_children"
)

// Type names of the position maps stored under KeyPos.
const (
	TypePositions = "uast:Positions"
	TypePosition  = "uast:Position"
)

// IsReserved reports whether key is one of the reserved node keys.
func IsReserved(key string) bool {
	switch key {
	case KeyType, KeyToken, KeyRoles, KeyPos, KeyChildren:
		return true
	}
	return false
}

// TypeOf returns the @type of a node map, or "" when v is not a typed map.
func TypeOf(v Value) string {
	m, ok := AsMap(v)
	if !ok {
		return ""
	}
	return m.StringField(KeyType)
}

// Position is a point in the source file.
type Position struct {
	Offset int64
	Line   int64
	Col    int64
}

// Less orders positions by offset, then line, then column.
func (p Position) Less(o Position) bool {
	if p.Offset != o.Offset {
		return p.Offset < o.Offset
	}
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// StartPosition returns the start of a node. It only succeeds when all of
// offset, line and col are present as integers.
func StartPosition(m *Map) (Position, bool) {
	return positionOf(m, "start")
}

// EndPosition returns the end of a node; see StartPosition.
func EndPosition(m *Map) (Position, bool) {
	return positionOf(m, "end")
}

func positionOf(m *Map, which string) (Position, bool) {
	pos, ok := m.MapField(KeyPos)
	if !ok {
		return Position{}, false
	}
	p, ok := pos.MapField(which)
	if !ok {
		return Position{}, false
	}
	off, ok1 := p.Get("offset")
	line, ok2 := p.Get("line")
	col, ok3 := p.Get("col")
	if !ok1 || !ok2 || !ok3 {
		return Position{}, false
	}
	oi, ok1 := off.(Int)
	li, ok2 := line.(Int)
	ci, ok3 := col.(Int)
	if !ok1 || !ok2 || !ok3 {
		return Position{}, false
	}
	return Position{Offset: int64(oi), Line: int64(li), Col: int64(ci)}, true
}

// NewPosition builds a uast:Position map.
func NewPosition(p Position) *Map {
	return MapOf(
		KeyType, String(TypePosition),
		"offset", Int(p.Offset),
		"line", Int(p.Line),
		"col", Int(p.Col),
	)
}

// NewPositions builds a uast:Positions map with the given start and end.
func NewPositions(start, end Position) *Map {
	return MapOf(
		KeyType, String(TypePositions),
		"start", NewPosition(start),
		"end", NewPosition(end),
	)
}

// ChildSlot locates a child map inside its parent.
type ChildSlot struct {
	Child *Map
	Key   string // property holding the child
	Index int    // position inside a sequence property, -1 for a direct map
}

// ChildSlots returns the child nodes of m: first the maps listed under
// KeyChildren, then every map held by a non-reserved key, either directly or
// inside a sequence. Duplicates (by identity) are dropped, keeping the first
// occurrence. This is O(n) over the properties of m on every call.
func ChildSlots(m *Map) []ChildSlot {
	if m == nil {
		return nil
	}
	var (
		out  []ChildSlot
		seen map[*Map]struct{}
	)
	add := func(v Value, key string, index int) {
		c, ok := AsMap(v)
		if !ok {
			return
		}
		if seen == nil {
			seen = make(map[*Map]struct{})
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		out = append(out, ChildSlot{Child: c, Key: key, Index: index})
	}
	addAll := func(key string, v Value) {
		switch x := v.(type) {
		case *Map:
			add(x, key, -1)
		case Sequence:
			for i, item := range x {
				add(item, key, i)
			}
		}
	}

	if explicit, ok := m.Get(KeyChildren); ok {
		addAll(KeyChildren, explicit)
	}
	for k, v := range m.All() {
		if IsReserved(k) {
			continue
		}
		addAll(k, v)
	}
	return out
}

// ChildMaps returns the maps of ChildSlots(m).
func ChildMaps(m *Map) []*Map {
	slots := ChildSlots(m)
	if len(slots) == 0 {
		return nil
	}
	out := make([]*Map, len(slots))
	for i, s := range slots {
		out[i] = s.Child
	}
	return out
}

// ContainsMap reports whether target is reachable from m through ChildMaps
// sources without descending further (identity comparison).
func ContainsMap(m *Map, target *Map) bool {
	for _, c := range ChildMaps(m) {
		if c == target {
			return true
		}
	}
	return false
}
