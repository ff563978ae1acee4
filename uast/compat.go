package uast

import (
	"fmt"
	"slices"

	"github.com/bblfsh/uastclient/role"
	"github.com/bblfsh/uastclient/value"
)

// The accessors below read and write the reserved keys of a structural node
// map, for callers written against the older flat node shape. The first call
// to any of them logs a deprecation warning.

func (n *Node) compatMap(accessor string) (*value.Map, error) {
	warnCompat(accessor)
	return n.GetMap()
}

// Type returns @type, or "" when the node is not a map.
func (n *Node) Type() string {
	m, err := n.compatMap("Type")
	if err != nil {
		return ""
	}
	return m.StringField(value.KeyType)
}

func (n *Node) SetType(t string) error {
	m, err := n.compatMap("SetType")
	if err != nil {
		return err
	}
	m.Set(value.KeyType, value.String(t))
	return nil
}

// Token returns @token, or "" when absent.
func (n *Node) Token() string {
	m, err := n.compatMap("Token")
	if err != nil {
		return ""
	}
	return m.StringField(value.KeyToken)
}

func (n *Node) SetToken(t string) error {
	m, err := n.compatMap("SetToken")
	if err != nil {
		return err
	}
	m.Set(value.KeyToken, value.String(t))
	return nil
}

// Properties returns the node map itself; changes write through.
func (n *Node) Properties() (*value.Map, error) {
	return n.compatMap("Properties")
}

// Roles decodes @role. Entries may be role names in either form or role ids.
func (n *Node) Roles() ([]role.Role, error) {
	m, err := n.compatMap("Roles")
	if err != nil {
		return nil, err
	}
	v, ok := m.Get(value.KeyRoles)
	if !ok || value.IsNull(v) {
		return nil, nil
	}
	seq, ok := v.(value.Sequence)
	if !ok {
		return nil, fmt.Errorf("%s: %w", value.KeyRoles, mismatch(value.KindSequence, value.KindOf(v)))
	}

	out := make([]role.Role, 0, len(seq))
	for _, item := range seq {
		switch x := item.(type) {
		case value.String:
			r, err := role.Lookup(string(x))
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		case value.Int:
			r := role.Role(x)
			if !r.Valid() {
				return nil, fmt.Errorf("%w: %d", role.ErrUnknownRole, int64(x))
			}
			out = append(out, r)
		default:
			return nil, fmt.Errorf("%s: %w", value.KeyRoles, mismatch(value.KindString, value.KindOf(item)))
		}
	}
	return out, nil
}

// SetRoles replaces @role with the camel names of roles.
func (n *Node) SetRoles(roles ...role.Role) error {
	m, err := n.compatMap("SetRoles")
	if err != nil {
		return err
	}
	seq, err := roleNames(roles)
	if err != nil {
		return err
	}
	m.Set(value.KeyRoles, seq)
	return nil
}

// AddRole appends r unless the node already has it.
func (n *Node) AddRole(r role.Role) error {
	current, err := n.Roles()
	if err != nil {
		return err
	}
	if slices.Contains(current, r) {
		return nil
	}
	return n.SetRoles(append(current, r)...)
}

func roleNames(roles []role.Role) (value.Sequence, error) {
	seq := make(value.Sequence, 0, len(roles))
	for _, r := range roles {
		name, err := role.Camel(r)
		if err != nil {
			return nil, err
		}
		seq = append(seq, value.String(name))
	}
	return seq, nil
}

// Position is a live view of a uast:Position map; setters write into the
// node.
type Position struct {
	m *value.Map
}

func (p *Position) field(key string) int64 {
	if v, ok := p.m.Get(key); ok {
		if i, ok := v.(value.Int); ok {
			return int64(i)
		}
	}
	return 0
}

func (p *Position) Offset() int64 { return p.field("offset") }
func (p *Position) Line() int64   { return p.field("line") }
func (p *Position) Col() int64    { return p.field("col") }

func (p *Position) SetOffset(v int64) { p.m.Set("offset", value.Int(v)) }
func (p *Position) SetLine(v int64)   { p.m.Set("line", value.Int(v)) }
func (p *Position) SetCol(v int64)    { p.m.Set("col", value.Int(v)) }

// Value returns a copy of the position.
func (p *Position) Value() value.Position {
	return value.Position{Offset: p.Offset(), Line: p.Line(), Col: p.Col()}
}

// StartPosition returns the start position, inserting a zero @pos first if
// the node has none.
func (n *Node) StartPosition() (*Position, error) {
	return n.position("StartPosition", "start")
}

// EndPosition is StartPosition for the end of the node.
func (n *Node) EndPosition() (*Position, error) {
	return n.position("EndPosition", "end")
}

func (n *Node) position(accessor, which string) (*Position, error) {
	m, err := n.compatMap(accessor)
	if err != nil {
		return nil, err
	}
	pos, ok := m.MapField(value.KeyPos)
	if !ok {
		pos = value.NewPositions(value.Position{}, value.Position{})
		m.Set(value.KeyPos, pos)
	}
	p, ok := pos.MapField(which)
	if !ok {
		p = value.NewPosition(value.Position{})
		pos.Set(which, p)
	}
	return &Position{m: p}, nil
}
