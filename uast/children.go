package uast

import (
	"fmt"
	"iter"
	"slices"

	"github.com/bblfsh/uastclient/value"
)

// Children is a computed view of the child nodes of a map: the explicit
// _children list followed by the maps held in other non-reserved
// properties. It is recomputed on every call, in O(n) of the properties.
type Children struct {
	m *value.Map
}

// Children returns the children view of a map node.
func (n *Node) Children() (*Children, error) {
	m, err := n.compatMap("Children")
	if err != nil {
		return nil, err
	}
	return &Children{m: m}, nil
}

func (c *Children) Len() int {
	return len(value.ChildSlots(c.m))
}

// At returns child i. It panics if i is out of range.
func (c *Children) At(i int) *Node {
	return FromValue(value.ChildSlots(c.m)[i].Child)
}

func (c *Children) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i, s := range value.ChildSlots(c.m) {
			if !yield(i, FromValue(s.Child)) {
				return
			}
		}
	}
}

func (c *Children) explicit() value.Sequence {
	if v, ok := c.m.Get(value.KeyChildren); ok {
		if seq, ok := v.(value.Sequence); ok {
			return seq
		}
	}
	return nil
}

func childMap(n *Node) (*value.Map, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil child", ErrTypeMismatch)
	}
	return n.GetMap()
}

// Append adds nodes to the explicit child list. Nodes already reachable as
// children are not added again.
func (c *Children) Append(nodes ...*Node) error {
	for _, n := range nodes {
		if err := c.Insert(len(c.explicit()), n); err != nil {
			return err
		}
	}
	return nil
}

// Extend is Append for a slice.
func (c *Children) Extend(nodes []*Node) error {
	return c.Append(nodes...)
}

// Insert puts node at position i of the explicit child list, clamping i to
// its bounds. Nodes already reachable as children are left where they are.
func (c *Children) Insert(i int, node *Node) error {
	cm, err := childMap(node)
	if err != nil {
		return err
	}
	if value.ContainsMap(c.m, cm) {
		return nil
	}
	seq := c.explicit()
	i = max(0, min(i, len(seq)))
	c.m.Set(value.KeyChildren, slices.Insert(slices.Clone(seq), i, value.Value(cm)))
	return nil
}

// Set replaces child i in the property that holds it.
func (c *Children) Set(i int, node *Node) error {
	cm, err := childMap(node)
	if err != nil {
		return err
	}
	slot, err := c.slot(i)
	if err != nil {
		return err
	}
	if slot.Index < 0 {
		c.m.Set(slot.Key, cm)
		return nil
	}
	seq := slices.Clone(c.sequence(slot.Key))
	seq[slot.Index] = cm
	c.m.Set(slot.Key, seq)
	return nil
}

// Delete removes child i from the property that holds it. A child held
// directly by a property removes that property.
func (c *Children) Delete(i int) error {
	slot, err := c.slot(i)
	if err != nil {
		return err
	}
	if slot.Index < 0 {
		c.m.Delete(slot.Key)
		return nil
	}
	c.m.Set(slot.Key, slices.Delete(slices.Clone(c.sequence(slot.Key)), slot.Index, slot.Index+1))
	return nil
}

func (c *Children) slot(i int) (value.ChildSlot, error) {
	slots := value.ChildSlots(c.m)
	if i < 0 || i >= len(slots) {
		return value.ChildSlot{}, fmt.Errorf("%w: child %d of %d", ErrIndex, i, len(slots))
	}
	return slots[i], nil
}

func (c *Children) sequence(key string) value.Sequence {
	v, _ := c.m.Get(key)
	seq, _ := v.(value.Sequence)
	return seq
}
