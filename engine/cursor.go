package engine

import (
	"fmt"
	"slices"

	"github.com/bblfsh/uastclient/internal/stack"
	"github.com/bblfsh/uastclient/value"
)

// Item is one element produced by a Cursor. Ref is set for tree nodes;
// otherwise Value holds a computed or non-node result.
type Item struct {
	Ref   *Ref
	Value value.Value
}

// Load returns the item value, realizing Ref when set.
func (it Item) Load() value.Value {
	if it.Ref != nil {
		return it.Ref.Load()
	}
	return it.Value
}

// Cursor is a one-shot, forward-only sequence of items.
type Cursor struct {
	next func() (Item, bool, error)
	err  error
	done bool
}

func newCursor(next func() (Item, bool, error)) *Cursor {
	return &Cursor{next: next}
}

func emptyCursor() *Cursor {
	return &Cursor{done: true}
}

func sliceCursor(items []Item) *Cursor {
	i := 0
	return newCursor(func() (Item, bool, error) {
		if i >= len(items) {
			return Item{}, false, nil
		}
		it := items[i]
		i++
		return it, true, nil
	})
}

// Next advances the cursor. It returns false once the sequence is exhausted
// or evaluation failed; Err distinguishes the two.
func (c *Cursor) Next() (Item, bool) {
	if c.done {
		return Item{}, false
	}
	it, ok, err := c.next()
	if err != nil {
		c.err = err
	}
	if !ok || err != nil {
		c.done = true
		c.next = nil
		return Item{}, false
	}
	return it, true
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Iterate walks the nodes below root in the given order. Only maps are
// nodes; a sequence root acts as a parent of the maps it holds and any other
// root yields nothing.
func Iterate(root *Ref, order Order) (*Cursor, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if root == nil {
		return emptyCursor(), nil
	}

	t := root.tree
	roots := rootMaps(root.Load())
	if len(roots) == 0 {
		return emptyCursor(), nil
	}

	var next func() (*value.Map, bool)
	switch order {
	case AnyOrder, PreOrder:
		next = preOrder(roots)
	case PostOrder:
		next = postOrder(roots)
	case LevelOrder:
		next = levelOrder(roots)
	case ChildrenOrder:
		next = childrenOrder(root.Load(), roots)
	case PositionOrder:
		next = positionOrder(roots)
	}

	return newCursor(func() (Item, bool, error) {
		m, ok := next()
		if !ok {
			return Item{}, false, nil
		}
		return Item{Ref: t.Ref(m)}, true, nil
	}), nil
}

func rootMaps(v value.Value) []*value.Map {
	switch x := v.(type) {
	case *value.Map:
		if x == nil {
			return nil
		}
		return []*value.Map{x}
	case value.Sequence:
		var out []*value.Map
		for _, item := range x {
			out = append(out, rootMaps(item)...)
		}
		return out
	}
	return nil
}

func preOrder(roots []*value.Map) func() (*value.Map, bool) {
	s := stack.NewWithCapacity[*value.Map](len(roots))
	s.PushReversed(roots...)

	return func() (*value.Map, bool) {
		m, ok := s.Pop()
		if !ok {
			return nil, false
		}
		s.PushReversed(value.ChildMaps(m)...)
		return m, true
	}
}

type postFrame struct {
	node     *value.Map
	children []*value.Map
	next     int
}

func postOrder(roots []*value.Map) func() (*value.Map, bool) {
	s := stack.New[postFrame]()
	// virtual parent of the roots, never yielded
	s.Push(postFrame{children: roots})

	return func() (*value.Map, bool) {
		for {
			top := s.PeekRef()
			if top == nil {
				return nil, false
			}
			if top.next < len(top.children) {
				child := top.children[top.next]
				top.next++
				s.Push(postFrame{node: child, children: value.ChildMaps(child)})
				continue
			}
			frame, _ := s.Pop()
			if frame.node == nil {
				continue
			}
			return frame.node, true
		}
	}
}

func levelOrder(roots []*value.Map) func() (*value.Map, bool) {
	q := stack.NewQueue[*value.Map]()
	q.Push(roots...)

	return func() (*value.Map, bool) {
		m, ok := q.Pop()
		if !ok {
			return nil, false
		}
		q.Push(value.ChildMaps(m)...)
		return m, true
	}
}

func childrenOrder(root value.Value, roots []*value.Map) func() (*value.Map, bool) {
	var children []*value.Map
	if m, ok := value.AsMap(root); ok {
		children = value.ChildMaps(m)
	} else {
		children = roots
	}

	i := 0
	return func() (*value.Map, bool) {
		if i >= len(children) {
			return nil, false
		}
		m := children[i]
		i++
		return m, true
	}
}

// positionOrder collects every node with a complete start position and sorts
// them by (offset, line, col). Ties keep pre-order.
func positionOrder(roots []*value.Map) func() (*value.Map, bool) {
	var (
		sorted []*value.Map
		i      int
		loaded bool
	)

	load := func() {
		type positioned struct {
			node *value.Map
			pos  value.Position
		}
		var all []positioned
		next := preOrder(roots)
		for m, ok := next(); ok; m, ok = next() {
			if p, ok := value.StartPosition(m); ok {
				all = append(all, positioned{node: m, pos: p})
			}
		}
		slices.SortStableFunc(all, func(a, b positioned) int {
			switch {
			case a.pos.Less(b.pos):
				return -1
			case b.pos.Less(a.pos):
				return 1
			}
			return 0
		})
		sorted = make([]*value.Map, len(all))
		for j, p := range all {
			sorted[j] = p.node
		}
		loaded = true
	}

	return func() (*value.Map, bool) {
		if !loaded {
			load()
		}
		if i >= len(sorted) {
			return nil, false
		}
		m := sorted[i]
		i++
		return m, true
	}
}
