// Package uast is the client-side view of a parsed Universal Abstract Syntax
// Tree.
//
// A ResultContext owns one decoded tree. Nodes wrap elements of that tree and
// realize their values on first access; Iterators walk a subtree in one of
// the traversal orders and Filter runs XPath or JSONPath queries against it.
// Nodes and Iterators keep their tree alive on their own, so they stay usable
// after the ResultContext that produced them is dropped.
//
// Nodes and Iterators are not safe for concurrent use.
package uast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/engine"
	"github.com/bblfsh/uastclient/value"
)

// Handle is an unrealized tree element. *engine.Ref is the handle produced by
// contexts, iterators and queries.
type Handle interface {
	Load() value.Value
}

// Node is one element of a tree. The zero Node is an empty node, the same as
// NewEmptyNode returns.
type Node struct {
	handle   Handle
	val      value.Value
	realized bool

	// owns val when the node was not produced from an engine handle
	tree *engine.Tree
}

// NewNode builds a node from either a handle or a value. Supplying both, or a
// typed nil handle, fails with ErrInstancing. Supplying neither yields an
// empty node.
func NewNode(h Handle, v value.Value) (*Node, error) {
	if h != nil && v != nil {
		return nil, fmt.Errorf("%w: node has both a handle and a value", ErrInstancing)
	}
	if h != nil {
		if isNilHandle(h) {
			return nil, fmt.Errorf("%w: nil %T handle", ErrInstancing, h)
		}
		return FromHandle(h), nil
	}
	return FromValue(v), nil
}

func isNilHandle(h Handle) bool {
	rv := reflect.ValueOf(h)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// FromHandle returns an unrealized node; h is not loaded until the value is
// first needed.
func FromHandle(h Handle) *Node {
	return &Node{handle: h}
}

// FromValue returns a realized node. A nil v yields an empty node.
func FromValue(v value.Value) *Node {
	if v == nil {
		return NewEmptyNode()
	}
	return &Node{val: v, realized: true}
}

// NewEmptyNode returns a node holding an empty structural map.
func NewEmptyNode() *Node {
	return &Node{val: emptyNodeValue(), realized: true}
}

func emptyNodeValue() *value.Map {
	return value.MapOf(
		value.KeyType, "",
		value.KeyToken, "",
		value.KeyRoles, value.Sequence{},
	)
}

// Get realizes the node and returns its value. The handle is loaded at most
// once; later calls return the same value.
func (n *Node) Get() value.Value {
	if !n.realized {
		switch {
		case n.handle != nil:
			n.val = n.handle.Load()
		case n.val == nil:
			n.val = emptyNodeValue()
		}
		if n.val == nil {
			n.val = value.Null{}
		}
		n.realized = true
	}
	return n.val
}

// Realized reports whether the value has been loaded.
func (n *Node) Realized() bool {
	return n.realized
}

// GetAs returns the value if it is of kind k. Ints are promoted when a float
// is requested.
func (n *Node) GetAs(k value.Kind) (value.Value, error) {
	return valueAs(n.Get(), k)
}

func valueAs(v value.Value, k value.Kind) (value.Value, error) {
	got := value.KindOf(v)
	if got == k {
		return v, nil
	}
	if k == value.KindFloat && got == value.KindInt {
		return value.Float(v.(value.Int)), nil
	}
	return nil, mismatch(k, got)
}

func (n *Node) GetBool() (bool, error) {
	v, err := n.GetAs(value.KindBool)
	if err != nil {
		return false, err
	}
	return bool(v.(value.Bool)), nil
}

func (n *Node) GetInt() (int64, error) {
	v, err := n.GetAs(value.KindInt)
	if err != nil {
		return 0, err
	}
	return int64(v.(value.Int)), nil
}

func (n *Node) GetFloat() (float64, error) {
	v, err := n.GetAs(value.KindFloat)
	if err != nil {
		return 0, err
	}
	return float64(v.(value.Float)), nil
}

func (n *Node) GetString() (string, error) {
	v, err := n.GetAs(value.KindString)
	if err != nil {
		return "", err
	}
	return string(v.(value.String)), nil
}

func (n *Node) GetMap() (*value.Map, error) {
	v, err := n.GetAs(value.KindMap)
	if err != nil {
		return nil, err
	}
	return v.(*value.Map), nil
}

func (n *Node) GetSequence() (value.Sequence, error) {
	v, err := n.GetAs(value.KindSequence)
	if err != nil {
		return nil, err
	}
	return v.(value.Sequence), nil
}

// ref returns the engine handle the node operates through.
func (n *Node) ref() *engine.Ref {
	if r, ok := n.handle.(*engine.Ref); ok {
		return r
	}
	if n.tree == nil {
		n.tree = engine.NewTree(n.Get())
	}
	return n.tree.Root()
}

// Iterate walks the subtree rooted at n.
func (n *Node) Iterate(order Order) (*Iterator, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	c, err := engine.Iterate(n.ref(), order)
	if err != nil {
		return nil, err
	}
	return newIterator(c, order), nil
}

// Filter evaluates query rooted at n.
func (n *Node) Filter(query string) (*Iterator, error) {
	c, err := engine.Filter(n.ref(), query)
	if err != nil {
		return nil, err
	}
	return newIterator(c, PreOrder), nil
}

// String renders the value as YAML.
func (n *Node) String() string {
	out, err := codec.Encode(n.Get(), codec.YAML)
	if err != nil {
		return fmt.Sprintf("%#v", n.Get())
	}
	return strings.TrimSuffix(string(out), "\n")
}
