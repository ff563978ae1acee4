// Package engine is the in-process tree engine behind the uast package.
//
// A Tree owns one decoded root value. Refs are opaque handles to values
// inside a tree; each Ref keeps its tree reachable, so results obtained from
// a tree stay valid for as long as any of them is in use. Traversals and
// queries run lazily through Cursors.
package engine

import (
	"errors"

	"github.com/bblfsh/uastclient/value"
)

var (
	// ErrInvalidOrder indicates an Order outside the defined set.
	ErrInvalidOrder = errors.New("invalid traversal order")

	// ErrQuery indicates a query that cannot be parsed or evaluated.
	ErrQuery = errors.New("query error")
)

// Tree owns a root value.
type Tree struct {
	root value.Value
}

// NewTree wraps root. A nil root is stored as value.Null.
func NewTree(root value.Value) *Tree {
	if root == nil {
		root = value.Null{}
	}
	return &Tree{root: root}
}

// Root returns a handle to the root value.
func (t *Tree) Root() *Ref {
	return &Ref{tree: t, val: t.root}
}

// Ref returns a handle to v, a value reachable from the tree root.
func (t *Tree) Ref(v value.Value) *Ref {
	if v == nil {
		v = value.Null{}
	}
	return &Ref{tree: t, val: v}
}

// Ref is a handle to one value of a Tree.
type Ref struct {
	tree *Tree
	val  value.Value
}

// Load realizes the referenced value. Maps and sequences are shared with the
// tree, not copied.
func (r *Ref) Load() value.Value {
	return r.val
}

// Tree returns the owning tree.
func (r *Ref) Tree() *Tree {
	return r.tree
}
