package uast

import (
	"fmt"
	"iter"

	"github.com/bblfsh/uastclient/engine"
	"github.com/bblfsh/uastclient/value"
)

// Item is one result of an Iterator: a Node for tree elements, or a Value for
// computed results such as counts and names.
type Item struct {
	Node  *Node
	Value value.Value
}

// IsNode reports whether the item is a tree element.
func (it Item) IsNode() bool {
	return it.Node != nil
}

// Get returns the item value, realizing the node if needed.
func (it Item) Get() value.Value {
	if it.Node != nil {
		return it.Node.Get()
	}
	return it.Value
}

// Iterator is a one-shot sequence of items. Once Next reports false it stays
// exhausted; Err tells whether it stopped because of a query error.
type Iterator struct {
	cursor *engine.Cursor
	order  Order
	skip   func(Item) bool

	last    Item
	started bool
}

func newIterator(c *engine.Cursor, order Order) *Iterator {
	return &Iterator{cursor: c, order: order}
}

func (it *Iterator) pull() (Item, bool) {
	for {
		ci, ok := it.cursor.Next()
		if !ok {
			return Item{}, false
		}
		var item Item
		if ci.Ref != nil {
			item.Node = FromHandle(ci.Ref)
		} else {
			item.Value = ci.Value
		}
		if it.skip != nil && it.skip(item) {
			continue
		}
		return item, true
	}
}

// Next returns the next item.
func (it *Iterator) Next() (Item, bool) {
	item, ok := it.pull()
	if !ok {
		return Item{}, false
	}
	it.last, it.started = item, true
	return item, true
}

// Err returns the query error that ended the iteration, if any.
func (it *Iterator) Err() error {
	return it.cursor.Err()
}

// Order is the traversal order of the iterator. Query results come in
// document order, reported as PreOrder. A successful Iterate records its
// order here while this iterator's own walk keeps its original order.
func (it *Iterator) Order() Order {
	return it.order
}

// All yields the remaining items.
func (it *Iterator) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Nodes yields the remaining node items, dropping scalar results.
func (it *Iterator) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for item := range it.All() {
			if item.Node == nil {
				continue
			}
			if !yield(item.Node) {
				return
			}
		}
	}
}

// Iterate starts a new traversal rooted at the last node this iterator
// produced. If nothing was produced yet, one item is consumed first.
func (it *Iterator) Iterate(order Order) (*Iterator, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if !it.started {
		if _, ok := it.Next(); !ok {
			if err := it.Err(); err != nil {
				return nil, err
			}
			return nil, ErrExhausted
		}
	}
	if it.last.Node == nil {
		return nil, fmt.Errorf("%w: %s result", ErrNotNode, value.KindOf(it.last.Value))
	}
	sub, err := it.last.Node.Iterate(order)
	if err != nil {
		return nil, err
	}
	it.order = order
	return sub, nil
}
