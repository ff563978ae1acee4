package uast

import (
	"fmt"

	"github.com/bblfsh/uastclient/engine"
)

// Order is a traversal strategy; see the engine package for the semantics of
// each value.
type Order = engine.Order

const (
	AnyOrder      = engine.AnyOrder
	PreOrder      = engine.PreOrder
	PostOrder     = engine.PostOrder
	LevelOrder    = engine.LevelOrder
	ChildrenOrder = engine.ChildrenOrder
	PositionOrder = engine.PositionOrder
)

func checkOrder(o Order) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, int(o))
	}
	return nil
}

// ParseOrder accepts names such as "PRE_ORDER", "pre-order" or "position".
func ParseOrder(name string) (Order, error) {
	return engine.ParseOrder(name)
}
