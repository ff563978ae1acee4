package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Order is a traversal strategy.
type Order int

const (
	// AnyOrder lets the engine pick a traversal. Only the set of visited
	// nodes is guaranteed.
	AnyOrder Order = iota
	PreOrder
	PostOrder
	LevelOrder
	ChildrenOrder
	PositionOrder
)

var orderNames = [...]string{
	AnyOrder:      "ANY_ORDER",
	PreOrder:      "PRE_ORDER",
	PostOrder:     "POST_ORDER",
	LevelOrder:    "LEVEL_ORDER",
	ChildrenOrder: "CHILDREN_ORDER",
	PositionOrder: "POSITION_ORDER",
}

func (o Order) Valid() bool {
	return o >= AnyOrder && o <= PositionOrder
}

func (o Order) String() string {
	if !o.Valid() {
		return "Order(" + strconv.Itoa(int(o)) + ")"
	}
	return orderNames[o]
}

// ParseOrder accepts the names returned by Order.String, case-insensitively,
// with or without the _ORDER suffix.
func ParseOrder(name string) (Order, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	if !strings.HasSuffix(n, "_ORDER") {
		n += "_ORDER"
	}
	for o, s := range orderNames {
		if s == n {
			return Order(o), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrder, name)
}
