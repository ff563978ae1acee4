package uast

import (
	"fmt"

	"github.com/bblfsh/uastclient/value"
)

// Filter evaluates query rooted at n. Queries starting with '$' are
// JSONPath, anything else XPath over the element projection of the tree:
//
//   - typed maps are elements named by their @type, e.g. //python:FunctionDef
//   - @token is the token attribute and the element text
//   - roles are role='Name' and roleName attributes, e.g. //*[@roleIdentifier]
//   - @pos gives startOffset, startLine, startCol, endOffset, endLine and
//     endCol attributes plus a uast:Positions/start|end/uast:Position child
//   - other scalar properties are attributes; maps and sequences are
//     elements named by their key
//
// A query without matches yields an empty iterator; a malformed one fails
// with ErrQuery.
func Filter(n *Node, query string) (*Iterator, error) {
	return n.Filter(query)
}

// FilterValue is Filter over a plain value.
func FilterValue(v value.Value, query string) (*Iterator, error) {
	return FromValue(v).Filter(query)
}

// FilterNodes is Filter restricted to structural nodes: scalar results,
// untyped maps and position maps are skipped.
func FilterNodes(n *Node, query string) (*Iterator, error) {
	it, err := n.Filter(query)
	if err != nil {
		return nil, err
	}
	it.skip = func(item Item) bool {
		if item.Node == nil {
			return true
		}
		typ := value.TypeOf(item.Node.Get())
		return typ == "" || typ == value.TypePositions || typ == value.TypePosition
	}
	return it, nil
}

// FilterBool runs a query that must produce exactly one boolean.
func FilterBool(n *Node, query string) (bool, error) {
	v, err := filterSingle(n, query, value.KindBool)
	if err != nil {
		return false, err
	}
	return bool(v.(value.Bool)), nil
}

// FilterInt runs a query that must produce exactly one integer.
func FilterInt(n *Node, query string) (int64, error) {
	v, err := filterSingle(n, query, value.KindInt)
	if err != nil {
		return 0, err
	}
	return int64(v.(value.Int)), nil
}

// FilterFloat runs a query that must produce exactly one number. Integers
// are promoted.
func FilterFloat(n *Node, query string) (float64, error) {
	v, err := filterSingle(n, query, value.KindFloat)
	if err != nil {
		return 0, err
	}
	return float64(v.(value.Float)), nil
}

// FilterNumber is FilterFloat.
func FilterNumber(n *Node, query string) (float64, error) {
	return FilterFloat(n, query)
}

// FilterString runs a query that must produce exactly one string.
func FilterString(n *Node, query string) (string, error) {
	v, err := filterSingle(n, query, value.KindString)
	if err != nil {
		return "", err
	}
	return string(v.(value.String)), nil
}

func filterSingle(n *Node, query string, k value.Kind) (value.Value, error) {
	it, err := n.Filter(query)
	if err != nil {
		return nil, err
	}

	first, ok := it.Next()
	if !ok {
		if err := it.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q produced no results", ErrCardinality, query)
	}
	if _, more := it.Next(); more {
		return nil, fmt.Errorf("%w: %q produced more than one result", ErrCardinality, query)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	v, err := valueAs(first.Get(), k)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", query, err)
	}
	return v, nil
}
