package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/theory/jsonpath"

	"github.com/bblfsh/uastclient/internal/number"
	"github.com/bblfsh/uastclient/value"
)

// Filter evaluates query against the subtree behind root.
//
// Queries starting with '$' are JSONPath (RFC 9535); anything else is
// XPath 1.0 over the element projection of the tree. Structural results are
// yielded as Refs into the same tree; computed results (count, name, boolean
// and friends) as scalar values. A query matching nothing yields an empty
// cursor.
func Filter(root *Ref, query string) (*Cursor, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: no root to query", ErrQuery)
	}
	if strings.HasPrefix(strings.TrimSpace(query), "$") {
		return filterJSONPath(root, strings.TrimSpace(query))
	}
	return filterXPath(root, query)
}

func compileXPath(query string) (expr *xpath.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrQuery, query, r)
		}
	}()
	expr, err = xpath.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrQuery, query, err)
	}
	// The parser stops after the first complete expression. Parenthesized, the
	// query must be consumed up to the closing paren, which exposes leftovers.
	if !balanced(query) {
		return nil, fmt.Errorf("%w: %q: unbalanced brackets", ErrQuery, query)
	}
	if _, err := xpath.Compile("(" + query + ")"); err != nil {
		return nil, fmt.Errorf("%w: %q: unexpected trailing input", ErrQuery, query)
	}
	return expr, nil
}

// balanced reports whether parens and brackets outside string literals nest
// properly.
func balanced(query string) bool {
	var (
		parens, brackets int
		quote            rune
	)
	for _, r := range query {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		}
		if parens < 0 || brackets < 0 {
			return false
		}
	}
	return quote == 0 && parens == 0 && brackets == 0
}

func evaluate(query string, expr *xpath.Expr, nav *navigator) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrQuery, query, r)
		}
	}()
	return expr.Evaluate(nav), nil
}

func filterXPath(root *Ref, query string) (*Cursor, error) {
	expr, err := compileXPath(query)
	if err != nil {
		return nil, err
	}
	doc, ok := project(root.Load())
	if !ok {
		return nil, fmt.Errorf("%w: cannot query a %s value", ErrQuery, value.KindOf(root.Load()))
	}

	res, err := evaluate(query, expr, newNavigator(doc))
	if err != nil {
		return nil, err
	}

	switch r := res.(type) {
	case bool:
		return sliceCursor([]Item{{Value: value.Bool(r)}}), nil
	case float64:
		return sliceCursor([]Item{{Value: numberValue(r)}}), nil
	case string:
		return sliceCursor([]Item{{Value: value.String(r)}}), nil
	case *xpath.NodeIterator:
		return nodeCursor(root.tree, query, r), nil
	}
	return nil, fmt.Errorf("%w: unexpected result %T", ErrQuery, res)
}

func numberValue(f float64) value.Value {
	if i, ok := number.Integral(f); ok {
		return value.Int(i)
	}
	return value.Float(f)
}

func nodeCursor(t *Tree, query string, it *xpath.NodeIterator) *Cursor {
	return newCursor(func() (item Item, ok bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				item, ok, err = Item{}, false, fmt.Errorf("%w: %q: %v", ErrQuery, query, r)
			}
		}()
		if !it.MoveNext() {
			return Item{}, false, nil
		}
		nav, isOwn := it.Current().(*navigator)
		if !isOwn {
			return Item{}, false, fmt.Errorf("%w: foreign navigator %T", ErrQuery, it.Current())
		}
		return itemFor(t, nav.source()), true, nil
	})
}

func itemFor(t *Tree, v value.Value) Item {
	if m, ok := value.AsMap(v); ok {
		return Item{Ref: t.Ref(m)}
	}
	return Item{Value: v}
}

// filterJSONPath runs the query over a plain Go copy of the tree and maps
// selected objects back to the maps they were copied from.
func filterJSONPath(root *Ref, query string) (*Cursor, error) {
	path, err := jsonpath.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrQuery, query, err)
	}

	origin := make(map[uintptr]*value.Map)
	data := toJSONPath(root.Load(), origin)

	selected := path.Select(data)
	items := make([]Item, 0, len(selected))
	for _, s := range selected {
		v, err := fromJSONPath(s, origin)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		items = append(items, itemFor(root.tree, v))
	}
	return sliceCursor(items), nil
}

func toJSONPath(v value.Value, origin map[uintptr]*value.Map) any {
	switch x := v.(type) {
	case *value.Map:
		if x == nil {
			return nil
		}
		out := make(map[string]any, x.Len())
		for k, item := range x.All() {
			out[k] = toJSONPath(item, origin)
		}
		origin[reflect.ValueOf(out).Pointer()] = x
		return out
	case value.Sequence:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toJSONPath(item, origin)
		}
		return out
	}
	return value.ToAny(v)
}

func fromJSONPath(v any, origin map[uintptr]*value.Map) (value.Value, error) {
	switch x := v.(type) {
	case map[string]any:
		if m, ok := origin[reflect.ValueOf(x).Pointer()]; ok {
			return m, nil
		}
		return value.FromAny(x)
	case []any:
		out := make(value.Sequence, len(x))
		for i, item := range x {
			cv, err := fromJSONPath(item, origin)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	}
	return value.FromAny(v)
}
