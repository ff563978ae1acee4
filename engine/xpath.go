package engine

import (
	"strings"

	"github.com/antchfx/xpath"

	"github.com/bblfsh/uastclient/role"
	"github.com/bblfsh/uastclient/value"
)

const untypedElement = "object"

// xnode is the XML-like projection of a tree value queried by XPath.
type xnode struct {
	kind     xpath.NodeType
	prefix   string
	local    string
	src      value.Value
	attrs    []xattr
	parent   *xnode
	children []*xnode
	index    int

	text    string
	hasText bool // text is final for text nodes and memoized for the rest
}

type xattr struct {
	prefix string
	local  string
	text   string
	val    value.Value
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 && i < len(name)-1 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func newElement(name string, src value.Value) *xnode {
	prefix, local := splitName(name)
	return &xnode{kind: xpath.ElementNode, prefix: prefix, local: local, src: src}
}

func (n *xnode) appendChild(c *xnode) {
	c.parent = n
	c.index = len(n.children)
	n.children = append(n.children, c)
}

func (n *xnode) appendText(s string, src value.Value) {
	n.appendChild(&xnode{kind: xpath.TextNode, text: s, hasText: true, src: src})
}

func (n *xnode) addAttr(name string, v value.Value) {
	prefix, local := splitName(strings.TrimPrefix(name, "@"))
	n.attrs = append(n.attrs, xattr{prefix: prefix, local: local, text: value.ScalarString(v), val: v})
}

// stringValue is the concatenation of all descendant text, as XPath defines
// it for elements and the document.
func (n *xnode) stringValue() string {
	if n.hasText {
		return n.text
	}
	var b strings.Builder
	var walk func(*xnode)
	walk = func(x *xnode) {
		for _, c := range x.children {
			if c.kind == xpath.TextNode {
				b.WriteString(c.text)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	n.text, n.hasText = b.String(), true
	return n.text
}

// project builds the document node for root. Only maps and sequences can be
// queried.
func project(root value.Value) (*xnode, bool) {
	doc := &xnode{kind: xpath.RootNode, src: root}
	switch x := root.(type) {
	case *value.Map:
		if x == nil {
			return nil, false
		}
		doc.appendChild(projectMap(x, ""))
	case value.Sequence:
		projectItems(doc, x)
	default:
		return nil, false
	}
	return doc, true
}

// projectMap turns a map into an element named by its @type. Untyped maps
// take the name of the field holding them, or "object".
func projectMap(m *value.Map, field string) *xnode {
	name := m.StringField(value.KeyType)
	if name == "" {
		name = field
	}
	if name == "" {
		name = untypedElement
	}
	el := newElement(name, m)

	if tok, ok := m.Get(value.KeyToken); ok && value.IsScalar(tok) {
		if s := value.ScalarString(tok); s != "" {
			el.addAttr("token", tok)
			el.appendText(s, tok)
		}
	}

	for k, v := range m.All() {
		switch k {
		case value.KeyType, value.KeyToken:
			continue
		case value.KeyRoles:
			projectRoles(el, v)
			continue
		case value.KeyPos:
			projectPositions(el, v)
			continue
		case value.KeyChildren:
			projectItems(el, v)
			continue
		}

		switch x := v.(type) {
		case *value.Map:
			if x.StringField(value.KeyType) == "" {
				el.appendChild(projectMap(x, k))
				continue
			}
			field := newElement(k, x)
			field.appendChild(projectMap(x, ""))
			el.appendChild(field)
		case value.Sequence:
			field := newElement(k, x)
			projectItems(field, x)
			el.appendChild(field)
		default:
			if !value.IsNull(v) {
				el.addAttr(k, v)
			}
		}
	}
	return el
}

func projectItems(parent *xnode, v value.Value) {
	switch x := v.(type) {
	case *value.Map:
		if x != nil {
			parent.appendChild(projectMap(x, ""))
		}
	case value.Sequence:
		for _, item := range x {
			projectItems(parent, item)
		}
	default:
		if !value.IsNull(v) {
			parent.appendText(value.ScalarString(v), v)
		}
	}
}

// projectRoles emits role='Name' and roleName="" for every role.
func projectRoles(el *xnode, v value.Value) {
	seq, ok := v.(value.Sequence)
	if !ok {
		return
	}
	for _, item := range seq {
		name := roleCamel(item)
		if name == "" {
			continue
		}
		el.addAttr("role", value.String(name))
		el.addAttr("role"+name, value.String(""))
	}
}

func roleCamel(v value.Value) string {
	switch x := v.(type) {
	case value.String:
		if r, err := role.Lookup(string(x)); err == nil {
			if camel, err := role.Camel(r); err == nil {
				return camel
			}
		}
		return string(x)
	case value.Int:
		if camel, err := role.Camel(role.Role(x)); err == nil {
			return camel
		}
	}
	return ""
}

var positionFields = [...]struct{ key, suffix string }{
	{"offset", "Offset"},
	{"line", "Line"},
	{"col", "Col"},
}

// projectPositions flattens start and end into attributes and keeps the
// structured form as a uast:Positions child.
func projectPositions(el *xnode, v value.Value) {
	pos, ok := value.AsMap(v)
	if !ok {
		return
	}
	for _, which := range [...]string{"start", "end"} {
		p, ok := pos.MapField(which)
		if !ok {
			continue
		}
		for _, f := range positionFields {
			if fv, ok := p.Get(f.key); ok && value.IsScalar(fv) {
				el.addAttr(which+f.suffix, fv)
			}
		}
	}
	el.appendChild(projectMap(pos, value.TypePositions))
}

// navigator implements xpath.NodeNavigator over a projection.
type navigator struct {
	root *xnode
	curr *xnode
	attr int
}

var _ xpath.NodeNavigator = (*navigator)(nil)

func newNavigator(doc *xnode) *navigator {
	return &navigator{root: doc, curr: doc, attr: -1}
}

func (n *navigator) NodeType() xpath.NodeType {
	if n.attr != -1 {
		return xpath.AttributeNode
	}
	return n.curr.kind
}

func (n *navigator) LocalName() string {
	if n.attr != -1 {
		return n.curr.attrs[n.attr].local
	}
	return n.curr.local
}

func (n *navigator) Prefix() string {
	if n.attr != -1 {
		return n.curr.attrs[n.attr].prefix
	}
	return n.curr.prefix
}

func (n *navigator) Value() string {
	if n.attr != -1 {
		return n.curr.attrs[n.attr].text
	}
	return n.curr.stringValue()
}

func (n *navigator) Copy() xpath.NodeNavigator {
	c := *n
	return &c
}

func (n *navigator) MoveToRoot() {
	n.curr = n.root
	n.attr = -1
}

func (n *navigator) MoveToParent() bool {
	if n.attr != -1 {
		n.attr = -1
		return true
	}
	if n.curr.parent == nil {
		return false
	}
	n.curr = n.curr.parent
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	if n.attr+1 >= len(n.curr.attrs) {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr != -1 || len(n.curr.children) == 0 {
		return false
	}
	n.curr = n.curr.children[0]
	return true
}

func (n *navigator) MoveToFirst() bool {
	if n.attr != -1 || n.curr.parent == nil || n.curr.index == 0 {
		return false
	}
	n.curr = n.curr.parent.children[0]
	return true
}

func (n *navigator) MoveToNext() bool {
	if n.attr != -1 || n.curr.parent == nil {
		return false
	}
	siblings := n.curr.parent.children
	if n.curr.index+1 >= len(siblings) {
		return false
	}
	n.curr = siblings[n.curr.index+1]
	return true
}

func (n *navigator) MoveToPrevious() bool {
	if n.attr != -1 || n.curr.parent == nil || n.curr.index == 0 {
		return false
	}
	n.curr = n.curr.parent.children[n.curr.index-1]
	return true
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.curr = o.curr
	n.attr = o.attr
	return true
}

// source returns the tree value behind the current position.
func (n *navigator) source() value.Value {
	if n.attr != -1 {
		return n.curr.attrs[n.attr].val
	}
	return n.curr.src
}
