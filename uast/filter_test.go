package uast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bblfsh/uastclient/role"
	"github.com/bblfsh/uastclient/value"
)

func matches(t *testing.T, n *Node, query string) bool {
	t.Helper()
	it, err := Filter(n, query)
	if err != nil {
		t.Fatalf("Filter(%q) error = %v", query, err)
	}
	_, ok := it.Next()
	mustNoErr(t, it.Err())
	return ok
}

func TestFilter_CompatNodes(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, n *Node)
		hit   string
		miss  string
	}{
		{
			name:  "internal type",
			build: func(t *testing.T, n *Node) { mustNoErr(t, n.SetType("a")) },
			hit:   "//a",
			miss:  "//b",
		},
		{
			name:  "token",
			build: func(t *testing.T, n *Node) { mustNoErr(t, n.SetToken("a")) },
			hit:   "//*[@token='a']",
			miss:  "//*[@token='b']",
		},
		{
			name:  "roles",
			build: func(t *testing.T, n *Node) { mustNoErr(t, n.AddRole(role.Role(1))) },
			hit:   "//*[@roleIdentifier]",
			miss:  "//*[@roleQualified]",
		},
		{
			name: "properties",
			build: func(t *testing.T, n *Node) {
				props, err := n.Properties()
				mustNoErr(t, err)
				props.Set("k1", value.String("v2"))
				props.Set("k2", value.String("v1"))
			},
			hit:  "//*[@k2='v1']",
			miss: "//*[@k1='v1']",
		},
		{
			name: "start offset",
			build: func(t *testing.T, n *Node) {
				p, err := n.StartPosition()
				mustNoErr(t, err)
				p.SetOffset(100)
			},
			hit:  "//*[@startOffset=100]",
			miss: "//*[@startOffset=10]",
		},
		{
			name: "start line",
			build: func(t *testing.T, n *Node) {
				p, err := n.StartPosition()
				mustNoErr(t, err)
				p.SetLine(10)
			},
			hit:  "//*[@startLine=10]",
			miss: "//*[@startLine=100]",
		},
		{
			name: "start col",
			build: func(t *testing.T, n *Node) {
				p, err := n.StartPosition()
				mustNoErr(t, err)
				p.SetCol(50)
			},
			hit:  "//*[@startCol=50]",
			miss: "//*[@startCol=5]",
		},
		{
			name: "end offset",
			build: func(t *testing.T, n *Node) {
				p, err := n.EndPosition()
				mustNoErr(t, err)
				p.SetOffset(100)
			},
			hit:  "//*[@endOffset=100]",
			miss: "//*[@endOffset=10]",
		},
		{
			name: "end line",
			build: func(t *testing.T, n *Node) {
				p, err := n.EndPosition()
				mustNoErr(t, err)
				p.SetLine(10)
			},
			hit:  "//*[@endLine=10]",
			miss: "//*[@endLine=100]",
		},
		{
			name: "end col",
			build: func(t *testing.T, n *Node) {
				p, err := n.EndPosition()
				mustNoErr(t, err)
				p.SetCol(50)
			},
			hit:  "//*[@endCol=50]",
			miss: "//*[@endCol=5]",
		},
		{
			name: "structured position",
			build: func(t *testing.T, n *Node) {
				p, err := n.StartPosition()
				mustNoErr(t, err)
				p.SetLine(7)
			},
			hit:  "//uast:Positions/start/uast:Position[@line=7]",
			miss: "//uast:Positions/end/uast:Position[@line=7]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewEmptyNode()
			tt.build(t, n)
			if !matches(t, n, tt.hit) {
				t.Errorf("Filter(%q) found nothing", tt.hit)
			}
			if matches(t, n, tt.miss) {
				t.Errorf("Filter(%q) matched", tt.miss)
			}
		})
	}
}

func TestFilter_EmptyNodeHasNoAttributes(t *testing.T) {
	for _, q := range []string{"//*[@token]", "//*[@startOffset]", "//*[@blah='x']", "//*[@roleIdentifier]"} {
		if matches(t, NewEmptyNode(), q) {
			t.Errorf("Filter(%q) on an empty node matched", q)
		}
	}
}

func TestFilter_Typed(t *testing.T) {
	n := NewEmptyNode()
	mustNoErr(t, n.SetType("test"))
	c, err := n.Children()
	mustNoErr(t, err)
	mustNoErr(t, c.Append(NewEmptyNode(), NewEmptyNode(), NewEmptyNode()))

	if got, err := FilterInt(n, "count(//*)"); err != nil || got != 4 {
		t.Errorf("FilterInt(count) = %d, %v, want 4", got, err)
	}
	if got, err := FilterNumber(n, "count(//*)"); err != nil || got != 4.0 {
		t.Errorf("FilterNumber(count) = %v, %v, want 4.0", got, err)
	}
	if got, err := FilterFloat(n, "count(//*) div 8"); err != nil || got != 0.5 {
		t.Errorf("FilterFloat() = %v, %v, want 0.5", got, err)
	}
	if got, err := FilterString(n, "name(//*[1])"); err != nil || got != "test" {
		t.Errorf("FilterString(name) = %q, %v, want test", got, err)
	}
	if got, err := FilterBool(n, "boolean(//*[@blah])"); err != nil || got {
		t.Errorf("FilterBool(blah) = %v, %v, want false", got, err)
	}

	p, err := n.EndPosition()
	mustNoErr(t, err)
	p.SetCol(50)
	if got, err := FilterBool(n, "boolean(//*[@startOffset or @endOffset])"); err != nil || !got {
		t.Errorf("FilterBool(positions) = %v, %v, want true", got, err)
	}
}

func TestFilter_TypedErrors(t *testing.T) {
	n := NewEmptyNode()
	mustNoErr(t, n.SetType("test"))
	c, err := n.Children()
	mustNoErr(t, err)
	mustNoErr(t, c.Append(NewEmptyNode(), NewEmptyNode()))

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"many results", func() error { _, err := FilterBool(n, "//*"); return err }, ErrCardinality},
		{"no results", func() error { _, err := FilterString(n, "//nothing"); return err }, ErrCardinality},
		{"wrong kind", func() error { _, err := FilterString(n, "count(//*)"); return err }, ErrTypeMismatch},
		{"float as int", func() error { _, err := FilterInt(n, "1 div 4"); return err }, ErrTypeMismatch},
		{"node as bool", func() error { _, err := FilterBool(n, "/test"); return err }, ErrTypeMismatch},
		{"bad query", func() error { _, err := FilterBool(n, "//*roleModule"); return err }, ErrQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFilter_BadQuery(t *testing.T) {
	if _, err := Filter(NewEmptyNode(), "//*roleModule"); !errors.Is(err, ErrQuery) {
		t.Errorf("Filter() error = %v, want ErrQuery", err)
	}
	if _, err := FilterValue(value.Int(0), "foo"); !errors.Is(err, ErrQuery) {
		t.Errorf("FilterValue(0) error = %v, want ErrQuery", err)
	}
}

func TestFilter_DocumentOrder(t *testing.T) {
	body := value.Sequence{}
	for _, tok := range []string{"0", "1", "100", "10"} {
		body = append(body, value.MapOf(value.KeyType, "Num", value.KeyToken, tok))
	}
	root := value.MapOf(value.KeyType, "File", "body", body)

	it, err := FilterValue(root, "//Num")
	mustNoErr(t, err)
	var tokens []string
	for n := range it.Nodes() {
		tokens = append(tokens, n.Token())
	}
	if diff := cmp.Diff([]string{"0", "1", "100", "10"}, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterNodes(t *testing.T) {
	root := compatNode(t, "File", 0, compatNode(t, "Num", 3))
	props, err := root.Properties()
	mustNoErr(t, err)
	props.Set("meta", value.MapOf("lang", "go"))

	it, err := FilterNodes(root, "//* | //@startOffset")
	mustNoErr(t, err)
	if diff := cmp.Diff([]string{"File", "Num"}, nodeTypes(t, it)); diff != "" {
		t.Errorf("FilterNodes mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_InsideIteration(t *testing.T) {
	root := fixtureTree(t)
	mustNoErr(t, root.AddRole(role.Role(1)))

	it, err := root.Iterate(PreOrder)
	mustNoErr(t, err)
	hits := 0
	for n := range it.Nodes() {
		res, err := n.Filter("//*[@roleIdentifier]")
		mustNoErr(t, err)
		for range res.All() {
			hits++
		}
	}
	// only the root carries the role, and only its own query sees it
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}
