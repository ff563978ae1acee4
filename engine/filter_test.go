package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bblfsh/uastclient/value"
)

func filterAll(t *testing.T, root value.Value, query string) []Item {
	t.Helper()
	c, err := Filter(NewTree(root).Root(), query)
	if err != nil {
		t.Fatalf("Filter(%q) error = %v", query, err)
	}
	var out []Item
	for {
		it, ok := c.Next()
		if !ok {
			break
		}
		out = append(out, it)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Filter(%q) cursor error = %v", query, err)
	}
	return out
}

func single(t *testing.T, root value.Value, query string) value.Value {
	t.Helper()
	items := filterAll(t, root, query)
	if len(items) != 1 {
		t.Fatalf("Filter(%q) returned %d items, want 1", query, len(items))
	}
	return items[0].Load()
}

func TestFilter_Matches(t *testing.T) {
	tree := value.MapOf(
		value.KeyType, "python:Module",
		value.KeyRoles, value.Sequence{value.String("File"), value.Int(1)},
		value.KeyPos, value.NewPositions(
			value.Position{Offset: 100, Line: 10, Col: 50},
			value.Position{Offset: 120, Line: 12, Col: 5},
		),
		"k1", "v2",
		"k2", "v1",
		"body", value.Sequence{
			value.MapOf(value.KeyType, "Num", value.KeyToken, "0"),
			value.MapOf(value.KeyType, "Num", value.KeyToken, "1"),
		},
		"meta", value.MapOf("lang", "python"),
	)

	tests := []struct {
		query string
		want  bool
	}{
		{"//python:Module", true},
		{"//Num", true},
		{"//Str", false},
		{"//*[@token='1']", true},
		{"//*[@token='2']", false},
		{"//*[@roleFile]", true},
		{"//*[@roleIdentifier]", true},
		{"//*[@role='File']", true},
		{"//*[@roleQualified]", false},
		{"//*[@k1='v2']", true},
		{"//*[@k1='v1']", false},
		{"//*[@startOffset=100]", true},
		{"//*[@startOffset=10]", false},
		{"//*[@startLine=10]", true},
		{"//*[@startCol=50]", true},
		{"//*[@endOffset=120]", true},
		{"//*[@endLine=12]", true},
		{"//*[@endCol=5]", true},
		{"//*[@endCol=50]", false},
		{"//uast:Positions/start/uast:Position[@offset=100]", true},
		{"//uast:Positions/end/uast:Position[@line=12]", true},
		{"//meta[@lang='python']", true},
		{"/python:Module/body/Num", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := len(filterAll(t, tree, tt.query)) > 0
			if got != tt.want {
				t.Errorf("Filter(%q) matched = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_NodeResultsShareTree(t *testing.T) {
	first := value.MapOf(value.KeyType, "Num", value.KeyToken, "0")
	second := value.MapOf(value.KeyType, "Num", value.KeyToken, "100")
	root := value.MapOf(value.KeyType, "File", value.KeyChildren, value.Sequence{first, second})

	tree := NewTree(root)
	c, err := Filter(tree.Root(), "//Num")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	for _, want := range []*value.Map{first, second} {
		it, ok := c.Next()
		if !ok {
			t.Fatal("Next() = false, want a node")
		}
		if it.Ref == nil || it.Ref.Tree() != tree {
			t.Fatalf("item %#v is not a node of the queried tree", it)
		}
		if got := it.Ref.Load(); got != want {
			t.Errorf("node = %#v, want the original map %#v", got, want)
		}
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() after last node = true")
	}
}

func TestFilter_ScalarResults(t *testing.T) {
	root := value.MapOf(value.KeyType, "test", value.KeyChildren, value.Sequence{
		value.MapOf(value.KeyType, ""),
		value.MapOf(value.KeyType, ""),
		value.MapOf(value.KeyType, "", "size", 7),
	})

	tests := []struct {
		query string
		want  value.Value
	}{
		{"count(//*)", value.Int(4)},
		{"1 div 2", value.Float(0.5)},
		{"name(//*[1])", value.String("test")},
		{"boolean(//*[@size])", value.Bool(true)},
		{"boolean(//*[@blah])", value.Bool(false)},
		{"//*/@size", value.Int(7)},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := single(t, root, tt.query)
			if !value.Equal(tt.want, got) {
				t.Errorf("Filter(%q) = %#v, want %#v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_TokenText(t *testing.T) {
	root := value.MapOf(value.KeyType, "Ident", value.KeyToken, "foo")
	if got := single(t, root, "//Ident/text()"); !value.Equal(value.String("foo"), got) {
		t.Errorf("text() = %#v, want foo", got)
	}
	if got := single(t, root, "string(/Ident)"); !value.Equal(value.String("foo"), got) {
		t.Errorf("string() = %#v, want foo", got)
	}
}

func TestFilter_NoResults(t *testing.T) {
	root := value.MapOf(value.KeyType, "", value.KeyToken, "", value.KeyRoles, value.Sequence{})
	if items := filterAll(t, root, "//*[@token='x']"); len(items) != 0 {
		t.Errorf("Filter() on empty node = %v, want no results", items)
	}
}

func TestFilter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		root  value.Value
		query string
	}{
		{"bad syntax", value.MapOf(value.KeyType, "a"), "//*roleModule"},
		{"unbalanced", value.MapOf(value.KeyType, "a"), "//a["},
		{"extra brackets", value.MapOf(value.KeyType, "a"), "//a]]"},
		{"trailing name", value.MapOf(value.KeyType, "a"), "//a foo"},
		{"trailing paren", value.MapOf(value.KeyType, "a"), "count(//*) )"},
		{"unterminated literal", value.MapOf(value.KeyType, "a"), "//a[@token='x]"},
		{"scalar root", value.Int(0), "foo"},
		{"bad jsonpath", value.MapOf(value.KeyType, "a"), "$["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(NewTree(tt.root).Root(), tt.query)
			if !errors.Is(err, ErrQuery) {
				t.Errorf("Filter(%q) error = %v, want ErrQuery", tt.query, err)
			}
		})
	}
}

func TestFilter_BracketsInLiterals(t *testing.T) {
	root := value.MapOf(value.KeyType, "root", value.KeyChildren, value.Sequence{
		value.MapOf(value.KeyType, "op", value.KeyToken, "]"),
		value.MapOf(value.KeyType, "op", value.KeyToken, "("),
	})

	tests := []struct {
		query string
		want  int
	}{
		{`//op[@token=']']`, 1},
		{`//op[@token="("]`, 1},
		{`//op[contains(")(", @token)]`, 1},
		{`(//op)[2]`, 1},
		{`//op | //root`, 3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := len(filterAll(t, root, tt.query)); got != tt.want {
				t.Errorf("Filter(%q) matched %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_JSONPath(t *testing.T) {
	son := value.MapOf(value.KeyType, "son1", "n", 1)
	root := value.MapOf(value.KeyType, "root", value.KeyChildren, value.Sequence{son}, "tags", value.Sequence{value.String("a")})

	items := filterAll(t, root, "$._children[0]")
	if len(items) != 1 || items[0].Ref == nil || items[0].Ref.Load() != son {
		t.Fatalf("$._children[0] = %#v, want the son1 node", items)
	}

	if got := single(t, root, `$["@type"]`); !value.Equal(value.String("root"), got) {
		t.Errorf(`$["@type"] = %#v, want root`, got)
	}
	if got := single(t, root, "$._children[0].n"); !value.Equal(value.Int(1), got) {
		t.Errorf("$._children[0].n = %#v, want 1", got)
	}

	var names []string
	for _, it := range filterAll(t, root, `$..[?@["@type"]]`) {
		names = append(names, value.TypeOf(it.Load()))
	}
	if diff := cmp.Diff([]string{"son1"}, names); diff != "" {
		t.Errorf("descendant filter mismatch (-want +got):\n%s", diff)
	}
}
