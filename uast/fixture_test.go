package uast

import (
	"testing"
)

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// compatNode builds a node through the compatibility accessors.
func compatNode(t *testing.T, typ string, offset int64, children ...*Node) *Node {
	t.Helper()
	n := NewEmptyNode()
	mustNoErr(t, n.SetType(typ))
	start, err := n.StartPosition()
	mustNoErr(t, err)
	start.SetOffset(offset)
	if len(children) > 0 {
		c, err := n.Children()
		mustNoErr(t, err)
		mustNoErr(t, c.Extend(children))
	}
	return n
}

// fixtureTree builds root{son1{son1_1, son1_2}, son2{son2_1, son2_2}}.
func fixtureTree(t *testing.T) *Node {
	t.Helper()
	root := compatNode(t, "root", 0,
		compatNode(t, "son1", 1,
			compatNode(t, "son1_1", 10),
			compatNode(t, "son1_2", 10),
		),
		compatNode(t, "son2", 100,
			compatNode(t, "son2_1", 5),
			compatNode(t, "son2_2", 15),
		),
	)
	start, err := root.StartPosition()
	mustNoErr(t, err)
	start.SetCol(1)
	return root
}

func nodeTypes(t *testing.T, it *Iterator) []string {
	t.Helper()
	var out []string
	for item := range it.All() {
		if !item.IsNode() {
			t.Fatalf("unexpected scalar item %#v", item.Value)
		}
		out = append(out, item.Node.Type())
	}
	mustNoErr(t, it.Err())
	return out
}
