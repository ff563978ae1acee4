package uast

import (
	"errors"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/value"
)

func TestIterator_Orders(t *testing.T) {
	tests := []struct {
		order Order
		want  []string
	}{
		{PreOrder, []string{"root", "son1", "son1_1", "son1_2", "son2", "son2_1", "son2_2"}},
		{PostOrder, []string{"son1_1", "son1_2", "son1", "son2_1", "son2_2", "son2", "root"}},
		{LevelOrder, []string{"root", "son1", "son2", "son1_1", "son1_2", "son2_1", "son2_2"}},
		{ChildrenOrder, []string{"son1", "son2"}},
		{PositionOrder, []string{"root", "son1", "son2_1", "son1_1", "son1_2", "son2_2", "son2"}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			it, err := fixtureTree(t).Iterate(tt.order)
			mustNoErr(t, err)
			if it.Order() != tt.order {
				t.Errorf("Order() = %v, want %v", it.Order(), tt.order)
			}
			if diff := cmp.Diff(tt.want, nodeTypes(t, it)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIterator_AnyOrderVisitsEveryNode(t *testing.T) {
	it, err := fixtureTree(t).Iterate(AnyOrder)
	mustNoErr(t, err)
	got := map[string]bool{}
	for _, typ := range nodeTypes(t, it) {
		got[typ] = true
	}
	for _, typ := range []string{"root", "son1", "son1_1", "son1_2", "son2", "son2_1", "son2_2"} {
		if !got[typ] {
			t.Errorf("AnyOrder missed %s", typ)
		}
	}
	if len(got) != 7 {
		t.Errorf("AnyOrder visited %d distinct nodes, want 7", len(got))
	}
}

func TestIterator_PositionOrderIsSorted(t *testing.T) {
	it, err := fixtureTree(t).Iterate(PositionOrder)
	mustNoErr(t, err)
	var prev value.Position
	for n := range it.Nodes() {
		start, err := n.StartPosition()
		mustNoErr(t, err)
		if start.Value().Less(prev) {
			t.Errorf("%s at %v comes after %v", n.Type(), start.Value(), prev)
		}
		prev = start.Value()
	}
}

func TestIterator_NextAfterExhaustion(t *testing.T) {
	it, err := compatNode(t, "only", 0).Iterate(PreOrder)
	mustNoErr(t, err)
	if _, ok := it.Next(); !ok {
		t.Fatal("Next() = false on a single node tree")
	}
	for range 2 {
		if _, ok := it.Next(); ok {
			t.Error("Next() after exhaustion = true")
		}
	}
}

func TestIterator_Reroot(t *testing.T) {
	it, err := fixtureTree(t).Iterate(PreOrder)
	mustNoErr(t, err)

	it.Next() // root
	item, _ := it.Next()
	if item.Node.Type() != "son1" {
		t.Fatalf("second node = %s, want son1", item.Node.Type())
	}

	sub, err := it.Iterate(PostOrder)
	mustNoErr(t, err)
	if diff := cmp.Diff([]string{"son1_1", "son1_2", "son1"}, nodeTypes(t, sub)); diff != "" {
		t.Errorf("re-rooted mismatch (-want +got):\n%s", diff)
	}
	if it.Order() != PostOrder || sub.Order() != PostOrder {
		t.Errorf("Order() = %v, %v, want PostOrder for both", it.Order(), sub.Order())
	}

	// the original iterator is unaffected
	next, ok := it.Next()
	if !ok || next.Node.Type() != "son1_1" {
		t.Errorf("original iterator continued with %v, want son1_1", next.Node)
	}
}

func TestIterator_RerootBeforeFirstItem(t *testing.T) {
	it, err := fixtureTree(t).Iterate(PreOrder)
	mustNoErr(t, err)

	sub, err := it.Iterate(ChildrenOrder)
	mustNoErr(t, err)
	if diff := cmp.Diff([]string{"son1", "son2"}, nodeTypes(t, sub)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIterator_RerootErrors(t *testing.T) {
	root := fixtureTree(t)

	empty, err := root.Filter("//missing")
	mustNoErr(t, err)
	if _, err := empty.Iterate(PreOrder); !errors.Is(err, ErrExhausted) {
		t.Errorf("Iterate() on empty results error = %v, want ErrExhausted", err)
	}

	scalar, err := root.Filter("count(//*)")
	mustNoErr(t, err)
	if _, err := scalar.Iterate(PreOrder); !errors.Is(err, ErrNotNode) {
		t.Errorf("Iterate() after a scalar error = %v, want ErrNotNode", err)
	}

	it, err := root.Iterate(PreOrder)
	mustNoErr(t, err)
	if _, err := it.Iterate(Order(-3)); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("Iterate(-3) error = %v, want ErrInvalidOrder", err)
	}
	if it.Order() != PreOrder {
		t.Errorf("Order() after a failed Iterate = %v, want PreOrder", it.Order())
	}
}

func TestIterator_NodesAreLazy(t *testing.T) {
	it, err := fixtureTree(t).Iterate(PreOrder)
	mustNoErr(t, err)
	item, ok := it.Next()
	if !ok {
		t.Fatal("Next() = false")
	}
	if item.Node.Realized() {
		t.Error("yielded node is realized before use")
	}
	if item.Node.Type() != "root" || !item.Node.Realized() {
		t.Error("node not realized after access")
	}
}

func orphanIterator(t *testing.T) *Iterator {
	t.Helper()
	data, err := codec.Encode(fixtureTree(t).Get(), codec.Binary)
	mustNoErr(t, err)
	ctx, err := NewResultContext(&Response{UAST: data, Language: "python", Filename: "fixture.py"})
	mustNoErr(t, err)
	it, err := ctx.Iterate(PreOrder)
	mustNoErr(t, err)
	return it
}

func orphanRoot(t *testing.T) *Node {
	t.Helper()
	data, err := codec.Encode(fixtureTree(t).Get(), codec.Binary)
	mustNoErr(t, err)
	ctx, err := NewResultContext(&Response{UAST: data})
	mustNoErr(t, err)
	return ctx.Root()
}

func TestIterator_OutlivesContext(t *testing.T) {
	it := orphanIterator(t)
	root := orphanRoot(t)
	runtime.GC()
	runtime.GC()

	want := []string{"root", "son1", "son1_1", "son1_2", "son2", "son2_1", "son2_2"}
	if diff := cmp.Diff(want, nodeTypes(t, it)); diff != "" {
		t.Errorf("orphan iterator mismatch (-want +got):\n%s", diff)
	}

	res, err := root.Filter("//son2_1")
	mustNoErr(t, err)
	if diff := cmp.Diff([]string{"son2_1"}, nodeTypes(t, res)); diff != "" {
		t.Errorf("orphan filter mismatch (-want +got):\n%s", diff)
	}
}
