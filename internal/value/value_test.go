package value

import "testing"

func TestDictInsertionOrderPreserved(t *testing.T) {
	d := NewDict()
	d.Set(Str("z"), Int(1))
	d.Set(Str("a"), Int(2))
	d.Set(Str("m"), Int(3))
	items := d.Items()
	want := []string{"z", "a", "m"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, k := range want {
		if items[i].Key.Str != k {
			t.Errorf("item %d: expected key %q, got %q", i, k, items[i].Key.Str)
		}
	}
}

func TestDictDeleteThenLen(t *testing.T) {
	d := NewDict()
	d.Set(Int(1), Str("one"))
	d.Set(Int(2), Str("two"))
	if !d.Delete(Int(1)) {
		t.Fatalf("expected delete of present key to succeed")
	}
	if d.Delete(Int(1)) {
		t.Fatalf("expected second delete of same key to fail")
	}
	if d.Len() != 1 {
		t.Fatalf("expected len 1 after delete, got %d", d.Len())
	}
	if _, ok := d.Get(Int(1)); ok {
		t.Fatalf("expected deleted key to be absent")
	}
}

func TestSetSharesDictTableMinusValues(t *testing.T) {
	s := NewSet()
	s.Add(Int(1))
	s.Add(Int(2))
	s.Add(Int(1)) // duplicate
	if s.Len() != 2 {
		t.Fatalf("expected set len 2 after duplicate add, got %d", s.Len())
	}
	if !s.Contains(Int(1)) || !s.Contains(Int(2)) {
		t.Fatalf("expected both members present")
	}
	s.Remove(Int(1))
	if s.Contains(Int(1)) {
		t.Fatalf("expected removed member to be absent")
	}
}

func TestListSlicePositiveStep(t *testing.T) {
	l := NewList(Int(0), Int(1), Int(2), Int(3), Int(4))
	got := l.Slice(1, 4, 1)
	want := []int64{1, 2, 3}
	if got.Len() != len(want) {
		t.Fatalf("expected %d elems, got %d", len(want), got.Len())
	}
	for i, w := range want {
		if got.Elems[i].Int != w {
			t.Errorf("elem %d: expected %d, got %d", i, w, got.Elems[i].Int)
		}
	}
}

func TestListSliceNegativeStep(t *testing.T) {
	l := NewList(Int(0), Int(1), Int(2), Int(3), Int(4))
	got := l.Slice(4, 0, -1)
	want := []int64{4, 3, 2, 1}
	if got.Len() != len(want) {
		t.Fatalf("expected %d elems, got %d", len(want), got.Len())
	}
	for i, w := range want {
		if got.Elems[i].Int != w {
			t.Errorf("elem %d: expected %d, got %d", i, w, got.Elems[i].Int)
		}
	}
}

func TestTruthyMatchesSpecRules(t *testing.T) {
	falsy := []Value{Int(0), Float(0), Bool(false), Str(""), Bytes(nil), None(), NewValueList(), NewValueDict(), NewValueSet()}
	for i, v := range falsy {
		if Truthy(v) {
			t.Errorf("case %d (%v): expected falsy", i, v)
		}
	}
	truthy := []Value{Int(1), Float(0.1), Bool(true), Str("x"), Bytes([]byte{0})}
	for i, v := range truthy {
		if !Truthy(v) {
			t.Errorf("case %d (%v): expected truthy", i, v)
		}
	}
}

func TestEqualCrossNumericKind(t *testing.T) {
	if !Equal(Int(2), Float(2.0)) {
		t.Fatalf("expected int 2 to equal float 2.0")
	}
	if Equal(Int(2), Str("2")) {
		t.Fatalf("expected int 2 to not equal str \"2\"")
	}
}

func TestSortListStable(t *testing.T) {
	l := NewList(Int(3), Int(1), Int(2), Int(1))
	SortList(l)
	want := []int64{1, 1, 2, 3}
	for i, w := range want {
		if l.Elems[i].Int != w {
			t.Errorf("position %d: expected %d, got %d", i, w, l.Elems[i].Int)
		}
	}
}

func NewValueList() Value { return Value{Kind: KList, List: NewList()} }
func NewValueDict() Value { return Value{Kind: KDict, Dict: NewDict()} }
func NewValueSet() Value  { return Value{Kind: KSet, Set: NewSet()} }
