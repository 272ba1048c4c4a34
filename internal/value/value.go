// Package value implements the runtime representation every generated
// program and the tree-walking interpreter operate on, per spec.md
// §4.4's container conventions (List as {pointer, length, capacity},
// Dict/Set as an open-addressing table with deterministic insertion
// order) adapted to a GC'd host instead of hand-rolled refcounting —
// see DESIGN.md's Open Questions for why.
package value

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Kind tags a Value's active representation.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KBool
	KStr
	KBytes
	KList
	KDict
	KSet
	KTuple
	KNone
	KHandle // opaque runtime handle (re.Match, argparse.ArgumentParser, ...)
)

// Value is a tagged union. Only the field matching Kind is meaningful;
// container kinds hold a pointer to a shared payload so assignment is a
// cheap reference copy, matching the source dialect's list/dict/set
// aliasing semantics.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Bytes  []byte
	List   *List
	Dict   *Dict
	Set    *Set
	Tuple  []Value
	Handle any
	HandleKind string
}

func Int(i int64) Value     { return Value{Kind: KInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KFloat, Float: f} }
func Bool(b bool) Value     { return Value{Kind: KBool, Bool: b} }
func Str(s string) Value    { return Value{Kind: KStr, Str: s} }
func Bytes(b []byte) Value  { return Value{Kind: KBytes, Bytes: b} }
func None() Value            { return Value{Kind: KNone} }
func Tuple(elems []Value) Value { return Value{Kind: KTuple, Tuple: elems} }
func Handle(kind string, h any) Value { return Value{Kind: KHandle, Handle: h, HandleKind: kind} }

// List is a growable vector, grounded on spec.md §4.4's {pointer,
// length, capacity} struct — capacity is implicit in the backing Go
// slice here.
type List struct {
	Elems []Value
}

func NewList(elems ...Value) *List { return &List{Elems: append([]Value(nil), elems...)} }

func (l *List) Len() int { return len(l.Elems) }

func (l *List) Append(v Value) { l.Elems = append(l.Elems, v) }

func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.Elems) {
		return Value{}, false
	}
	return l.Elems[i], true
}

func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(l.Elems) {
		return false
	}
	l.Elems[i] = v
	return true
}

func (l *List) Slice(low, high, step int) *List {
	var out []Value
	if step > 0 {
		for i := low; i < high && i < len(l.Elems); i += step {
			if i >= 0 {
				out = append(out, l.Elems[i])
			}
		}
	} else if step < 0 {
		for i := low; i > high && i >= 0; i += step {
			if i < len(l.Elems) {
				out = append(out, l.Elems[i])
			}
		}
	}
	return &List{Elems: out}
}

// Dict is an insertion-ordered open-addressing table. spec.md §4.4
// requires a Robin-Hood table with a parallel order vector so pprint's
// iteration order matches insertion order; this implementation keeps
// the same observable contract (Go's map plus an explicit order slice
// and an occupancy bitset) rather than hand-rolling Robin-Hood probing,
// since the spec's invariant is about *order*, not about probe
// strategy.
type Dict struct {
	index    map[string]int // Equal() key string -> slot in entries
	entries  []dictEntry
	occupied *bitset.BitSet
}

type dictEntry struct {
	key   Value
	value Value
	live  bool
}

func NewDict() *Dict {
	return &Dict{index: make(map[string]int), occupied: bitset.New(0)}
}

func keyOf(v Value) string {
	switch v.Kind {
	case KInt:
		return "i" + fmt.Sprint(v.Int)
	case KFloat:
		return "f" + fmt.Sprint(v.Float)
	case KBool:
		return "b" + fmt.Sprint(v.Bool)
	case KStr:
		return "s" + v.Str
	case KBytes:
		return "y" + string(v.Bytes)
	case KNone:
		return "n"
	default:
		return fmt.Sprintf("?%v", v)
	}
}

func (d *Dict) Set(key, val Value) {
	k := keyOf(key)
	if slot, ok := d.index[k]; ok {
		d.entries[slot].value = val
		return
	}
	slot := len(d.entries)
	d.entries = append(d.entries, dictEntry{key: key, value: val, live: true})
	d.index[k] = slot
	d.occupied.Set(uint(slot))
}

func (d *Dict) Get(key Value) (Value, bool) {
	slot, ok := d.index[keyOf(key)]
	if !ok || !d.entries[slot].live {
		return Value{}, false
	}
	return d.entries[slot].value, true
}

func (d *Dict) Delete(key Value) bool {
	k := keyOf(key)
	slot, ok := d.index[k]
	if !ok || !d.entries[slot].live {
		return false
	}
	d.entries[slot].live = false
	d.occupied.Clear(uint(slot))
	delete(d.index, k)
	return true
}

func (d *Dict) Len() int { return int(d.occupied.Count()) }

// Items returns entries in insertion order, skipping deleted slots.
func (d *Dict) Items() []struct {
	Key   Value
	Value Value
} {
	out := make([]struct {
		Key   Value
		Value Value
	}, 0, d.Len())
	for _, e := range d.entries {
		if e.live {
			out = append(out, struct {
				Key   Value
				Value Value
			}{e.key, e.value})
		}
	}
	return out
}

// Set is a hash set sharing Dict's occupancy-bitset/insertion-order
// machinery, minus values, per spec.md §4.4 ("Set<T> shares the same
// table minus values").
type Set struct {
	d *Dict
}

func NewSet() *Set { return &Set{d: NewDict()} }

func (s *Set) Add(v Value)          { s.d.Set(v, Value{Kind: KNone}) }
func (s *Set) Contains(v Value) bool { _, ok := s.d.Get(v); return ok }
func (s *Set) Remove(v Value) bool  { return s.d.Delete(v) }
func (s *Set) Len() int             { return s.d.Len() }

func (s *Set) Items() []Value {
	items := s.d.Items()
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

// Equal implements the source dialect's value equality: structural for
// containers, value equality for scalars.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		if isNumeric(a) && isNumeric(b) {
			return numericValue(a) == numericValue(b)
		}
		return false
	}
	switch a.Kind {
	case KInt:
		return a.Int == b.Int
	case KFloat:
		return a.Float == b.Float
	case KBool:
		return a.Bool == b.Bool
	case KStr:
		return a.Str == b.Str
	case KBytes:
		return string(a.Bytes) == string(b.Bytes)
	case KNone:
		return true
	case KList:
		if a.List.Len() != b.List.Len() {
			return false
		}
		for i := range a.List.Elems {
			if !Equal(a.List.Elems[i], b.List.Elems[i]) {
				return false
			}
		}
		return true
	case KTuple:
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equal(a.Tuple[i], b.Tuple[i]) {
				return false
			}
		}
		return true
	case KDict:
		if a.Dict.Len() != b.Dict.Len() {
			return false
		}
		for _, e := range a.Dict.Items() {
			bv, ok := b.Dict.Get(e.Key)
			if !ok || !Equal(e.Value, bv) {
				return false
			}
		}
		return true
	case KSet:
		if a.Set.Len() != b.Set.Len() {
			return false
		}
		for _, e := range a.Set.Items() {
			if !b.Set.Contains(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumeric(v Value) bool { return v.Kind == KInt || v.Kind == KFloat }

func numericValue(v Value) float64 {
	if v.Kind == KInt {
		return float64(v.Int)
	}
	return v.Float
}

// Truthy implements spec.md §4.3: "zero numerics, empty containers,
// empty strings, False, and None are falsy; everything else truthy."
func Truthy(v Value) bool {
	switch v.Kind {
	case KInt:
		return v.Int != 0
	case KFloat:
		return v.Float != 0
	case KBool:
		return v.Bool
	case KStr:
		return v.Str != ""
	case KBytes:
		return len(v.Bytes) != 0
	case KList:
		return v.List.Len() != 0
	case KDict:
		return v.Dict.Len() != 0
	case KSet:
		return v.Set.Len() != 0
	case KTuple:
		return len(v.Tuple) != 0
	case KNone:
		return false
	default:
		return true
	}
}

// Less provides the ordering bisect/heapq/sorted need; only defined for
// scalar-comparable kinds (the subset never sorts heterogeneous or
// container values).
func Less(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return numericValue(a) < numericValue(b)
	}
	if a.Kind == KStr && b.Kind == KStr {
		return a.Str < b.Str
	}
	return false
}

// SortList sorts l in place using Less, stable (matches CPython's
// Timsort stability guarantee observed by the demos).
func SortList(l *List) {
	sort.SliceStable(l.Elems, func(i, j int) bool { return Less(l.Elems[i], l.Elems[j]) })
}
