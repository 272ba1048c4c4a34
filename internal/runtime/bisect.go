// bisect backs spec.md §4.5's bisect module (binary search / insertion
// over a sorted list), grounded on value.Less — the same ordering
// sort.SliceStable uses in value.SortList.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerBisect(r *Registry) {
	r.register("bisect", map[string]Fn{
		"bisect_left":  bisectLeft,
		"bisect_right": bisectRight,
		"bisect":       bisectRight,
		"insort":       insortRight,
		"insort_left":  insortLeft,
	})
}

func bisectLeftIdx(l *value.List, x value.Value) int {
	lo, hi := 0, l.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		e, _ := l.Get(mid)
		if value.Less(e, x) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func bisectRightIdx(l *value.List, x value.Value) int {
	lo, hi := 0, l.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		e, _ := l.Get(mid)
		if value.Less(x, e) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func bisectLeft(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("bisect_left takes 2 arguments")
	}
	return value.Int(int64(bisectLeftIdx(args[0].List, args[1]))), nil
}

func bisectRight(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("bisect_right takes 2 arguments")
	}
	return value.Int(int64(bisectRightIdx(args[0].List, args[1]))), nil
}

func listInsertAt(l *value.List, i int, v value.Value) {
	l.Elems = append(l.Elems, value.Value{})
	copy(l.Elems[i+1:], l.Elems[i:])
	l.Elems[i] = v
}

func insortRight(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("insort takes 2 arguments")
	}
	l := args[0].List
	listInsertAt(l, bisectRightIdx(l, args[1]), args[1])
	return value.None(), nil
}

func insortLeft(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("insort_left takes 2 arguments")
	}
	l := args[0].List
	listInsertAt(l, bisectLeftIdx(l, args[1]), args[1])
	return value.None(), nil
}
