// heapq backs spec.md §4.5's heapq module (binary min-heap over a
// list), hand-rolled sift-up/sift-down over value.List.Elems rather
// than container/heap's interface, since the heap here always operates
// on the same concrete element type (value.Value) compared via
// value.Less.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerHeapq(r *Registry) {
	r.register("heapq", map[string]Fn{
		"heappush": heapqPush,
		"heappop":  heapqPop,
		"heapify":  heapqHeapify,
	})
}

func siftDown(elems []value.Value, start, pos int) {
	newItem := elems[pos]
	for pos > start {
		parent := (pos - 1) / 2
		if value.Less(newItem, elems[parent]) {
			elems[pos] = elems[parent]
			pos = parent
			continue
		}
		break
	}
	elems[pos] = newItem
}

func siftUp(elems []value.Value, pos int) {
	end := len(elems)
	start := pos
	newItem := elems[pos]
	child := 2*pos + 1
	for child < end {
		right := child + 1
		if right < end && !value.Less(elems[child], elems[right]) {
			child = right
		}
		elems[pos] = elems[child]
		pos = child
		child = 2*pos + 1
	}
	elems[pos] = newItem
	siftDown(elems, start, pos)
}

func heapqPush(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("heappush takes 2 arguments")
	}
	l := args[0].List
	l.Elems = append(l.Elems, args[1])
	siftDown(l.Elems, 0, len(l.Elems)-1)
	return value.None(), nil
}

func heapqPop(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("heappop takes 1 argument")
	}
	l := args[0].List
	n := len(l.Elems)
	if n == 0 {
		return value.Value{}, fmt.Errorf("heappop from empty list")
	}
	top := l.Elems[0]
	last := l.Elems[n-1]
	l.Elems = l.Elems[:n-1]
	if len(l.Elems) > 0 {
		l.Elems[0] = last
		siftUp(l.Elems, 0)
	}
	return top, nil
}

func heapqHeapify(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("heapify takes 1 argument")
	}
	elems := args[0].List.Elems
	for i := len(elems)/2 - 1; i >= 0; i-- {
		siftUp(elems, i)
	}
	return value.None(), nil
}
