// itertools backs spec.md §4.5's itertools module (combinations and
// permutations over a fixed-size r), grounded on the standard
// recursive-index-vector generation technique — no pack library covers
// combinatorics.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerItertools(r *Registry) {
	r.register("itertools", map[string]Fn{
		"combinations": itertoolsCombinations,
		"permutations": itertoolsPermutations,
	})
}

func itertoolsCombinations(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("combinations takes 2 arguments")
	}
	elems := args[0].List.Elems
	r := int(args[1].Int)
	out := value.NewList()
	if r < 0 || r > len(elems) {
		return value.Value{Kind: value.KList, List: out}, nil
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]value.Value, r)
		for i, j := range idx {
			combo[i] = elems[j]
		}
		out.Append(value.Value{Kind: value.KList, List: value.NewList(combo...)})

		i := r - 1
		for i >= 0 && idx[i] == i+len(elems)-r {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return value.Value{Kind: value.KList, List: out}, nil
}

func itertoolsPermutations(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("permutations takes 2 arguments")
	}
	elems := args[0].List.Elems
	r := int(args[1].Int)
	out := value.NewList()
	n := len(elems)
	if r < 0 || r > n {
		return value.Value{Kind: value.KList, List: out}, nil
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	cycles := make([]int, r)
	for i := range cycles {
		cycles[i] = n - i
	}

	emit := func() {
		perm := make([]value.Value, r)
		for i := 0; i < r; i++ {
			perm[i] = elems[indices[i]]
		}
		out.Append(value.Value{Kind: value.KList, List: value.NewList(perm...)})
	}
	if r == 0 {
		emit()
		return value.Value{Kind: value.KList, List: out}, nil
	}
	emit()
	for {
		i := r - 1
		advanced := false
		for ; i >= 0; i-- {
			cycles[i]--
			if cycles[i] == 0 {
				first := indices[i]
				copy(indices[i:], indices[i+1:])
				indices[n-1] = first
				cycles[i] = n - i
				continue
			}
			j := n - cycles[i]
			indices[i], indices[j] = indices[j], indices[i]
			emit()
			advanced = true
			break
		}
		if !advanced {
			break
		}
	}
	return value.Value{Kind: value.KList, List: out}, nil
}
