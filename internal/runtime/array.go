// array backs SPEC_FULL.md's supplemented array module (a typed
// numeric list), represented as a plain value.List tagged with its
// type code — the dialect never needs array's packed-memory layout,
// only its List-like API.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

// ArrayHandle carries the type code array.array was constructed with
// (e.g. "i", "d") alongside the backing list.
type ArrayHandle struct {
	TypeCode string
	List     *value.List
}

func registerArray(r *Registry) {
	r.register("array", map[string]Fn{
		"array":  arrayNew,
		"append": arrayAppend,
	})
}

func arrayNew(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("array takes 2 arguments")
	}
	elems := append([]value.Value(nil), args[1].List.Elems...)
	return value.Handle("array.array", &ArrayHandle{TypeCode: args[0].Str, List: value.NewList(elems...)}), nil
}

func arrayAppend(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("append takes 2 arguments")
	}
	h := args[0].Handle.(*ArrayHandle)
	h.List.Append(args[1])
	return value.None(), nil
}
