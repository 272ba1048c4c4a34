// _abc backs spec.md §4.5's _abc module (virtual subclass
// registration bookkeeping for the dialect's abstract-base-class
// support), a plain in-process registry — CPython's _abc is itself
// just bookkeeping over a cache generation counter, so there is no
// third-party equivalent to reach for.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

type abcState struct {
	registered map[string]map[string]bool
	generation int64
}

var globalABC = &abcState{registered: make(map[string]map[string]bool)}

func registerABC(r *Registry) {
	r.register("_abc", map[string]Fn{
		"register":         abcRegister,
		"invalidate_cache": abcInvalidateCache,
		"reset":            abcReset,
	})
}

func abcRegister(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("register takes 2 arguments")
	}
	base, sub := args[0].Str, args[1].Str
	if globalABC.registered[base] == nil {
		globalABC.registered[base] = make(map[string]bool)
	}
	already := globalABC.registered[base][sub]
	globalABC.registered[base][sub] = true
	globalABC.generation++
	return value.Bool(!already), nil
}

func abcInvalidateCache(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("invalidate_cache takes no arguments")
	}
	globalABC.generation++
	return value.Int(globalABC.generation), nil
}

func abcReset(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("reset takes no arguments")
	}
	globalABC.registered = make(map[string]map[string]bool)
	globalABC.generation = 0
	return value.None(), nil
}
