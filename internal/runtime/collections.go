// collections backs spec.md §4.5's collections module (Counter,
// OrderedDict, defaultdict), wrapping value.Dict as the opaque handle
// payload in each case since the interpreter already guarantees Dict's
// insertion order — no separate ordered-map library is needed.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

// DefaultdictHandle pairs a backing Dict with the zero-value factory
// name invoked on first access to a missing key.
type DefaultdictHandle struct {
	Dict    *value.Dict
	Factory string
}

func registerCollections(r *Registry) {
	r.register("collections", map[string]Fn{
		"Counter":         collectionsCounter,
		"OrderedDict":     collectionsOrderedDict,
		"defaultdict":     collectionsDefaultdict,
		"defaultdict_get": collectionsDefaultdictGet,
		"defaultdict_set": collectionsDefaultdictSet,
	})
}

func collectionsCounter(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("Counter takes 1 argument")
	}
	d := value.NewDict()
	for _, e := range args[0].List.Elems {
		n, _ := d.Get(e)
		if n.Kind == value.KInt {
			d.Set(e, value.Int(n.Int+1))
		} else {
			d.Set(e, value.Int(1))
		}
	}
	return value.Handle("collections.Counter", d), nil
}

func collectionsOrderedDict(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("OrderedDict takes no arguments")
	}
	return value.Handle("collections.OrderedDict", value.NewDict()), nil
}

func defaultdictZero(factory string) value.Value {
	switch factory {
	case "int":
		return value.Int(0)
	case "float":
		return value.Float(0)
	case "str":
		return value.Str("")
	case "list":
		return value.Value{Kind: value.KList, List: value.NewList()}
	case "set":
		return value.Value{Kind: value.KSet, Set: value.NewSet()}
	case "dict":
		return value.Value{Kind: value.KDict, Dict: value.NewDict()}
	default:
		return value.None()
	}
}

func collectionsDefaultdict(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("defaultdict takes 1 argument")
	}
	return value.Handle("collections.defaultdict", &DefaultdictHandle{
		Dict:    value.NewDict(),
		Factory: args[0].Str,
	}), nil
}

func collectionsDefaultdictGet(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("defaultdict_get takes 2 arguments")
	}
	h := args[0].Handle.(*DefaultdictHandle)
	if v, ok := h.Dict.Get(args[1]); ok {
		return v, nil
	}
	zero := defaultdictZero(h.Factory)
	h.Dict.Set(args[1], zero)
	return zero, nil
}

func collectionsDefaultdictSet(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, fmt.Errorf("defaultdict_set takes 3 arguments")
	}
	h := args[0].Handle.(*DefaultdictHandle)
	h.Dict.Set(args[1], args[2])
	return value.None(), nil
}
