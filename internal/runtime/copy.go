// copy backs SPEC_FULL.md's supplemented copy module (copy/deepcopy),
// hand-rolled since value.Value's containers are plain Go pointers with
// no library abstraction to reuse.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerCopy(r *Registry) {
	r.register("copy", map[string]Fn{
		"copy":     copyShallow,
		"deepcopy": copyDeep,
	})
}

func copyShallow(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("copy takes 1 argument")
	}
	v := args[0]
	switch v.Kind {
	case value.KList:
		return value.Value{Kind: value.KList, List: value.NewList(v.List.Elems...)}, nil
	case value.KDict:
		d := value.NewDict()
		for _, e := range v.Dict.Items() {
			d.Set(e.Key, e.Value)
		}
		return value.Value{Kind: value.KDict, Dict: d}, nil
	case value.KSet:
		s := value.NewSet()
		for _, e := range v.Set.Items() {
			s.Add(e)
		}
		return value.Value{Kind: value.KSet, Set: s}, nil
	default:
		return v, nil
	}
}

func deepCopyValue(v value.Value) value.Value {
	switch v.Kind {
	case value.KList:
		elems := make([]value.Value, v.List.Len())
		for i, e := range v.List.Elems {
			elems[i] = deepCopyValue(e)
		}
		return value.Value{Kind: value.KList, List: value.NewList(elems...)}
	case value.KDict:
		d := value.NewDict()
		for _, e := range v.Dict.Items() {
			d.Set(deepCopyValue(e.Key), deepCopyValue(e.Value))
		}
		return value.Value{Kind: value.KDict, Dict: d}
	case value.KSet:
		s := value.NewSet()
		for _, e := range v.Set.Items() {
			s.Add(deepCopyValue(e))
		}
		return value.Value{Kind: value.KSet, Set: s}
	case value.KTuple:
		elems := make([]value.Value, len(v.Tuple))
		for i, e := range v.Tuple {
			elems[i] = deepCopyValue(e)
		}
		return value.Tuple(elems)
	default:
		return v
	}
}

func copyDeep(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("deepcopy takes 1 argument")
	}
	return deepCopyValue(args[0]), nil
}
