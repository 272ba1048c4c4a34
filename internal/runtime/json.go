// json backs spec.md §4.5's json module (dumps/loads), grounded on the
// teacher's use of github.com/segmentio/encoding/json as a drop-in,
// faster encoding/json replacement.
package runtime

import (
	"context"
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerJSON(r *Registry) {
	r.register("json", map[string]Fn{
		"dumps": jsonDumps,
		"loads": jsonLoads,
	})
}

func jsonDumps(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("dumps takes 1 argument")
	}
	b, err := json.Marshal(valueToAny(args[0]))
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(string(b)), nil
}

func jsonLoads(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("loads takes 1 argument")
	}
	var v any
	if err := json.Unmarshal([]byte(args[0].Str), &v); err != nil {
		return value.Value{}, err
	}
	return anyToValue(v), nil
}

// valueToAny lowers a Value into plain Go data json.Marshal understands.
func valueToAny(v value.Value) any {
	switch v.Kind {
	case value.KInt:
		return v.Int
	case value.KFloat:
		return v.Float
	case value.KBool:
		return v.Bool
	case value.KStr:
		return v.Str
	case value.KNone:
		return nil
	case value.KList:
		out := make([]any, v.List.Len())
		for i, e := range v.List.Elems {
			out[i] = valueToAny(e)
		}
		return out
	case value.KTuple:
		out := make([]any, len(v.Tuple))
		for i, e := range v.Tuple {
			out[i] = valueToAny(e)
		}
		return out
	case value.KDict:
		out := make(map[string]any)
		for _, e := range v.Dict.Items() {
			out[jsonKeyString(e.Key)] = valueToAny(e.Value)
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

func jsonKeyString(v value.Value) string {
	if v.Kind == value.KStr {
		return v.Str
	}
	return formatValue(v)
}

// anyToValue lifts decoded JSON data back into a Value: objects become
// Dict<str, Any> and arrays become List<Any>, matching json.loads's
// observable behavior in the demos.
func anyToValue(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.None()
	case bool:
		return value.Bool(x)
	case float64:
		if x == float64(int64(x)) {
			return value.Int(int64(x))
		}
		return value.Float(x)
	case string:
		return value.Str(x)
	case []any:
		elems := make([]value.Value, len(x))
		for i, e := range x {
			elems[i] = anyToValue(e)
		}
		return value.Value{Kind: value.KList, List: value.NewList(elems...)}
	case map[string]any:
		d := value.NewDict()
		for k, e := range x {
			d.Set(value.Str(k), anyToValue(e))
		}
		return value.Value{Kind: value.KDict, Dict: d}
	default:
		return value.None()
	}
}
