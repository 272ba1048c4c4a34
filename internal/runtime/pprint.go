// pprint backs spec.md §4.5's pprint module. Dict/Set iteration order
// is deterministic insertion order (internal/value.Dict already tracks
// it for codegen's sake — see DESIGN.md), so pformat's output is
// reproducible across runs, unlike CPython's dict-hash-seeded repr.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerPprint(r *Registry) {
	r.register("pprint", map[string]Fn{
		"pformat": pprintPformat,
		"pprint":  pprintPprint,
	})
}

func pprintPformat(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("pformat takes 1 argument")
	}
	return value.Str(formatValue(args[0])), nil
}

func pprintPprint(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("pprint takes 1 argument")
	}
	fmt.Println(formatValue(args[0]))
	return value.Value{Kind: value.KNone}, nil
}

func formatValue(v value.Value) string {
	switch v.Kind {
	case value.KStr:
		return fmt.Sprintf("%q", v.Str)
	case value.KBytes:
		return fmt.Sprintf("b%q", string(v.Bytes))
	case value.KBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case value.KNone:
		return "None"
	case value.KInt:
		return fmt.Sprint(v.Int)
	case value.KFloat:
		return fmt.Sprint(v.Float)
	case value.KList:
		parts := make([]string, v.List.Len())
		for i, e := range v.List.Elems {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.KTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = formatValue(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case value.KSet:
		items := v.Set.Items()
		parts := make([]string, len(items))
		for i, e := range items {
			parts[i] = formatValue(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case value.KDict:
		items := v.Dict.Items()
		parts := make([]string, len(items))
		for i, e := range items {
			parts[i] = formatValue(e.Key) + ": " + formatValue(e.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
