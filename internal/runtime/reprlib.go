// reprlib backs spec.md §4.5/§4.4's reprlib module: identical to
// pprint.pformat except the rendered text is truncated to 60 characters
// total including quotes (spec.md §4.4).
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

const reprMaxLen = 60

func registerReprlib(r *Registry) {
	r.register("reprlib", map[string]Fn{
		"repr": reprlibRepr,
	})
}

func reprlibRepr(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("repr takes 1 argument")
	}
	s := formatValue(args[0])
	if len(s) > reprMaxLen {
		s = s[:reprMaxLen-3] + "..."
	}
	return value.Str(s), nil
}
