// os mirrors spec.md §4.5's os module: directory creation/removal and
// the home directory lookup pathlib.home also exposes.
package runtime

import (
	"context"
	"fmt"
	"os"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerOS(r *Registry) {
	r.register("os", map[string]Fn{
		"mkdir":  osMkdir,
		"remove": osRemove,
		"home":   pathHome,
	})
}

func osMkdir(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("mkdir takes 1 argument")
	}
	return value.Bool(os.Mkdir(args[0].Str, 0o755) == nil), nil
}

func osRemove(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("remove takes 1 argument")
	}
	return value.Bool(os.Remove(args[0].Str) == nil), nil
}
