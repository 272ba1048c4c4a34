// tempfile backs SPEC_FULL.md's supplemented tempfile module
// (mkdtemp), over stdlib os.MkdirTemp.
package runtime

import (
	"context"
	"fmt"
	"os"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerTempfile(r *Registry) {
	r.register("tempfile", map[string]Fn{
		"mkdtemp": tempfileMkdtemp,
	})
}

func tempfileMkdtemp(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("mkdtemp takes no arguments")
	}
	dir, err := os.MkdirTemp("", "pycc-")
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(dir), nil
}
