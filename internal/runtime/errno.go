// errno backs SPEC_FULL.md's supplemented errno module as plain
// integer constants — these aren't functions, so sema's registry
// resolves them through the zero-arg ModuleCall path (see
// internal/codegen's Attribute-lowering special case).
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerErrno(r *Registry) {
	r.register("errno", map[string]Fn{
		"EEXIST": errnoConst(17),
		"ENOENT": errnoConst(2),
	})
}

func errnoConst(n int64) Fn {
	return func(_ context.Context, args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return value.Value{}, fmt.Errorf("errno constant takes no arguments")
		}
		return value.Int(n), nil
	}
}
