// fnmatch backs spec.md §4.5's fnmatch module (shell-glob-style string
// matching), using stdlib path/filepath's glob matcher since its
// pattern syntax (*, ?, [set]) matches fnmatch.fnmatch's.
package runtime

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerFnmatch(r *Registry) {
	r.register("fnmatch", map[string]Fn{
		"fnmatch": fnmatchFnmatch,
	})
}

func fnmatchFnmatch(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("fnmatch takes 2 arguments")
	}
	ok, err := filepath.Match(args[1].Str, args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(ok), nil
}
