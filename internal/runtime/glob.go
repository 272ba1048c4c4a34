// glob backs SPEC_FULL.md's supplemented glob module, using stdlib
// path/filepath.Glob — the same pattern dialect fnmatch.go relies on.
package runtime

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerGlob(r *Registry) {
	r.register("glob", map[string]Fn{
		"glob": globGlob,
	})
}

func globGlob(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("glob takes 1 argument")
	}
	matches, err := filepath.Glob(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	elems := make([]value.Value, len(matches))
	for i, m := range matches {
		elems[i] = value.Str(m)
	}
	return value.Value{Kind: value.KList, List: value.NewList(elems...)}, nil
}
