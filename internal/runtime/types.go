// types backs SPEC_FULL.md's supplemented types module (new_class),
// producing a SimpleNamespace-style opaque handle backed by a plain
// value.Dict — the dialect has no user-defined classes, so this is the
// closest stand-in for arbitrary-attribute containers original_source/
// demos construct via types.new_class.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

// SimpleNamespaceHandle stores named attributes in a Dict<str, Any>.
type SimpleNamespaceHandle struct {
	Name  string
	Attrs *value.Dict
}

func registerTypes(r *Registry) {
	r.register("types", map[string]Fn{
		"new_class": typesNewClass,
	})
}

func typesNewClass(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("new_class takes 1 argument")
	}
	return value.Handle("types.SimpleNamespace", &SimpleNamespaceHandle{
		Name:  args[0].Str,
		Attrs: value.NewDict(),
	}), nil
}
