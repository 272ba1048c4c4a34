// future backs the optional __future__ module exercised by
// e2e_future.py. Not spec-mandated (spec.md names sys but never
// __future__); restored as an original_source supplement since the
// demo exists and the shim is trivial.
package runtime

import (
	"context"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerFuture(r *Registry) {
	r.register("__future__", map[string]Fn{
		"annotations":      futureFlag(true),
		"unicode_literals": futureFlag(false),
	})
}

// futureFlag reports whether this dialect already behaves as though
// the named future feature were enabled. Every feature this subset
// doesn't implement reports false.
func futureFlag(enabled bool) Fn {
	return func(_ context.Context, _ []value.Value) (value.Value, error) {
		return value.Bool(enabled), nil
	}
}
