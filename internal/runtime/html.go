// html backs SPEC_FULL.md's supplemented html module (escape/unescape),
// using stdlib html — escape's quote argument controls whether " and '
// are escaped too, matching CPython's html.escape(s, quote=True).
package runtime

import (
	"context"
	"fmt"
	"strings"

	stdhtml "html"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerHTML(r *Registry) {
	r.register("html", map[string]Fn{
		"escape":   htmlEscape,
		"unescape": htmlUnescape,
	})
}

func htmlEscape(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("escape takes 2 arguments")
	}
	s := args[0].Str
	s = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
	if args[1].Bool {
		s = strings.NewReplacer(`"`, "&quot;", "'", "&#x27;").Replace(s)
	}
	return value.Str(s), nil
}

func htmlUnescape(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("unescape takes 1 argument")
	}
	return value.Str(stdhtml.UnescapeString(args[0].Str)), nil
}
