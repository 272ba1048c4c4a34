// textwrap backs spec.md §4.5's textwrap module (fill), a plain
// greedy word-wrap over strings.Fields — no pack library does
// paragraph reflow.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerTextwrap(r *Registry) {
	r.register("textwrap", map[string]Fn{
		"fill": textwrapFill,
	})
}

func textwrapFill(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("fill takes 2 arguments")
	}
	width := int(args[1].Int)
	words := strings.Fields(args[0].Str)
	var lines []string
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() == 0 {
			cur.WriteString(w)
			continue
		}
		if cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			continue
		}
		cur.WriteByte(' ')
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return value.Str(strings.Join(lines, "\n")), nil
}
