// keyword backs SPEC_FULL.md's supplemented keyword module
// (iskeyword), a static set check against the dialect's own reserved
// words — grounded on internal/lexer's keyword table.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

var dialectKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true, "except": true,
	"finally": true, "for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true, "nonlocal": true,
	"not": true, "or": true, "pass": true, "raise": true, "return": true,
	"try": true, "while": true, "with": true, "yield": true,
}

func registerKeyword(r *Registry) {
	r.register("keyword", map[string]Fn{
		"iskeyword": keywordIskeyword,
	})
}

func keywordIskeyword(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("iskeyword takes 1 argument")
	}
	return value.Bool(dialectKeywords[args[0].Str]), nil
}
