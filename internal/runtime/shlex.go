// shlex backs SPEC_FULL.md's supplemented shlex module (split), a
// hand-rolled POSIX-style tokenizer — the pack carries no shell-word
// splitting library, so this follows shlex.split's documented
// behavior (single/double quotes group words, backslash escapes)
// directly.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerShlex(r *Registry) {
	r.register("shlex", map[string]Fn{
		"split": shlexSplit,
	})
}

func shlexSplit(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("split takes 1 argument")
	}
	s := args[0].Str
	var tokens []string
	var cur []byte
	inToken := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur = append(cur, c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == '\\' && i+1 < len(s):
			i++
			cur = append(cur, s[i])
			inToken = true
		case c == ' ' || c == '\t' || c == '\n':
			if inToken {
				tokens = append(tokens, string(cur))
				cur = nil
				inToken = false
			}
		default:
			cur = append(cur, c)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, string(cur))
	}
	elems := make([]value.Value, len(tokens))
	for i, t := range tokens {
		elems[i] = value.Str(t)
	}
	return value.Value{Kind: value.KList, List: value.NewList(elems...)}, nil
}
