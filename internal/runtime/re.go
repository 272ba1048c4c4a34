// re backs spec.md §4.5's re module (search/match/sub), using stdlib
// regexp — the pack carries no alternative regex engine, and regexp's
// RE2 syntax covers every pattern the demos use.
package runtime

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aledsdavies/pycc/internal/value"
)

// MatchHandle is the opaque re.Match value search/match return,
// wrapped via value.Handle("re.Match", ...) per spec.md's KOpaqueHandle
// contract.
type MatchHandle struct {
	Text   string
	Groups []string
}

func registerRe(r *Registry) {
	r.register("re", map[string]Fn{
		"search": reSearch,
		"match":  reMatch,
		"sub":    reSub,
	})
}

func reSearch(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("search takes 2 arguments")
	}
	re, err := regexp.Compile(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	groups := re.FindStringSubmatch(args[1].Str)
	if groups == nil {
		return value.None(), nil
	}
	return value.Handle("re.Match", &MatchHandle{Text: groups[0], Groups: groups}), nil
}

func reMatch(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("match takes 2 arguments")
	}
	re, err := regexp.Compile("^(?:" + args[0].Str + ")")
	if err != nil {
		return value.Value{}, err
	}
	groups := re.FindStringSubmatch(args[1].Str)
	if groups == nil {
		return value.None(), nil
	}
	return value.Handle("re.Match", &MatchHandle{Text: groups[0], Groups: groups}), nil
}

func reSub(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, fmt.Errorf("sub takes 3 arguments")
	}
	re, err := regexp.Compile(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(re.ReplaceAllString(args[2].Str, args[1].Str)), nil
}
