// argparse backs spec.md §4.5's argparse module (ArgumentParser /
// add_argument / parse_args), grounded on github.com/spf13/pflag —
// already in go.mod as cobra's flag layer — rather than hand-rolling a
// flag parser.
package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aledsdavies/pycc/internal/value"
)

// ArgumentParserHandle wraps a pflag.FlagSet plus the dest name and
// store action each flag was registered under, since add_argument's
// first positional name (e.g. "--count") is the dialect-visible key in
// parse_args's result dict, and its action ("store"/"store_true"/
// "store_int") decides that value's type.
type ArgumentParserHandle struct {
	flags   *pflag.FlagSet
	dests   []string
	actions map[string]string
}

func registerArgparse(r *Registry) {
	r.register("argparse", map[string]Fn{
		"ArgumentParser": argparseNew,
		"add_argument":   argparseAddArgument,
		"parse_args":     argparseParseArgs,
	})
}

func argparseNew(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("ArgumentParser takes no arguments")
	}
	fs := pflag.NewFlagSet("pycc", pflag.ContinueOnError)
	fs.Usage = func() {}
	h := &ArgumentParserHandle{flags: fs, actions: make(map[string]string)}
	return value.Handle("argparse.ArgumentParser", h), nil
}

func destFromFlagName(name string) string {
	return strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "_")
}

// argparseAddArgument registers a flag under an action kind: "store_true"
// yields a bool, "store_int" yields an int, anything else ("store" or
// omitted) yields a string, per spec.md §4.5.
func argparseAddArgument(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.Value{}, fmt.Errorf("add_argument takes at least 2 arguments")
	}
	h := args[0].Handle.(*ArgumentParserHandle)
	dest := destFromFlagName(args[1].Str)
	action := "store"
	if len(args) >= 3 {
		action = args[2].Str
	}
	switch action {
	case "store_true":
		h.flags.Bool(dest, false, "")
	case "store_int":
		h.flags.Int(dest, 0, "")
	default:
		action = "store"
		h.flags.String(dest, "", "")
	}
	h.dests = append(h.dests, dest)
	h.actions[dest] = action
	return value.None(), nil
}

// argparseParseArgs parses the argv list the caller supplies (not the
// process's os.Args, since the dialect runs under a test harness that
// drives argparse with literal argument lists).
func argparseParseArgs(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("parse_args takes 2 arguments")
	}
	h := args[0].Handle.(*ArgumentParserHandle)
	argv := make([]string, args[1].List.Len())
	for i := range argv {
		v, _ := args[1].List.Get(i)
		argv[i] = v.Str
	}
	if err := h.flags.Parse(argv); err != nil {
		return value.Value{}, err
	}
	d := value.NewDict()
	for _, dest := range h.dests {
		switch h.actions[dest] {
		case "store_true":
			v, _ := h.flags.GetBool(dest)
			d.Set(value.Str(dest), value.Bool(v))
		case "store_int":
			v, _ := h.flags.GetInt(dest)
			d.Set(value.Str(dest), value.Int(int64(v)))
		default:
			v, _ := h.flags.GetString(dest)
			d.Set(value.Str(dest), value.Str(v))
		}
	}
	return value.Value{Kind: value.KDict, Dict: d}, nil
}
