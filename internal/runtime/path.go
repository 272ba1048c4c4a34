// path backs os.path, posixpath, and pathlib — spec.md §4.5 gives them
// the same join/dirname/basename/splitext surface, so one
// implementation serves all three registered module paths.
package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerPath(r *Registry) {
	fns := map[string]Fn{
		"join":     pathJoin,
		"dirname":  pathDirname,
		"basename": pathBasename,
		"splitext": pathSplitext,
		"abspath":  pathAbspath,
		"suffix":   pathSuffix,
	}
	r.register("os.path", fns)
	r.register("posixpath", fns)
	r.register("pathlib", map[string]Fn{
		"join":    pathJoin,
		"suffix":  pathSuffix,
		"home":    pathHome,
		"abspath": pathAbspath,
	})
}

func pathJoin(_ context.Context, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Str
	}
	return value.Str(strings.Join(parts, string(os.PathSeparator))), nil
}

func pathDirname(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("dirname takes 1 argument")
	}
	return value.Str(filepath.Dir(args[0].Str)), nil
}

func pathBasename(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("basename takes 1 argument")
	}
	return value.Str(filepath.Base(args[0].Str)), nil
}

func pathSplitext(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("splitext takes 1 argument")
	}
	ext := filepath.Ext(args[0].Str)
	root := strings.TrimSuffix(args[0].Str, ext)
	return value.Tuple([]value.Value{value.Str(root), value.Str(ext)}), nil
}

func pathAbspath(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("abspath takes 1 argument")
	}
	abs, err := filepath.Abs(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(abs), nil
}

func pathSuffix(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("suffix takes 1 argument")
	}
	return value.Str(filepath.Ext(args[0].Str)), nil
}

func pathHome(_ context.Context, _ []value.Value) (value.Value, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(home), nil
}
