// sys backs spec.md §1/§5's sys module (platform/version/maxsize/exit).
// sys.exit is not a plain value-returning shim like the rest of this
// package: it reports termination via the sentinel SysExit error type
// instead of a *RuntimeError, so internal/interp can tell "the program
// asked to exit" apart from an ordinary runtime failure and apply
// spec.md §5's dual discipline (recoverable mark-and-return under a
// nested call, `_exit(n)` at the top level of main).
package runtime

import (
	"context"
	"fmt"
	"math"
	goruntime "runtime"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerSys(r *Registry) {
	r.register("sys", map[string]Fn{
		"platform": sysPlatform,
		"version":  sysVersion,
		"maxsize":  sysMaxsize,
		"exit":     sysExit,
	})
}

// SysExit is returned by sysExit instead of a plain error so interp can
// distinguish a termination request from a runtime failure.
type SysExit struct {
	Code int64
}

func (e *SysExit) Error() string { return fmt.Sprintf("sys.exit(%d)", e.Code) }

var sysPlatformNames = map[string]string{
	"linux":   "linux",
	"darwin":  "darwin",
	"windows": "win32",
}

func sysPlatform(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("platform takes no arguments")
	}
	if name, ok := sysPlatformNames[goruntime.GOOS]; ok {
		return value.Str(name), nil
	}
	return value.Str(goruntime.GOOS), nil
}

func sysVersion(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("version takes no arguments")
	}
	return value.Str("pycc 1.0 (" + goruntime.Version() + ")"), nil
}

func sysMaxsize(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("maxsize takes no arguments")
	}
	return value.Int(math.MaxInt64), nil
}

func sysExit(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("exit takes 1 argument")
	}
	return value.Value{}, &SysExit{Code: args[0].Int}
}
