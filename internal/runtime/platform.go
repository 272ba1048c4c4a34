// platform backs SPEC_FULL.md's supplemented platform module
// (system/machine), using stdlib runtime.GOOS/GOARCH mapped onto
// CPython's platform.system()/machine() vocabulary.
package runtime

import (
	"context"
	"fmt"
	goruntime "runtime"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerPlatform(r *Registry) {
	r.register("platform", map[string]Fn{
		"system":  platformSystem,
		"machine": platformMachine,
	})
}

var platformSystemNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
}

var platformMachineNames = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
	"arm":   "armv7l",
}

func platformSystem(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("system takes no arguments")
	}
	if name, ok := platformSystemNames[goruntime.GOOS]; ok {
		return value.Str(name), nil
	}
	return value.Str(goruntime.GOOS), nil
}

func platformMachine(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("machine takes no arguments")
	}
	if name, ok := platformMachineNames[goruntime.GOARCH]; ok {
		return value.Str(name), nil
	}
	return value.Str(goruntime.GOARCH), nil
}
