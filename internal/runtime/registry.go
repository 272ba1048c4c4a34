// Package runtime implements the ~50 Python-stdlib-equivalent shims
// spec.md §4.5 names, one source file per source-dialect module,
// dispatched by name from internal/interp's ModuleCall evaluation.
// Each function operates directly on internal/value.Value, mirroring
// the "direct static call into the runtime library" codegen contract
// (spec.md §4.4) a native backend would also target.
package runtime

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

// Fn is one runtime shim: it receives already-evaluated arguments and
// returns a value or a plain error (interp wraps any error returned
// here into the single landing-pad error type).
type Fn func(ctx context.Context, args []value.Value) (value.Value, error)

// Registry is the set of every module+function interp can call,
// populated with every entry internal/sema.NewModuleRegistry()
// describes — the two registries are built from the same spec.md §4.5
// contract and are expected to name the same modules/functions.
type Registry struct {
	modules map[string]map[string]Fn
}

func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string]map[string]Fn)}
	registerIO(r)
	registerPath(r)
	registerOS(r)
	registerPprint(r)
	registerReprlib(r)
	registerJSON(r)
	registerRe(r)
	registerFnmatch(r)
	registerHashlib(r)
	registerHmac(r)
	registerBase64(r)
	registerBinascii(r)
	registerBisect(r)
	registerHeapq(r)
	registerItertools(r)
	registerCollections(r)
	registerStruct(r)
	registerDatetime(r)
	registerTime(r)
	registerRandom(r)
	registerSecrets(r)
	registerUUID(r)
	registerStat(r)
	registerTextwrap(r)
	registerSys(r)
	registerFuture(r)
	registerABC(r)
	registerArgparse(r)
	registerArray(r)
	registerCalendar(r)
	registerColorsys(r)
	registerCopy(r)
	registerErrno(r)
	registerGetpass(r)
	registerGlob(r)
	registerHTML(r)
	registerKeyword(r)
	registerPlatform(r)
	registerShlex(r)
	registerShutil(r)
	registerStatistics(r)
	registerTempfile(r)
	registerTypes(r)
	registerUnicodedata(r)
	return r
}

func (r *Registry) register(module string, fns map[string]Fn) {
	r.modules[module] = fns
}

// Call dispatches module.name(args). Sema has already validated that
// this module+name pair exists for any program that reaches interp, so
// the error paths here only fire on a sema/runtime registry drift bug.
func (r *Registry) Call(ctx context.Context, module, name string, args []value.Value) (value.Value, error) {
	fns, ok := r.modules[module]
	if !ok {
		return value.Value{}, fmt.Errorf("unknown runtime module %q", module)
	}
	fn, ok := fns[name]
	if !ok {
		return value.Value{}, fmt.Errorf("unknown function %q in runtime module %q", name, module)
	}
	return fn(ctx, args)
}
