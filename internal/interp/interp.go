// Package interp tree-walks internal/ir directly against
// internal/runtime, since no native backend exists for this subset (see
// DESIGN.md's Open Questions). Grounded on the teacher's
// runtime/executor.Execute: a single entry point that walks a step list
// sequentially, fails fast on the first error, and threads a
// context.Context through for cancellation (here, `time.sleep` is the
// only blocking primitive, mirroring the teacher's executor honoring
// ctx during process execution).
package interp

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/ir"
	"github.com/aledsdavies/pycc/internal/profiling"
	"github.com/aledsdavies/pycc/internal/runtime"
	"github.com/aledsdavies/pycc/internal/value"
)

// Interp holds all state needed to execute one compiled program: its
// functions (for UserCall), a registry of runtime module
// implementations (for ModuleCall), and output/profiling hooks.
// Variable scopes are not stored here: Run and each user call create
// their own and pass them down explicitly.
type Interp struct {
	funcs       map[string]*ir.Func
	modules     *runtime.Registry
	Stdout      func(string)
	Profiler    *profiling.Collector // nil unless the driver asked for --profile-out
	callDepth   int                  // 0 at Run's root statements, >0 inside any callUser frame
	LastSysExit *runtime.SysExit     // last sys.exit recorded while callDepth > 0, for test introspection
}

// New builds an interpreter for prog, wiring every module name codegen
// could have emitted a ModuleCall against.
func New(prog *ir.Program) *Interp {
	it := &Interp{funcs: make(map[string]*ir.Func, len(prog.Functions)), modules: runtime.NewRegistry()}
	for _, fn := range prog.Functions {
		it.funcs[fn.Name] = fn
	}
	it.Stdout = func(s string) { fmt.Print(s) }
	return it
}

// RuntimeError is the single runtime error type spec.md §4.4's `try`
// landing pad catches (every module call that can fail returns one).
type RuntimeError struct {
	Module, Func, Message string
}

func (e *RuntimeError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s.%s: %s", e.Module, e.Func, e.Message)
	}
	return e.Message
}

// scope is one nested name->value frame. Each function call starts a
// fresh frame with no parent, so a function body sees only its
// parameters and its own locals, not top-level variables of main;
// block statements do not introduce a new scope.
type scope struct {
	vars   map[string]value.Value
	parent *scope
}

func newScope(parent *scope) *scope { return &scope{vars: map[string]value.Value{}, parent: parent} }

func (s *scope) get(name string) (value.Value, bool) {
	for c := s; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

func (s *scope) set(name string, v value.Value) {
	for c := s; c != nil; c = c.parent {
		if _, ok := c.vars[name]; ok {
			c.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}

// control signals how a statement block wants execution to continue;
// Go has no exceptions, so break/continue/return are plumbed back up
// through ordinary return values instead of panic/recover.
type control int

const (
	ctrlNone control = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// Run executes prog's top-level statements (`main`), honoring ctx
// cancellation in any blocking runtime call, and returns the process
// exit code main() would produce.
func Run(ctx context.Context, prog *ir.Program) (int, error) {
	return New(prog).Run(ctx, prog)
}

// Run is the method form, for callers (internal/driver) that need to
// set Stdout/Profiler on the Interp before executing.
func (it *Interp) Run(ctx context.Context, prog *ir.Program) (int, error) {
	root := newScope(nil)
	_, ctrl, ret, err := it.execStmts(ctx, prog.Main.Body, root)
	if err != nil {
		// sys.exit(n) at the top level of main is `_exit(n)`, per
		// spec.md §5: the process's requested exit code, not a failure.
		if se, ok := err.(*runtime.SysExit); ok {
			return int(se.Code), nil
		}
		return 1, err
	}
	if ctrl == ctrlReturn {
		if ret.Kind == value.KInt {
			return int(ret.Int), nil
		}
	}
	return 0, nil
}

func (it *Interp) execStmts(ctx context.Context, stmts []ir.Stmt, sc *scope) (value.Value, control, value.Value, error) {
	for _, s := range stmts {
		v, ctrl, ret, err := it.execStmt(ctx, s, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		if ctrl != ctrlNone {
			return v, ctrl, ret, nil
		}
	}
	return value.Value{}, ctrlNone, value.Value{}, nil
}

func (it *Interp) execStmt(ctx context.Context, s ir.Stmt, sc *scope) (value.Value, control, value.Value, error) {
	select {
	case <-ctx.Done():
		return value.Value{}, ctrlNone, value.Value{}, ctx.Err()
	default:
	}
	switch st := s.(type) {
	case *ir.Assign:
		v, err := it.eval(ctx, st.Value, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		return value.Value{}, ctrlNone, value.Value{}, it.assign(st.Target, v, sc)
	case *ir.AugAssign:
		return value.Value{}, ctrlNone, value.Value{}, it.execAugAssign(ctx, st, sc)
	case *ir.If:
		return it.execIf(ctx, st, sc)
	case *ir.While:
		return it.execWhile(ctx, st, sc)
	case *ir.For:
		return it.execFor(ctx, st, sc)
	case *ir.Try:
		return it.execTry(ctx, st, sc)
	case *ir.Return:
		if st.Value == nil {
			return value.Value{}, ctrlReturn, value.None(), nil
		}
		v, err := it.eval(ctx, st.Value, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		return value.Value{}, ctrlReturn, v, nil
	case *ir.ExprStmt:
		_, err := it.eval(ctx, st.X, sc)
		return value.Value{}, ctrlNone, value.Value{}, err
	case *ir.Pass:
		return value.Value{}, ctrlNone, value.Value{}, nil
	case *ir.Break:
		return value.Value{}, ctrlBreak, value.Value{}, nil
	case *ir.Continue:
		return value.Value{}, ctrlContinue, value.Value{}, nil
	case *ir.Block:
		return it.execStmts(ctx, st.Body, sc)
	default:
		return value.Value{}, ctrlNone, value.Value{}, fmt.Errorf("interp: unhandled statement %T", s)
	}
}

func (it *Interp) execAugAssign(ctx context.Context, st *ir.AugAssign, sc *scope) error {
	cur, err := it.eval(ctx, st.Target, sc)
	if err != nil {
		return err
	}
	rhs, err := it.eval(ctx, st.Value, sc)
	if err != nil {
		return err
	}
	combined, err := applyBinOp(augToBin(st.Op), cur, rhs)
	if err != nil {
		return err
	}
	return it.assign(st.Target, combined, sc)
}

func (it *Interp) execIf(ctx context.Context, st *ir.If, sc *scope) (value.Value, control, value.Value, error) {
	cond, err := it.eval(ctx, st.Cond, sc)
	if err != nil {
		return value.Value{}, ctrlNone, value.Value{}, err
	}
	if value.Truthy(cond) {
		return it.execStmts(ctx, st.Body, sc)
	}
	for _, e := range st.Elifs {
		ec, err := it.eval(ctx, e.Cond, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		if value.Truthy(ec) {
			return it.execStmts(ctx, e.Body, sc)
		}
	}
	return it.execStmts(ctx, st.Else, sc)
}

func (it *Interp) execWhile(ctx context.Context, st *ir.While, sc *scope) (value.Value, control, value.Value, error) {
	for {
		select {
		case <-ctx.Done():
			return value.Value{}, ctrlNone, value.Value{}, ctx.Err()
		default:
		}
		cond, err := it.eval(ctx, st.Cond, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		if !value.Truthy(cond) {
			return value.Value{}, ctrlNone, value.Value{}, nil
		}
		v, ctrl, ret, err := it.execStmts(ctx, st.Body, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		switch ctrl {
		case ctrlBreak:
			return value.Value{}, ctrlNone, value.Value{}, nil
		case ctrlReturn:
			return v, ctrl, ret, nil
		}
	}
}

func (it *Interp) execFor(ctx context.Context, st *ir.For, sc *scope) (value.Value, control, value.Value, error) {
	iter, err := it.eval(ctx, st.Iter, sc)
	if err != nil {
		return value.Value{}, ctrlNone, value.Value{}, err
	}
	elems, err := iterate(iter)
	if err != nil {
		return value.Value{}, ctrlNone, value.Value{}, err
	}
	for _, elem := range elems {
		select {
		case <-ctx.Done():
			return value.Value{}, ctrlNone, value.Value{}, ctx.Err()
		default:
		}
		sc.set(st.TargetName, elem)
		v, ctrl, ret, err := it.execStmts(ctx, st.Body, sc)
		if err != nil {
			return value.Value{}, ctrlNone, value.Value{}, err
		}
		switch ctrl {
		case ctrlBreak:
			return value.Value{}, ctrlNone, value.Value{}, nil
		case ctrlReturn:
			return v, ctrl, ret, nil
		}
	}
	return value.Value{}, ctrlNone, value.Value{}, nil
}

// execTry installs the single landing pad spec.md §4.4 describes:
// Body runs, any *RuntimeError lands in Except (bound to ExceptAs),
// Else runs only if Body raised nothing, Finally always runs.
func (it *Interp) execTry(ctx context.Context, st *ir.Try, sc *scope) (value.Value, control, value.Value, error) {
	v, ctrl, ret, err := it.execStmts(ctx, st.Body, sc)
	var runErr *RuntimeError
	if err != nil {
		if re, ok := err.(*RuntimeError); ok {
			runErr = re
		} else {
			if len(st.Finally) > 0 {
				it.execStmts(ctx, st.Finally, sc)
			}
			return value.Value{}, ctrlNone, value.Value{}, err
		}
	}
	if runErr != nil {
		if !st.HasExcept {
			if len(st.Finally) > 0 {
				it.execStmts(ctx, st.Finally, sc)
			}
			return value.Value{}, ctrlNone, value.Value{}, runErr
		}
		if st.ExceptAs != "" {
			sc.set(st.ExceptAs, value.Str(runErr.Error()))
		}
		v, ctrl, ret, err = it.execStmts(ctx, st.Except, sc)
		if err != nil {
			if len(st.Finally) > 0 {
				it.execStmts(ctx, st.Finally, sc)
			}
			return value.Value{}, ctrlNone, value.Value{}, err
		}
	} else if len(st.Else) > 0 {
		v, ctrl, ret, err = it.execStmts(ctx, st.Else, sc)
		if err != nil {
			if len(st.Finally) > 0 {
				it.execStmts(ctx, st.Finally, sc)
			}
			return value.Value{}, ctrlNone, value.Value{}, err
		}
	}
	if len(st.Finally) > 0 {
		_, fctrl, fret, ferr := it.execStmts(ctx, st.Finally, sc)
		if ferr != nil {
			return value.Value{}, ctrlNone, value.Value{}, ferr
		}
		if fctrl != ctrlNone {
			return fret, fctrl, fret, nil
		}
	}
	return v, ctrl, ret, nil
}

func (it *Interp) assign(target ir.Expr, v value.Value, sc *scope) error {
	switch t := target.(type) {
	case *ir.Name:
		sc.set(t.Ident, v)
		return nil
	case *ir.Subscript:
		x, err := it.eval(context.Background(), t.X, sc)
		if err != nil {
			return err
		}
		idx, err := it.eval(context.Background(), t.Index, sc)
		if err != nil {
			return err
		}
		switch x.Kind {
		case value.KList:
			i := int(idx.Int)
			if i < 0 {
				i += x.List.Len()
			}
			if !x.List.Set(i, v) {
				return &RuntimeError{Message: "list assignment index out of range"}
			}
			return nil
		case value.KDict:
			x.Dict.Set(idx, v)
			return nil
		default:
			return &RuntimeError{Message: "unsupported subscript assignment target"}
		}
	default:
		return fmt.Errorf("interp: unsupported assignment target %T", target)
	}
}

func iterate(v value.Value) ([]value.Value, error) {
	switch v.Kind {
	case value.KList:
		return append([]value.Value(nil), v.List.Elems...), nil
	case value.KTuple:
		return append([]value.Value(nil), v.Tuple...), nil
	case value.KSet:
		return v.Set.Items(), nil
	case value.KDict:
		items := v.Dict.Items()
		out := make([]value.Value, len(items))
		for i, e := range items {
			out[i] = e.Key
		}
		return out, nil
	case value.KStr:
		runes := []rune(v.Str)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.Str(string(r))
		}
		return out, nil
	default:
		return nil, &RuntimeError{Message: "value is not iterable"}
	}
}
