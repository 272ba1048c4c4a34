// Package sema implements the three-pass semantic analyzer described in
// spec.md §4.3: collect top-level defs/imports, resolve names/imports
// against the module registry, then infer and check types bottom-up.
// Grounded on the teacher's runtime/planner.Resolver — a sequential,
// scope-stack-based walk that accumulates every diagnostic it can before
// failing, rather than stopping at the first problem.
package sema

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/diag"
)

// Result is the annotated output of a successful (or partially-failed)
// analysis.
type Result struct {
	Module  *ast.Module
	Diags   diag.Bag
	Imports map[string]string // local alias -> module path
}

// scopeStack is a stack of name->Type maps, grounded on the teacher's
// runtime/planner.ScopeStack (push/pop/define/lookup over a slice of
// maps rather than a linked list of scopes).
type scopeStack struct {
	scopes []map[string]ast.Type
}

func newScopeStack() *scopeStack {
	return &scopeStack{scopes: []map[string]ast.Type{make(map[string]ast.Type)}}
}

func (s *scopeStack) push() { s.scopes = append(s.scopes, make(map[string]ast.Type)) }

func (s *scopeStack) pop() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *scopeStack) define(name string, t ast.Type) {
	s.scopes[len(s.scopes)-1][name] = t
}

func (s *scopeStack) lookup(name string) (ast.Type, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i][name]; ok {
			return t, true
		}
	}
	return ast.Type{}, false
}

// allNames collects every defined name across all scopes, for "did you
// mean" suggestions.
func (s *scopeStack) allNames() []string {
	var names []string
	for _, scope := range s.scopes {
		for n := range scope {
			names = append(names, n)
		}
	}
	return names
}

type checker struct {
	registry ModuleRegistry
	diags    diag.Bag
	scopes   *scopeStack
	imports  map[string]string // local alias -> module path
	funcs    map[string]*ast.FunctionDef
	funcSigs map[string]ast.Signature
	inFunc   *ast.FunctionDef
	inLoop   int
}

// Analyze runs all three passes over mod and returns the annotated
// result. Analysis never panics on a malformed subset construct; it
// records a SemaError and keeps going so the caller sees every problem
// in one run, per spec.md §4.6 ("the compiler reports the first error
// and halts that file" governs compilation, not diagnostic collection).
func Analyze(mod *ast.Module, registry ModuleRegistry) *Result {
	c := &checker{
		registry: registry,
		scopes:   newScopeStack(),
		imports:  make(map[string]string),
		funcs:    make(map[string]*ast.FunctionDef),
		funcSigs: make(map[string]ast.Signature),
	}

	// Pass 1: collect defs and imports. Imports may appear nested inside
	// a function body (e2e_sys.py does `import sys, io` inside main()),
	// so collection walks every block a statement can appear in, not
	// just the module top level.
	c.collectBlock(mod.Body)

	// Pass 2+3: resolve names/imports and infer/check types, walked
	// together since the subset has no forward value references across
	// statements (only function defs are hoisted, handled in pass 1).
	for _, stmt := range mod.Body {
		c.checkStmt(stmt)
	}

	return &Result{Module: mod, Diags: c.diags, Imports: c.imports}
}

func (c *checker) errorf(loc diag.Location, code diag.Code, format string, args ...any) {
	c.diags.Add(diag.New(diag.SeverityError, code, loc, format, args...))
}

// ---- pass 1: collection ----

func (c *checker) collectFunctionDef(fn *ast.FunctionDef) {
	if _, dup := c.funcs[fn.Name]; dup {
		c.errorf(fn.Loc(), diag.CodeUnknownName, "function %q redefined", fn.Name)
		return
	}
	c.funcs[fn.Name] = fn
	sig := ast.Signature{Return: fn.Return}
	for _, p := range fn.Params {
		sig.Params = append(sig.Params, p.Type)
	}
	c.funcSigs[fn.Name] = sig
}

// collectBlock walks stmts recursively, registering every function def
// and import found at any nesting depth so pass 2 can resolve a name
// used in a body before the statement that defines it runs.
func (c *checker) collectBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			c.collectFunctionDef(s)
			c.collectBlock(s.Body)
		case *ast.Import:
			c.collectImport(s)
		case *ast.If:
			c.collectBlock(s.Body)
			for _, elif := range s.Elifs {
				c.collectBlock(elif.Body)
			}
			c.collectBlock(s.Else)
		case *ast.While:
			c.collectBlock(s.Body)
		case *ast.For:
			c.collectBlock(s.Body)
		case *ast.Try:
			c.collectBlock(s.Body)
			c.collectBlock(s.Except)
			c.collectBlock(s.Else)
			c.collectBlock(s.Finally)
		}
	}
}

func (c *checker) collectImport(imp *ast.Import) {
	if imp.From == "" {
		for _, m := range imp.Modules {
			if !c.registry.has(m) {
				c.suggestModule(imp.Loc(), m)
				continue
			}
			c.imports[m] = m
		}
		return
	}
	if !c.registry.has(imp.From) {
		c.suggestModule(imp.Loc(), imp.From)
		return
	}
	for _, name := range imp.Names {
		if _, ok := c.registry[imp.From][name]; !ok {
			c.suggestName(imp.Loc(), imp.From, name)
			continue
		}
		c.imports[name] = imp.From + "." + name
	}
}

func (r ModuleRegistry) has(module string) bool {
	_, ok := r[module]
	return ok
}

func (c *checker) suggestModule(loc diag.Location, got string) {
	d := diag.New(diag.SeverityError, diag.CodeUnknownModule, loc, "unknown module %q", got)
	if best := closest(got, c.registry.ModuleNames()); best != "" {
		d = d.WithNote(fmt.Sprintf("did you mean %q?", best))
	}
	c.diags.Add(d)
}

func (c *checker) suggestName(loc diag.Location, module, got string) {
	d := diag.New(diag.SeverityError, diag.CodeUnknownName, loc, "module %q has no function %q", module, got)
	if best := closest(got, c.registry.NamesIn(module)); best != "" {
		d = d.WithNote(fmt.Sprintf("did you mean %q?", best))
	}
	c.diags.Add(d)
}

// closest returns the best "did you mean" candidate for got, using
// fuzzysearch's subsequence-ranked matching (grounded on sema's need to
// point a typo'd import/name at the nearest real one). When no
// candidate contains got as a subsequence (e.g. an extra character was
// typed), it falls back to the candidate within two edits by
// Levenshtein distance. Returns "" when nothing matches closely enough
// to be worth suggesting.
func closest(got string, candidates []string) string {
	ranks := fuzzy.RankFindFold(got, candidates)
	if len(ranks) == 0 {
		sort.Strings(candidates)
		best, bestDist := "", 3
		for _, cand := range candidates {
			if d := fuzzy.LevenshteinDistance(got, cand); d < bestDist {
				best, bestDist = cand, d
			}
		}
		return best
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// ---- pass 2+3: statements ----

func (c *checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		c.checkFunctionDef(s)
	case *ast.Import:
		// Already bound in pass 1.
	case *ast.Assign:
		c.checkAssign(s)
	case *ast.AugAssign:
		c.checkAugAssign(s)
	case *ast.If:
		c.checkCond(s.Cond)
		c.withScope(func() { c.checkStmts(s.Body) })
		for _, elif := range s.Elifs {
			c.checkCond(elif.Cond)
			c.withScope(func() { c.checkStmts(elif.Body) })
		}
		c.withScope(func() { c.checkStmts(s.Else) })
	case *ast.While:
		c.checkCond(s.Cond)
		c.inLoop++
		c.withScope(func() { c.checkStmts(s.Body) })
		c.inLoop--
	case *ast.For:
		elem := c.inferIterElem(s.Iter)
		c.inLoop++
		c.withScope(func() {
			c.bindTarget(s.Target, elem)
			c.checkStmts(s.Body)
		})
		c.inLoop--
	case *ast.Try:
		c.withScope(func() { c.checkStmts(s.Body) })
		if s.HasExcept {
			c.withScope(func() {
				if s.ExceptAs != "" {
					c.scopes.define(s.ExceptAs, ast.Type{Kind: ast.KStr})
				}
				c.checkStmts(s.Except)
			})
		}
		c.withScope(func() { c.checkStmts(s.Else) })
		c.withScope(func() { c.checkStmts(s.Finally) })
	case *ast.Return:
		if s.Value != nil {
			got := c.infer(s.Value)
			if c.inFunc != nil && !typesCompatible(c.inFunc.Return, got) {
				c.errorf(s.Loc(), diag.CodeTypeMismatch,
					"function %q returns %s, got %s", c.inFunc.Name, c.inFunc.Return, got)
			}
		} else if c.inFunc != nil && c.inFunc.Return.Kind != ast.KVoid {
			c.errorf(s.Loc(), diag.CodeTypeMismatch,
				"function %q must return a value of type %s", c.inFunc.Name, c.inFunc.Return)
		}
	case *ast.ExprStmt:
		c.infer(s.X)
	case *ast.Pass, *ast.Break, *ast.Continue:
		// No-ops for sema; parser already enforces shape.
	}
}

func (c *checker) checkStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.checkStmt(s)
	}
}

func (c *checker) withScope(f func()) {
	c.scopes.push()
	defer c.scopes.pop()
	f()
}

func (c *checker) checkFunctionDef(fn *ast.FunctionDef) {
	prev := c.inFunc
	c.inFunc = fn
	c.withScope(func() {
		for _, p := range fn.Params {
			c.scopes.define(p.Name, p.Type)
		}
		c.checkStmts(fn.Body)
	})
	c.inFunc = prev
}

func (c *checker) checkCond(e ast.Expr) {
	if e == nil {
		return
	}
	c.infer(e)
}

func (c *checker) checkAssign(a *ast.Assign) {
	val := c.infer(a.Value)
	if name, ok := a.Target.(*ast.Name); ok {
		c.scopes.define(name.Ident, val)
		return
	}
	c.infer(a.Target)
}

// checkAugAssign enforces spec.md §4.3: "augmented assignment requires
// the l-value type to be mutable and closed under the operator."
func (c *checker) checkAugAssign(a *ast.AugAssign) {
	lt := c.infer(a.Target)
	rt := c.infer(a.Value)
	if lt.Kind == ast.KStr && a.Op == ast.AugAdd {
		return // str += str is allowed (concatenation)
	}
	if !lt.IsMutable() && !isNumeric(lt) {
		c.errorf(a.Loc(), diag.CodeNotMutable,
			"augmented assignment target of type %s is not mutable", lt)
		return
	}
	if isNumeric(lt) && !isNumeric(rt) {
		c.errorf(a.Loc(), diag.CodeTypeMismatch,
			"cannot apply %s to %s and %s", a.Op, lt, rt)
	}
}

func (c *checker) bindTarget(target ast.Expr, t ast.Type) {
	if name, ok := target.(*ast.Name); ok {
		c.scopes.define(name.Ident, t)
	}
}

// inferIterElem determines the per-iteration element type of a `for`
// loop's source expression.
func (c *checker) inferIterElem(iter ast.Expr) ast.Type {
	t := c.infer(iter)
	switch t.Kind {
	case ast.KList, ast.KSet:
		if t.Elem != nil {
			return *t.Elem
		}
	case ast.KDict:
		if t.Key != nil {
			return *t.Key
		}
	case ast.KStr:
		return ast.Type{Kind: ast.KStr}
	}
	return ast.Type{Kind: ast.KAny}
}

// ---- expressions ----

// infer performs bottom-up type inference/checking over e, per
// spec.md §4.3's type rules, and stamps the result onto the node's
// Resolved field so codegen doesn't need to re-derive it.
func (c *checker) infer(e ast.Expr) ast.Type {
	if e == nil {
		return ast.Type{Kind: ast.KNone}
	}
	t := c.inferRaw(e)
	stampType(e, t)
	return t
}

func (c *checker) inferRaw(e ast.Expr) ast.Type {
	switch x := e.(type) {
	case *ast.Literal:
		return c.inferLiteral(x)
	case *ast.FString:
		for _, sub := range x.Exprs {
			c.infer(sub)
		}
		return ast.Type{Kind: ast.KStr}
	case *ast.Name:
		if t, ok := c.scopes.lookup(x.Ident); ok {
			return t
		}
		if module, ok := c.imports[x.Ident]; ok {
			return ast.Type{Kind: ast.KModuleRef, Handle: module}
		}
		if sig, ok := c.funcSigs[x.Ident]; ok {
			return ast.Type{Kind: ast.KFuncRef, Sig: &sig}
		}
		c.suggestLocal(x.Loc(), x.Ident)
		return ast.Type{Kind: ast.KAny}
	case *ast.ListExpr:
		return c.inferContainerLit(x.Loc(), ast.KList, x.Elems)
	case *ast.SetExpr:
		return c.inferContainerLit(x.Loc(), ast.KSet, x.Elems)
	case *ast.TupleExpr:
		elems := make([]ast.Type, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = c.infer(el)
		}
		return ast.Type{Kind: ast.KTuple, Elems: elems}
	case *ast.DictExpr:
		return c.inferDictLit(x)
	case *ast.Comprehension:
		return c.inferComprehension(x)
	case *ast.BinOp:
		return c.inferBinOp(x)
	case *ast.UnaryOp:
		xt := c.infer(x.X)
		if x.Op == ast.OpNot {
			return ast.Type{Kind: ast.KBool}
		}
		return xt
	case *ast.BoolOp:
		lt := c.infer(x.Left)
		rt := c.infer(x.Right)
		return joinTypes(lt, rt)
	case *ast.Compare:
		c.infer(x.Left)
		c.infer(x.Right)
		return ast.Type{Kind: ast.KBool}
	case *ast.Call:
		return c.inferCall(x)
	case *ast.Attribute:
		return c.inferAttribute(x)
	case *ast.Subscript:
		return c.inferSubscript(x)
	default:
		return ast.Type{Kind: ast.KAny}
	}
}

func (c *checker) suggestLocal(loc diag.Location, got string) {
	d := diag.New(diag.SeverityError, diag.CodeUnknownName, loc, "undefined name %q", got)
	candidates := c.scopes.allNames()
	for name := range c.funcs {
		candidates = append(candidates, name)
	}
	if best := closest(got, candidates); best != "" {
		d = d.WithNote(fmt.Sprintf("did you mean %q?", best))
	}
	c.diags.Add(d)
}

func (c *checker) inferLiteral(lit *ast.Literal) ast.Type {
	switch lit.Kind {
	case ast.LitInt:
		return ast.Type{Kind: ast.KInt}
	case ast.LitFloat:
		return ast.Type{Kind: ast.KFloat}
	case ast.LitStr:
		return ast.Type{Kind: ast.KStr}
	case ast.LitBytes:
		return ast.Type{Kind: ast.KBytes}
	case ast.LitBool:
		return ast.Type{Kind: ast.KBool}
	default:
		return ast.Type{Kind: ast.KNone}
	}
}

// inferContainerLit implements spec.md §4.3: "container literal type is
// the join of element types; an empty container requires a context type
// or is flagged."
func (c *checker) inferContainerLit(loc diag.Location, kind ast.Kind, elems []ast.Expr) ast.Type {
	if len(elems) == 0 {
		c.errorf(loc, diag.CodeTypeMismatch, "empty %s literal needs a context type to infer its element type", kind)
		any := ast.Type{Kind: ast.KAny}
		return ast.Type{Kind: kind, Elem: &any}
	}
	joined := c.infer(elems[0])
	for _, el := range elems[1:] {
		joined = joinTypes(joined, c.infer(el))
	}
	return ast.Type{Kind: kind, Elem: &joined}
}

func (c *checker) inferDictLit(d *ast.DictExpr) ast.Type {
	if len(d.Entries) == 0 {
		c.errorf(d.Loc(), diag.CodeTypeMismatch, "empty dict literal needs a context type to infer its key/value types")
		any1, any2 := ast.Type{Kind: ast.KAny}, ast.Type{Kind: ast.KAny}
		return ast.Type{Kind: ast.KDict, Key: &any1, Value: &any2}
	}
	keyT := c.infer(d.Entries[0].Key)
	valT := c.infer(d.Entries[0].Value)
	for _, e := range d.Entries[1:] {
		keyT = joinTypes(keyT, c.infer(e.Key))
		valT = joinTypes(valT, c.infer(e.Value))
	}
	return ast.Type{Kind: ast.KDict, Key: &keyT, Value: &valT}
}

func (c *checker) inferComprehension(comp *ast.Comprehension) ast.Type {
	var result ast.Type
	c.withScope(func() {
		elemT := c.inferIterElem(comp.Source)
		c.infer(comp.Source)
		c.bindTarget(comp.Target, elemT)
		if comp.Filter != nil {
			c.infer(comp.Filter)
		}
		switch comp.Kind {
		case ast.CompList:
			e := c.infer(comp.Elem)
			result = ast.Type{Kind: ast.KList, Elem: &e}
		case ast.CompSet:
			e := c.infer(comp.Elem)
			result = ast.Type{Kind: ast.KSet, Elem: &e}
		case ast.CompDict:
			k := c.infer(comp.Key)
			v := c.infer(comp.Elem)
			result = ast.Type{Kind: ast.KDict, Key: &k, Value: &v}
		}
	})
	return result
}

// inferBinOp implements spec.md §4.3's arithmetic rules: Int op Int =
// Int; any Float operand promotes to Float; `/` on ints yields Float;
// `//` on ints yields Int.
func (c *checker) inferBinOp(b *ast.BinOp) ast.Type {
	lt := c.infer(b.Left)
	rt := c.infer(b.Right)

	if b.Op == ast.OpAdd && lt.Kind == ast.KStr && rt.Kind == ast.KStr {
		return ast.Type{Kind: ast.KStr}
	}
	if b.Op == ast.OpAdd && lt.Kind == ast.KList && rt.Kind == ast.KList {
		return lt
	}
	if !isNumeric(lt) || !isNumeric(rt) {
		c.errorf(b.Loc(), diag.CodeTypeMismatch, "cannot apply %s to %s and %s", b.Op, lt, rt)
		return ast.Type{Kind: ast.KAny}
	}
	if b.Op == ast.OpDiv {
		return ast.Type{Kind: ast.KFloat}
	}
	if b.Op == ast.OpFloorDiv {
		if lt.Kind == ast.KFloat || rt.Kind == ast.KFloat {
			return ast.Type{Kind: ast.KFloat}
		}
		return ast.Type{Kind: ast.KInt}
	}
	if lt.Kind == ast.KFloat || rt.Kind == ast.KFloat {
		return ast.Type{Kind: ast.KFloat}
	}
	return ast.Type{Kind: ast.KInt}
}

// inferCall resolves direct module-function calls (`m.f(args)`) against
// the registry per spec.md §4.3 ("binds to the shim whose signature must
// unify with args"), and user-defined function calls against funcSigs.
func (c *checker) inferCall(call *ast.Call) ast.Type {
	argTypes := make([]ast.Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.infer(a)
	}

	if attr, ok := call.Func.(*ast.Attribute); ok {
		if name, ok := attr.X.(*ast.Name); ok {
			if module, isModule := c.imports[name.Ident]; isModule {
				return c.checkModuleCall(call.Loc(), module, attr.Attr, argTypes)
			}
		}
	}
	if name, ok := call.Func.(*ast.Name); ok {
		if sig, ok := c.funcSigs[name.Ident]; ok {
			c.checkArity(call.Loc(), name.Ident, sig, argTypes)
			return sig.Return
		}
		c.suggestLocal(call.Loc(), name.Ident)
		return ast.Type{Kind: ast.KAny}
	}
	c.infer(call.Func)
	return ast.Type{Kind: ast.KAny}
}

func (c *checker) checkModuleCall(loc diag.Location, module, fn string, args []ast.Type) ast.Type {
	sig, moduleKnown, fnKnown := c.registry.Lookup(module, fn)
	if !moduleKnown {
		c.suggestModule(loc, module)
		return ast.Type{Kind: ast.KAny}
	}
	if !fnKnown {
		c.suggestName(loc, module, fn)
		return ast.Type{Kind: ast.KAny}
	}
	c.checkArity(loc, module+"."+fn, sig, args)
	return sig.Return
}

func (c *checker) checkArity(loc diag.Location, name string, sig ast.Signature, args []ast.Type) {
	if sig.Variadic {
		if len(args) < len(sig.Params) {
			c.errorf(loc, diag.CodeTypeMismatch, "%s expects at least %d argument(s), got %d", name, len(sig.Params), len(args))
		}
		return
	}
	if len(args) != len(sig.Params) {
		c.errorf(loc, diag.CodeTypeMismatch, "%s expects %d argument(s), got %d", name, len(sig.Params), len(args))
	}
}

// inferAttribute handles bare `module.NAME` reads (e.g. passed as a
// value without a call, or a constant such as errno.ENOENT).
func (c *checker) inferAttribute(attr *ast.Attribute) ast.Type {
	if name, ok := attr.X.(*ast.Name); ok {
		if module, isModule := c.imports[name.Ident]; isModule {
			sig, moduleKnown, fnKnown := c.registry.Lookup(module, attr.Attr)
			if !moduleKnown {
				c.suggestModule(attr.Loc(), module)
				return ast.Type{Kind: ast.KAny}
			}
			if !fnKnown {
				c.suggestName(attr.Loc(), module, attr.Attr)
				return ast.Type{Kind: ast.KAny}
			}
			return sig.Return
		}
	}
	c.infer(attr.X)
	return ast.Type{Kind: ast.KAny}
}

// inferSubscript implements spec.md §4.3: "Subscript of List<T>/Dict<_,T>
// /Str/Bytes yields T / T / Str / Int respectively."
func (c *checker) inferSubscript(sub *ast.Subscript) ast.Type {
	xt := c.infer(sub.X)
	if sub.Slice != nil {
		if sub.Slice.Low != nil {
			c.infer(sub.Slice.Low)
		}
		if sub.Slice.High != nil {
			c.infer(sub.Slice.High)
		}
		if sub.Slice.Step != nil {
			c.infer(sub.Slice.Step)
		}
		return xt // slicing yields the same container type
	}
	c.infer(sub.Index)
	switch xt.Kind {
	case ast.KList:
		if xt.Elem != nil {
			return *xt.Elem
		}
	case ast.KDict:
		if xt.Value != nil {
			return *xt.Value
		}
	case ast.KStr:
		return ast.Type{Kind: ast.KStr}
	case ast.KBytes:
		return ast.Type{Kind: ast.KInt}
	}
	return ast.Type{Kind: ast.KAny}
}

// ---- type helpers ----

func isNumeric(t ast.Type) bool { return t.Kind == ast.KInt || t.Kind == ast.KFloat }

// joinTypes implements the "join of element types" rule: identical
// types join to themselves, Int/Float join to Float, anything else
// joins to Any.
func joinTypes(a, b ast.Type) ast.Type {
	if a.Kind == b.Kind {
		return a
	}
	if isNumeric(a) && isNumeric(b) {
		return ast.Type{Kind: ast.KFloat}
	}
	return ast.Type{Kind: ast.KAny}
}

func typesCompatible(want, got ast.Type) bool {
	if want.Kind == ast.KAny || got.Kind == ast.KAny {
		return true
	}
	if want.Kind == ast.KVoid {
		return got.Kind == ast.KVoid || got.Kind == ast.KNone
	}
	if isNumeric(want) && isNumeric(got) {
		return true
	}
	return want.Kind == got.Kind
}

// stampType records the inferred type on any node that embeds base,
// via the ast.Node.SetLoc sibling pattern — sema doesn't re-set
// location, only the Resolved type, so it goes through a narrower
// setter than SetLoc.
func stampType(e ast.Expr, t ast.Type) {
	if s, ok := e.(interface{ SetResolved(ast.Type) }); ok {
		s.SetResolved(t)
	}
}
