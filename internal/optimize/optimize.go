// Package optimize runs the optional IR-to-IR passes spec.md §2
// describes ("constant folding, DCE, inlining of tiny shims; optional").
// Structured the way the teacher's runtime/ir.TransformCommand walks a
// typed tree node-by-node and returns a rewritten typed tree, adapted
// from one-shot AST->IR lowering into a fixed-point IR->IR rewrite.
package optimize

import (
	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/ir"
)

// Level mirrors the `-O0`/`-O1`/`-O2` CLI flag (spec.md §6).
type Level int

const (
	O0 Level = iota // no optimization
	O1              // constant folding + dead code elimination
	O2              // O1 plus inlining of tiny single-statement functions
)

// Run rewrites prog in place according to level and also returns it, so
// callers can chain `prog = optimize.Run(prog, level)`.
func Run(prog *ir.Program, level Level) *ir.Program {
	if level == O0 {
		return prog
	}
	p := &pass{level: level, funcs: make(map[string]*ir.Func, len(prog.Functions))}
	for _, fn := range prog.Functions {
		p.funcs[fn.Name] = fn
	}
	for _, fn := range prog.Functions {
		fn.Body = p.rewriteStmts(fn.Body)
	}
	if prog.Main != nil {
		prog.Main.Body = p.rewriteStmts(prog.Main.Body)
	}
	return prog
}

type pass struct {
	level Level
	funcs map[string]*ir.Func
}

// rewriteStmts folds and eliminates dead code within one statement list,
// then truncates it at the first statement that always transfers
// control away (return/break/continue), per the DCE pass.
func (p *pass) rewriteStmts(stmts []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		rs := p.rewriteStmt(s)
		if rs == nil {
			continue // a constant-false `while` folded away entirely
		}
		out = append(out, rs)
		if alwaysExits(rs) {
			break
		}
	}
	return out
}

func alwaysExits(s ir.Stmt) bool {
	switch s.(type) {
	case *ir.Return, *ir.Break, *ir.Continue:
		return true
	}
	return false
}

func (p *pass) rewriteStmt(s ir.Stmt) ir.Stmt {
	switch st := s.(type) {
	case *ir.Assign:
		st.Target = p.rewriteExpr(st.Target)
		st.Value = p.rewriteExpr(st.Value)
		return st
	case *ir.AugAssign:
		st.Target = p.rewriteExpr(st.Target)
		st.Value = p.rewriteExpr(st.Value)
		return st
	case *ir.If:
		st.Cond = p.rewriteExpr(st.Cond)
		if lit, ok := constBool(st.Cond); ok {
			if lit {
				return collapseBlock(p.rewriteStmts(st.Body))
			}
			for _, e := range st.Elifs {
				return p.rewriteStmt(&ir.If{Cond: e.Cond, Body: e.Body, Else: st.Else})
			}
			return collapseBlock(p.rewriteStmts(st.Else))
		}
		st.Body = p.rewriteStmts(st.Body)
		for i := range st.Elifs {
			st.Elifs[i].Cond = p.rewriteExpr(st.Elifs[i].Cond)
			st.Elifs[i].Body = p.rewriteStmts(st.Elifs[i].Body)
		}
		st.Else = p.rewriteStmts(st.Else)
		return st
	case *ir.While:
		st.Cond = p.rewriteExpr(st.Cond)
		if lit, ok := constBool(st.Cond); ok && !lit {
			return nil // `while False:` never runs
		}
		st.Body = p.rewriteStmts(st.Body)
		return st
	case *ir.For:
		st.Iter = p.rewriteExpr(st.Iter)
		st.Body = p.rewriteStmts(st.Body)
		return st
	case *ir.Try:
		st.Body = p.rewriteStmts(st.Body)
		st.Except = p.rewriteStmts(st.Except)
		st.Else = p.rewriteStmts(st.Else)
		st.Finally = p.rewriteStmts(st.Finally)
		return st
	case *ir.Return:
		if st.Value != nil {
			st.Value = p.rewriteExpr(st.Value)
		}
		return st
	case *ir.ExprStmt:
		st.X = p.rewriteExpr(st.X)
		return st
	case *ir.Block:
		st.Body = p.rewriteStmts(st.Body)
		return st
	default:
		return s
	}
}

// collapseBlock returns a single Stmt standing in for a folded-away `if`
// branch: nil becomes Pass so callers never see an empty statement.
func collapseBlock(stmts []ir.Stmt) ir.Stmt {
	if len(stmts) == 0 {
		return &ir.Pass{}
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ir.Block{Body: stmts}
}

func constBool(e ir.Expr) (bool, bool) {
	switch v := e.(type) {
	case *ir.BoolLit:
		return v.Value, true
	case *ir.IntLit:
		return v.Value != 0, true
	}
	return false, false
}

// rewriteExpr folds constant subexpressions bottom-up, per spec.md §2's
// "constant folding" pass.
func (p *pass) rewriteExpr(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *ir.BinOp:
		x.Left = p.rewriteExpr(x.Left)
		x.Right = p.rewriteExpr(x.Right)
		if folded := foldBinOp(x); folded != nil {
			return folded
		}
		return x
	case *ir.UnaryOp:
		x.X = p.rewriteExpr(x.X)
		if folded := foldUnaryOp(x); folded != nil {
			return folded
		}
		return x
	case *ir.BoolOp:
		x.Left = p.rewriteExpr(x.Left)
		x.Right = p.rewriteExpr(x.Right)
		return x
	case *ir.Compare:
		x.Left = p.rewriteExpr(x.Left)
		x.Right = p.rewriteExpr(x.Right)
		return x
	case *ir.ListLit:
		for i := range x.Elems {
			x.Elems[i] = p.rewriteExpr(x.Elems[i])
		}
		return x
	case *ir.SetLit:
		for i := range x.Elems {
			x.Elems[i] = p.rewriteExpr(x.Elems[i])
		}
		return x
	case *ir.TupleLit:
		for i := range x.Elems {
			x.Elems[i] = p.rewriteExpr(x.Elems[i])
		}
		return x
	case *ir.DictLit:
		for i := range x.Entries {
			x.Entries[i].Key = p.rewriteExpr(x.Entries[i].Key)
			x.Entries[i].Value = p.rewriteExpr(x.Entries[i].Value)
		}
		return x
	case *ir.FStringExpr:
		for i := range x.Exprs {
			x.Exprs[i] = p.rewriteExpr(x.Exprs[i])
		}
		return x
	case *ir.ModuleCall:
		for i := range x.Args {
			x.Args[i] = p.rewriteExpr(x.Args[i])
		}
		return x
	case *ir.UserCall:
		for i := range x.Args {
			x.Args[i] = p.rewriteExpr(x.Args[i])
		}
		if p.level >= O2 {
			if inlined := p.inlineCall(x); inlined != nil {
				return inlined
			}
		}
		return x
	case *ir.Attribute:
		x.X = p.rewriteExpr(x.X)
		return x
	case *ir.Subscript:
		x.X = p.rewriteExpr(x.X)
		x.Index = p.rewriteExpr(x.Index)
		return x
	default:
		return e
	}
}

// inlineCall substitutes a call to a tiny single-`return <expr>` shim
// with its returned expression, per spec.md §2's "inlining of tiny
// shims" — never recurses, never inlines multi-statement bodies, so it
// cannot loop or change evaluation order of side effects.
func (p *pass) inlineCall(call *ir.UserCall) ir.Expr {
	fn, ok := p.funcs[call.Func]
	if !ok || len(fn.Body) != 1 || len(fn.Params) != len(call.Args) {
		return nil
	}
	ret, ok := fn.Body[0].(*ir.Return)
	if !ok || ret.Value == nil {
		return nil
	}
	if !isPure(ret.Value) {
		return nil
	}
	for _, a := range call.Args {
		if !isPure(a) {
			return nil
		}
	}
	return substituteParams(ret.Value, fn.Params, call.Args)
}

// isPure reports whether e can be freely duplicated/relocated: no calls
// (module calls may have I/O side effects; recursive user calls would
// defeat inlining's single-pass design).
func isPure(e ir.Expr) bool {
	switch x := e.(type) {
	case *ir.IntLit, *ir.FloatLit, *ir.StrLit, *ir.BytesLit, *ir.BoolLit, *ir.NoneLit, *ir.Name:
		return true
	case *ir.BinOp:
		return isPure(x.Left) && isPure(x.Right)
	case *ir.UnaryOp:
		return isPure(x.X)
	case *ir.BoolOp:
		return isPure(x.Left) && isPure(x.Right)
	case *ir.Compare:
		return isPure(x.Left) && isPure(x.Right)
	default:
		return false
	}
}

func substituteParams(e ir.Expr, params []ir.Param, args []ir.Expr) ir.Expr {
	switch x := e.(type) {
	case *ir.Name:
		for i, p := range params {
			if p.Name == x.Ident {
				return args[i]
			}
		}
		return x
	case *ir.BinOp:
		return &ir.BinOp{Typed: x.Typed, Op: x.Op, Left: substituteParams(x.Left, params, args), Right: substituteParams(x.Right, params, args)}
	case *ir.UnaryOp:
		return &ir.UnaryOp{Typed: x.Typed, Op: x.Op, X: substituteParams(x.X, params, args)}
	case *ir.BoolOp:
		return &ir.BoolOp{Typed: x.Typed, Op: x.Op, Left: substituteParams(x.Left, params, args), Right: substituteParams(x.Right, params, args)}
	case *ir.Compare:
		return &ir.Compare{Typed: x.Typed, Op: x.Op, Left: substituteParams(x.Left, params, args), Right: substituteParams(x.Right, params, args)}
	default:
		return e
	}
}

func foldUnaryOp(u *ir.UnaryOp) ir.Expr {
	switch x := u.X.(type) {
	case *ir.IntLit:
		if u.Op == ast.OpNeg {
			return &ir.IntLit{Typed: u.Typed, Value: -x.Value}
		}
	case *ir.FloatLit:
		if u.Op == ast.OpNeg {
			return &ir.FloatLit{Typed: u.Typed, Value: -x.Value}
		}
	case *ir.BoolLit:
		if u.Op == ast.OpNot {
			return &ir.BoolLit{Typed: u.Typed, Value: !x.Value}
		}
	}
	return nil
}

func foldBinOp(b *ir.BinOp) ir.Expr {
	li, lok := asFloat(b.Left)
	ri, rok := asFloat(b.Right)
	if !lok || !rok {
		return nil
	}
	_, leftIsInt := b.Left.(*ir.IntLit)
	_, rightIsInt := b.Right.(*ir.IntLit)
	bothInt := leftIsInt && rightIsInt

	var result float64
	switch b.Op {
	case ast.OpAdd:
		result = li + ri
	case ast.OpSub:
		result = li - ri
	case ast.OpMul:
		result = li * ri
	case ast.OpDiv:
		if ri == 0 {
			return nil
		}
		return &ir.FloatLit{Typed: b.Typed, Value: li / ri}
	case ast.OpFloorDiv:
		if ri == 0 {
			return nil
		}
		q := float64(int64(li / ri))
		if q != li/ri && li/ri < 0 {
			q-- // floor, not truncate, matching internal/interp
		}
		if bothInt {
			return &ir.IntLit{Typed: b.Typed, Value: int64(q)}
		}
		return &ir.FloatLit{Typed: b.Typed, Value: q}
	case ast.OpMod:
		if ri == 0 {
			return nil
		}
		result = floatMod(li, ri)
	case ast.OpPow:
		result = floatPow(li, ri)
	default:
		return nil
	}
	if bothInt {
		return &ir.IntLit{Typed: b.Typed, Value: int64(result)}
	}
	return &ir.FloatLit{Typed: b.Typed, Value: result}
}

func asFloat(e ir.Expr) (float64, bool) {
	switch x := e.(type) {
	case *ir.IntLit:
		return float64(x.Value), true
	case *ir.FloatLit:
		return x.Value, true
	}
	return 0, false
}

func floatMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func floatPow(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	neg := b < 0
	if neg {
		b = -b
	}
	result := 1.0
	base := a
	n := int64(b)
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	if neg {
		return 1 / result
	}
	return result
}
