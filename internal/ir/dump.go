package ir

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/pycc/internal/ast"
)

// Dump renders p as the textual IR `pycc --emit=ir` prints: one
// function per block, statements indented, expressions inlined.
func Dump(p *Program) string {
	var b strings.Builder
	for _, fn := range p.Functions {
		dumpFunc(&b, fn)
		b.WriteString("\n")
	}
	if p.Main != nil {
		dumpFunc(&b, p.Main)
	}
	return b.String()
}

func dumpFunc(b *strings.Builder, fn *Func) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	fmt.Fprintf(b, "func %s(%s) -> %s {\n", fn.Name, strings.Join(params, ", "), fn.Return)
	dumpStmts(b, fn.Body, 1)
	b.WriteString("}\n")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
}

func dumpStmts(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(b, s, depth)
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	switch st := s.(type) {
	case *Assign:
		indent(b, depth)
		fmt.Fprintf(b, "%s = %s\n", dumpExpr(st.Target), dumpExpr(st.Value))
	case *AugAssign:
		indent(b, depth)
		fmt.Fprintf(b, "%s %s= %s\n", dumpExpr(st.Target), st.Op, dumpExpr(st.Value))
	case *If:
		indent(b, depth)
		fmt.Fprintf(b, "if %s {\n", dumpExpr(st.Cond))
		dumpStmts(b, st.Body, depth+1)
		for _, e := range st.Elifs {
			indent(b, depth)
			fmt.Fprintf(b, "} elif %s {\n", dumpExpr(e.Cond))
			dumpStmts(b, e.Body, depth+1)
		}
		if len(st.Else) > 0 {
			indent(b, depth)
			b.WriteString("} else {\n")
			dumpStmts(b, st.Else, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *While:
		indent(b, depth)
		fmt.Fprintf(b, "while %s {\n", dumpExpr(st.Cond))
		dumpStmts(b, st.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")
	case *For:
		indent(b, depth)
		fmt.Fprintf(b, "for %s in %s {\n", st.TargetName, dumpExpr(st.Iter))
		dumpStmts(b, st.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")
	case *Try:
		indent(b, depth)
		b.WriteString("try {\n")
		dumpStmts(b, st.Body, depth+1)
		if st.HasExcept {
			indent(b, depth)
			fmt.Fprintf(b, "} except as %s {\n", st.ExceptAs)
			dumpStmts(b, st.Except, depth+1)
		}
		if len(st.Else) > 0 {
			indent(b, depth)
			b.WriteString("} else {\n")
			dumpStmts(b, st.Else, depth+1)
		}
		if len(st.Finally) > 0 {
			indent(b, depth)
			b.WriteString("} finally {\n")
			dumpStmts(b, st.Finally, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *Return:
		indent(b, depth)
		if st.Value == nil {
			b.WriteString("return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", dumpExpr(st.Value))
		}
	case *ExprStmt:
		indent(b, depth)
		fmt.Fprintf(b, "%s\n", dumpExpr(st.X))
	case *Pass:
		indent(b, depth)
		b.WriteString("pass\n")
	case *Break:
		indent(b, depth)
		b.WriteString("break\n")
	case *Continue:
		indent(b, depth)
		b.WriteString("continue\n")
	case *Block:
		dumpStmts(b, st.Body, depth)
	}
}

func dumpExpr(e Expr) string {
	switch x := e.(type) {
	case *Name:
		return x.Ident
	case *IntLit:
		return fmt.Sprint(x.Value)
	case *FloatLit:
		return fmt.Sprint(x.Value)
	case *StrLit:
		return fmt.Sprintf("%q", x.Value)
	case *BytesLit:
		return fmt.Sprintf("b%q", string(x.Value))
	case *BoolLit:
		if x.Value {
			return "True"
		}
		return "False"
	case *NoneLit:
		return "None"
	case *FStringExpr:
		var sb strings.Builder
		sb.WriteString("f\"")
		for i, lit := range x.Literals {
			sb.WriteString(lit)
			if i < len(x.Exprs) {
				sb.WriteString("{" + dumpExpr(x.Exprs[i]) + "}")
			}
		}
		sb.WriteString("\"")
		return sb.String()
	case *ListLit:
		return "[" + joinExprs(x.Elems) + "]"
	case *SetLit:
		return "{" + joinExprs(x.Elems) + "}"
	case *TupleLit:
		return "(" + joinExprs(x.Elems) + ")"
	case *DictLit:
		parts := make([]string, len(x.Entries))
		for i, en := range x.Entries {
			parts[i] = dumpExpr(en.Key) + ": " + dumpExpr(en.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Comprehension:
		base := dumpExpr(x.Elem)
		if x.Kind == ast.CompDict {
			base = dumpExpr(x.Key) + ": " + dumpExpr(x.Elem)
		}
		tail := fmt.Sprintf("%s for %s in %s", base, x.TargetName, dumpExpr(x.Source))
		if x.Filter != nil {
			tail += " if " + dumpExpr(x.Filter)
		}
		return "[" + tail + "]"
	case *BinOp:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(x.Left), x.Op, dumpExpr(x.Right))
	case *UnaryOp:
		sym := "-"
		if x.Op == ast.OpNot {
			sym = "not "
		}
		return sym + dumpExpr(x.X)
	case *BoolOp:
		sym := "and"
		if x.Op == ast.OpOr {
			sym = "or"
		}
		return fmt.Sprintf("(%s %s %s)", dumpExpr(x.Left), sym, dumpExpr(x.Right))
	case *Compare:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(x.Left), x.Op, dumpExpr(x.Right))
	case *ModuleCall:
		return fmt.Sprintf("%s.%s(%s)", x.Module, x.Func, joinExprs(x.Args))
	case *UserCall:
		return fmt.Sprintf("%s(%s)", x.Func, joinExprs(x.Args))
	case *Attribute:
		return dumpExpr(x.X) + "." + x.Attr
	case *Subscript:
		if x.Slice != nil {
			return fmt.Sprintf("%s[%s:%s:%s]", dumpExpr(x.X), dumpOpt(x.Slice.Low), dumpOpt(x.Slice.High), dumpOpt(x.Slice.Step))
		}
		return fmt.Sprintf("%s[%s]", dumpExpr(x.X), dumpExpr(x.Index))
	default:
		return "?"
	}
}

func dumpOpt(e Expr) string {
	if e == nil {
		return ""
	}
	return dumpExpr(e)
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = dumpExpr(e)
	}
	return strings.Join(parts, ", ")
}
