package ir

import (
	"strings"
	"testing"

	"github.com/aledsdavies/pycc/internal/ast"
)

func TestDumpAssignAndReturn(t *testing.T) {
	prog := &Program{
		Main: &Func{
			Name:   "main",
			Return: ast.Type{Kind: ast.KInt},
			Body: []Stmt{
				&Assign{
					Target: &Name{Typed: Typed{T: ast.Type{Kind: ast.KInt}}, Ident: "x"},
					Value:  &IntLit{Typed: Typed{T: ast.Type{Kind: ast.KInt}}, Value: 41},
				},
				&Return{Value: &Name{Typed: Typed{T: ast.Type{Kind: ast.KInt}}, Ident: "x"}},
			},
		},
	}
	out := Dump(prog)
	if !strings.Contains(out, "x = 41") {
		t.Errorf("expected dump to contain assignment, got:\n%s", out)
	}
	if !strings.Contains(out, "return x") {
		t.Errorf("expected dump to contain return, got:\n%s", out)
	}
}

func TestDumpBinOpAndCompare(t *testing.T) {
	intT := ast.Type{Kind: ast.KInt}
	boolT := ast.Type{Kind: ast.KBool}
	expr := &Compare{
		Typed: Typed{T: boolT},
		Op:    ast.CmpLt,
		Left:  &BinOp{Typed: Typed{T: intT}, Op: ast.OpAdd, Left: &IntLit{Typed: Typed{T: intT}, Value: 1}, Right: &IntLit{Typed: Typed{T: intT}, Value: 2}},
		Right: &IntLit{Typed: Typed{T: intT}, Value: 10},
	}
	got := dumpExpr(expr)
	want := "((1 + 2) < 10)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDumpModuleCall(t *testing.T) {
	strT := ast.Type{Kind: ast.KStr}
	call := &ModuleCall{
		Typed:  Typed{T: strT},
		Module: "json",
		Func:   "dumps",
		Args:   []Expr{&IntLit{Typed: Typed{T: ast.Type{Kind: ast.KInt}}, Value: 1}},
	}
	got := dumpExpr(call)
	want := "json.dumps(1)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTypedTypeAndIrExprPromoted(t *testing.T) {
	n := &Name{Typed: Typed{T: ast.Type{Kind: ast.KStr}}, Ident: "s"}
	var e Expr = n
	if e.Type().Kind != ast.KStr {
		t.Errorf("expected promoted Type() to return str, got %s", e.Type())
	}
}
