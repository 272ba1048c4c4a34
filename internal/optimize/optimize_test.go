package optimize

import (
	"testing"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/ir"
)

func intT() ast.Type { return ast.Type{Kind: ast.KInt} }

func TestConstantFoldingAddition(t *testing.T) {
	prog := &ir.Program{Main: &ir.Func{Name: "main", Body: []ir.Stmt{
		&ir.Assign{
			Target: &ir.Name{Typed: ir.Typed{T: intT()}, Ident: "x"},
			Value: &ir.BinOp{
				Typed: ir.Typed{T: intT()}, Op: ast.OpAdd,
				Left:  &ir.IntLit{Typed: ir.Typed{T: intT()}, Value: 2},
				Right: &ir.IntLit{Typed: ir.Typed{T: intT()}, Value: 3},
			},
		},
	}}}
	Run(prog, O1)
	assign := prog.Main.Body[0].(*ir.Assign)
	lit, ok := assign.Value.(*ir.IntLit)
	if !ok {
		t.Fatalf("expected folded IntLit, got %T", assign.Value)
	}
	if lit.Value != 5 {
		t.Fatalf("expected 5, got %d", lit.Value)
	}
}

func TestDeadCodeAfterReturnDropped(t *testing.T) {
	boolT := ast.Type{Kind: ast.KBool}
	fn := &ir.Func{Name: "f", Body: []ir.Stmt{
		&ir.Return{Value: &ir.BoolLit{Typed: ir.Typed{T: boolT}, Value: true}},
		&ir.ExprStmt{X: &ir.IntLit{Typed: ir.Typed{T: intT()}, Value: 1}},
	}}
	prog := &ir.Program{Functions: []*ir.Func{fn}, Main: &ir.Func{}}
	Run(prog, O1)
	if len(prog.Functions[0].Body) != 1 {
		t.Fatalf("expected unreachable statement dropped, got %d statements", len(prog.Functions[0].Body))
	}
}

func TestConstantFalseWhileDropped(t *testing.T) {
	boolT := ast.Type{Kind: ast.KBool}
	prog := &ir.Program{Main: &ir.Func{Body: []ir.Stmt{
		&ir.While{Cond: &ir.BoolLit{Typed: ir.Typed{T: boolT}, Value: false}, Body: []ir.Stmt{&ir.Pass{}}},
		&ir.Pass{},
	}}}
	Run(prog, O1)
	if len(prog.Main.Body) != 1 {
		t.Fatalf("expected while-false dropped, got %d statements", len(prog.Main.Body))
	}
	if _, ok := prog.Main.Body[0].(*ir.Pass); !ok {
		t.Fatalf("expected remaining statement to be Pass, got %T", prog.Main.Body[0])
	}
}

func TestInlineTinyShimAtO2(t *testing.T) {
	doubleFn := &ir.Func{Name: "double", Params: []ir.Param{{Name: "n", Type: intT()}}, Body: []ir.Stmt{
		&ir.Return{Value: &ir.BinOp{
			Typed: ir.Typed{T: intT()}, Op: ast.OpMul,
			Left:  &ir.Name{Typed: ir.Typed{T: intT()}, Ident: "n"},
			Right: &ir.IntLit{Typed: ir.Typed{T: intT()}, Value: 2},
		}},
	}}
	call := &ir.UserCall{Typed: ir.Typed{T: intT()}, Func: "double", Args: []ir.Expr{&ir.IntLit{Typed: ir.Typed{T: intT()}, Value: 21}}}
	prog := &ir.Program{Functions: []*ir.Func{doubleFn}, Main: &ir.Func{Body: []ir.Stmt{
		&ir.Assign{Target: &ir.Name{Typed: ir.Typed{T: intT()}, Ident: "x"}, Value: call},
	}}}
	Run(prog, O2)
	assign := prog.Main.Body[0].(*ir.Assign)
	bin, ok := assign.Value.(*ir.BinOp)
	if !ok {
		t.Fatalf("expected inlined BinOp, got %T", assign.Value)
	}
	lit, ok := bin.Left.(*ir.IntLit)
	if !ok || lit.Value != 21 {
		t.Fatalf("expected substituted argument 21, got %#v", bin.Left)
	}
}
