package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/ir"
	"github.com/aledsdavies/pycc/internal/parser"
	"github.com/aledsdavies/pycc/internal/sema"
)

func lowerSource(t *testing.T, src string) *ir.Program {
	t.Helper()
	tree := parser.Parse("<test>", src)
	if tree.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", tree.Diags.All())
	}
	res := sema.Analyze(tree.Module, sema.NewModuleRegistry())
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected sema errors: %v", res.Diags.All())
	}
	return Lower(res.Module, res.Imports)
}

func TestLowerAssignCarriesResolvedType(t *testing.T) {
	prog := lowerSource(t, "x = 1\ny = 2.0\nz = x + y\n")
	if len(prog.Main.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Main.Body))
	}
	assign := prog.Main.Body[2].(*ir.Assign)
	if assign.Value.Type().Kind != ast.KFloat {
		t.Fatalf("expected z's value to be typed float, got %s", assign.Value.Type())
	}
}

func TestLowerImportBecomesModuleCall(t *testing.T) {
	prog := lowerSource(t, "import json\nx = json.dumps(1)\n")
	assign := prog.Main.Body[0].(*ir.Assign)
	call, ok := assign.Value.(*ir.ModuleCall)
	if !ok {
		t.Fatalf("expected a ModuleCall, got %T", assign.Value)
	}
	if call.Module != "json" || call.Func != "dumps" {
		t.Fatalf("expected json.dumps, got %s.%s", call.Module, call.Func)
	}
}

func TestLowerFunctionDefProducesFunc(t *testing.T) {
	prog := lowerSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	ret, ok := fn.Body[0].(*ir.Return)
	if !ok {
		t.Fatalf("expected return statement, got %T", fn.Body[0])
	}
	if ret.Value.Type().Kind != ast.KInt {
		t.Fatalf("expected return value typed int, got %s", ret.Value.Type())
	}
}

func TestLowerFunctionDefParamsMatchSignature(t *testing.T) {
	prog := lowerSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	fn := prog.Functions[0]
	want := []ir.Param{
		{Name: "a", Type: ast.Type{Kind: ast.KInt}},
		{Name: "b", Type: ast.Type{Kind: ast.KInt}},
	}
	if diff := cmp.Diff(want, fn.Params); diff != "" {
		t.Fatalf("unexpected params (-want +got):\n%s", diff)
	}
}

func TestLowerUserCallResolvesToUserCall(t *testing.T) {
	prog := lowerSource(t, "def f() -> int:\n    return 1\nx = f()\n")
	assign := prog.Main.Body[0].(*ir.Assign)
	call, ok := assign.Value.(*ir.UserCall)
	if !ok {
		t.Fatalf("expected a UserCall, got %T", assign.Value)
	}
	if call.Func != "f" {
		t.Fatalf("expected call to f, got %s", call.Func)
	}
}
