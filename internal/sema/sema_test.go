package sema

import (
	"strings"
	"testing"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/parser"
)

func analyzeSource(t *testing.T, src string) *Result {
	t.Helper()
	tree := parser.Parse("<test>", src)
	if tree.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", tree.Diags.All())
	}
	return Analyze(tree.Module, NewModuleRegistry())
}

func TestAnalyze_ArithmeticPromotion(t *testing.T) {
	res := analyzeSource(t, "x = 1\ny = 2.0\nz = x + y\n")
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected sema errors: %v", res.Diags.All())
	}
	assign := res.Module.Body[2].(*ast.Assign)
	bin := assign.Value.(*ast.BinOp)
	if bin.ResolvedType().Kind != ast.KFloat {
		t.Fatalf("expected x + y to resolve to float, got %s", bin.ResolvedType())
	}
}

func TestAnalyze_IntDivisionYieldsFloat(t *testing.T) {
	res := analyzeSource(t, "z = 4 / 2\n")
	assign := res.Module.Body[0].(*ast.Assign)
	if assign.Value.ResolvedType().Kind != ast.KFloat {
		t.Fatalf("expected `/` to yield float, got %s", assign.Value.ResolvedType())
	}
}

func TestAnalyze_FloorDivYieldsInt(t *testing.T) {
	res := analyzeSource(t, "z = 7 // 2\n")
	assign := res.Module.Body[0].(*ast.Assign)
	if assign.Value.ResolvedType().Kind != ast.KInt {
		t.Fatalf("expected `//` to yield int, got %s", assign.Value.ResolvedType())
	}
}

func TestAnalyze_UnknownModule(t *testing.T) {
	res := analyzeSource(t, "import jsonn\nx = jsonn.dumps(1)\n")
	if !res.Diags.HasErrors() {
		t.Fatalf("expected an unknown-module error")
	}
	found := false
	for _, d := range res.Diags.All() {
		if strings.Contains(d.Message, "unknown module") {
			found = true
			if len(d.Notes) == 0 || !strings.Contains(d.Notes[0], "json") {
				t.Errorf("expected a did-you-mean note pointing at a real module, got %v", d.Notes)
			}
		}
	}
	if !found {
		t.Fatalf("no unknown-module diagnostic among: %v", res.Diags.All())
	}
}

func TestAnalyze_UnknownNameInKnownModule(t *testing.T) {
	res := analyzeSource(t, "import json\nx = json.dump(1)\n")
	if !res.Diags.HasErrors() {
		t.Fatalf("expected an unknown-name error for json.dump (real name is dumps)")
	}
}

func TestAnalyze_UndefinedName(t *testing.T) {
	res := analyzeSource(t, "y = x + 1\n")
	if !res.Diags.HasErrors() {
		t.Fatalf("expected an undefined-name error")
	}
}

func TestAnalyze_ContainerJoin(t *testing.T) {
	res := analyzeSource(t, "xs = [1, 2.5, 3]\n")
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Diags.All())
	}
	assign := res.Module.Body[0].(*ast.Assign)
	lt := assign.Value.ResolvedType()
	if lt.Kind != ast.KList || lt.Elem == nil || lt.Elem.Kind != ast.KFloat {
		t.Fatalf("expected List[float] from joining int/float literals, got %s", lt)
	}
}

func TestAnalyze_EmptyContainerWithoutContextFlagged(t *testing.T) {
	res := analyzeSource(t, "xs = []\n")
	if !res.Diags.HasErrors() {
		t.Fatalf("expected empty-list-without-context to be flagged")
	}
}

func TestAnalyze_AugAssignAcceptsStrAndInt(t *testing.T) {
	res := analyzeSource(t, "s = 'x'\ns += 'y'\nn = 1\nn += 2\n")
	if res.Diags.HasErrors() {
		t.Fatalf("expected str/int += to be accepted, got: %v", res.Diags.All())
	}
}

func TestAnalyze_FunctionReturnTypeChecked(t *testing.T) {
	res := analyzeSource(t, "def f() -> int:\n    return 'oops'\n")
	if !res.Diags.HasErrors() {
		t.Fatalf("expected a return-type mismatch error")
	}
}

func TestAnalyze_ForLoopBindsElementType(t *testing.T) {
	res := analyzeSource(t, "xs = [1, 2, 3]\nfor v in xs:\n    y = v + 1\n")
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Diags.All())
	}
}
