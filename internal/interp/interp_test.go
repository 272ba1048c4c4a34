package interp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/codegen"
	"github.com/aledsdavies/pycc/internal/ir"
	"github.com/aledsdavies/pycc/internal/parser"
	"github.com/aledsdavies/pycc/internal/sema"
)

func compile(t *testing.T, src string) *ir.Program {
	t.Helper()
	tree := parser.Parse("<test>", src)
	require.False(t, tree.HasErrors(), "parse errors: %v", tree.Diags.All())
	res := sema.Analyze(tree.Module, sema.NewModuleRegistry())
	require.False(t, res.Diags.HasErrors(), "sema errors: %v", res.Diags.All())
	return codegen.Lower(res.Module, res.Imports)
}

// TestSysExitAtTopLevelActsLikeExit verifies spec.md §5's "_exit(n) at
// the top level of main" discipline: a sys.exit call directly in the
// top-level statement list stops the program and becomes the process
// exit code, skipping any statements after it.
func TestSysExitAtTopLevelActsLikeExit(t *testing.T) {
	prog := compile(t, "import sys\nsys.exit(7)\nx = 1\n")
	it := New(prog)
	code, err := it.Run(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

// TestSysExitInsideFunctionIsRecoverable verifies spec.md §5's
// "recoverable mark-and-return" discipline: a sys.exit call nested
// inside a function call does not terminate the caller; execution
// continues past it.
func TestSysExitInsideFunctionIsRecoverable(t *testing.T) {
	prog := compile(t, ""+
		"def f() -> int:\n"+
		"    import sys\n"+
		"    sys.exit(9)\n"+
		"    return 1\n"+
		"y = f()\n")
	it := New(prog)
	code, err := it.Run(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.NotNil(t, it.LastSysExit)
	assert.Equal(t, int64(9), it.LastSysExit.Code)
}
