package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/optimize"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.py")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCompileSuccessExitsZero(t *testing.T) {
	path := writeSource(t, "x = 1\ny = 2\nz = x + y\n")
	var lines []string
	res := Compile(context.Background(), Options{
		SourcePath: path,
		Level:      optimize.O1,
		Emit:       EmitExe,
		Stdout:     func(s string) { lines = append(lines, s) },
	})
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.Diags.HasErrors())
}

func TestCompileParseErrorReportsExitCodeOne(t *testing.T) {
	path := writeSource(t, "x = 1 $ 2\n")
	res := Compile(context.Background(), Options{
		SourcePath: path,
		Level:      optimize.O1,
		Emit:       EmitExe,
	})
	assert.Equal(t, 1, res.ExitCode)
	assert.True(t, res.Diags.HasErrors())
}

func TestCompileSemaErrorReportsExitCodeOne(t *testing.T) {
	path := writeSource(t, "import jsonn\nx = jsonn.dumps(1)\n")
	res := Compile(context.Background(), Options{
		SourcePath: path,
		Level:      optimize.O1,
		Emit:       EmitExe,
	})
	assert.Equal(t, 1, res.ExitCode)
	assert.True(t, res.Diags.HasErrors())
}

func TestCompileMissingFileReportsInternalError(t *testing.T) {
	res := Compile(context.Background(), Options{
		SourcePath: filepath.Join(t.TempDir(), "missing.py"),
		Level:      optimize.O1,
		Emit:       EmitExe,
	})
	assert.Equal(t, 2, res.ExitCode)
	assert.True(t, res.Diags.HasErrors())
}

func TestCompileEmitIRWritesToOutPath(t *testing.T) {
	src := writeSource(t, "x = 1\ny = 2\nz = x + y\n")
	outPath := filepath.Join(t.TempDir(), "out.ir")
	res := Compile(context.Background(), Options{
		SourcePath: src,
		OutPath:    outPath,
		Level:      optimize.O1,
		Emit:       EmitIR,
	})
	assert.Equal(t, 0, res.ExitCode)
	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEmpty(t, contents)
}
