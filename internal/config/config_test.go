package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pycc.yaml")
	contents := "optimize: \"2\"\nemit: ir\ncoverage:\n  phases:\n    - sema\n    - codegen\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", cfg.Optimize)
	assert.Equal(t, "ir", cfg.Emit)
	assert.Equal(t, []string{"sema", "codegen"}, cfg.Coverage.Phases)
}

func TestLoadMalformedYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pycc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("optimize: [this is not a scalar"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvPassthroughOnlyReportsSetVars(t *testing.T) {
	t.Setenv("PYCC_BUILD_DIR", "/tmp/build")
	env := EnvPassthrough()
	assert.Equal(t, "/tmp/build", env["PYCC_BUILD_DIR"])
	_, ok := env["PYCC_COVERAGE_MIN"]
	assert.False(t, ok)
}
