// Package config loads the optional .pycc.yaml defaults file SPEC_FULL.md
// §6 adds as the ambient configuration layer the distilled spec.md
// omits. CLI flags always override a loaded file; a missing file is not
// an error, since every setting it covers has a built-in default.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the subset of .pycc.yaml keys the driver consults.
type Config struct {
	Optimize string `yaml:"optimize"` // "0", "1", "2"
	Emit     string `yaml:"emit"`     // "obj", "asm", "ir", "exe"
	Coverage struct {
		Phases     []string `yaml:"phases"`
		OnlyPaths  []string `yaml:"only_paths"`
	} `yaml:"coverage"`
}

// Default returns the built-in defaults, used when no file is found.
func Default() Config {
	return Config{Optimize: "1", Emit: "exe"}
}

// Load reads path (typically ".pycc.yaml") and merges it over Default().
// A missing file returns Default() with no error; a malformed file is
// reported so the CLI can fail fast rather than silently ignore it.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EnvPassthrough collects the coverage-tool environment variables
// SPEC_FULL.md §6 says are read verbatim and surfaced (not validated)
// for `pycc --debug` troubleshooting output.
func EnvPassthrough() map[string]string {
	names := []string{
		"PYCC_BUILD_DIR",
		"PYCC_COVERAGE_MIN",
		"PYCC_COVERAGE_PHASES",
		"PYCC_COVERAGE_ONLY_PATHS",
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		if v, ok := os.LookupEnv(n); ok {
			out[n] = v
		}
	}
	return out
}
