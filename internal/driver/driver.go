// Package driver orchestrates the full pipeline spec.md §2 describes —
// lex -> parse -> sema -> codegen -> optimize -> emit/run — behind a
// single entry point, grounded on the teacher's pkgs/engine.Engine: one
// type that owns every phase's wiring so the CLI only has to build
// Options and call Compile.
package driver

import (
	"context"
	"fmt"
	"os"

	"github.com/aledsdavies/pycc/internal/codegen"
	"github.com/aledsdavies/pycc/internal/diag"
	"github.com/aledsdavies/pycc/internal/interp"
	"github.com/aledsdavies/pycc/internal/ir"
	"github.com/aledsdavies/pycc/internal/optimize"
	"github.com/aledsdavies/pycc/internal/parser"
	"github.com/aledsdavies/pycc/internal/profiling"
	"github.com/aledsdavies/pycc/internal/sema"
)

// Emit selects the --emit target. obj/asm/ir all render the identical
// IR dump, since no native backend is wired (see SPEC_FULL.md §4.4/§2)
// — exe runs the program through internal/interp instead of writing a
// binary.
type Emit string

const (
	EmitObj Emit = "obj"
	EmitAsm Emit = "asm"
	EmitIR  Emit = "ir"
	EmitExe Emit = "exe"
)

// Options configures one Compile invocation, mirroring the CLI flags in
// SPEC_FULL.md §6 (`pycc <source.py> [-o <out>] [-O{0,1,2}] [--emit=...]`).
type Options struct {
	SourcePath string
	OutPath    string // "" means stdout for text emits; not used by exe
	Level      optimize.Level
	Emit       Emit
	ProfileOut string // non-empty enables profiling.Collector, written here on exit
	Stdout     func(string)
}

// Result reports what Compile produced, for the CLI to translate into
// an exit code and any final messages.
type Result struct {
	Diags    diag.Bag
	ExitCode int
}

// Compile runs the full pipeline for opts.SourcePath. It never panics on
// a malformed source program — every phase's failure is folded into
// Result.Diags and reported via the driver's own exit-code contract
// (spec.md §4.6: 0 success, 1 compile error, 2 internal error).
func Compile(ctx context.Context, opts Options) Result {
	src, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		var bag diag.Bag
		bag.Add(diag.New(diag.SeverityError, diag.CodeInternal, diag.Location{File: opts.SourcePath}, "cannot read source: %v", err))
		return Result{Diags: bag, ExitCode: diag.ExitCode(&bag)}
	}

	tree := parser.Parse(opts.SourcePath, string(src))
	if tree.HasErrors() {
		return Result{Diags: tree.Diags, ExitCode: diag.ExitCode(&tree.Diags)}
	}

	result := sema.Analyze(tree.Module, sema.NewModuleRegistry())
	if result.Diags.HasErrors() {
		return Result{Diags: result.Diags, ExitCode: diag.ExitCode(&result.Diags)}
	}

	prog := codegen.Lower(result.Module, result.Imports)
	prog = optimize.Run(prog, opts.Level)

	switch opts.Emit {
	case EmitIR, EmitAsm, EmitObj:
		return Result{Diags: result.Diags, ExitCode: writeIRDump(prog, opts)}
	default:
		return Result{Diags: result.Diags, ExitCode: runProgram(ctx, prog, opts)}
	}
}

func writeIRDump(prog *ir.Program, opts Options) int {
	text := ir.Dump(prog)
	if opts.OutPath == "" {
		fmt.Print(text)
		return 0
	}
	if err := os.WriteFile(opts.OutPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "pycc: cannot write %s: %v\n", opts.OutPath, err)
		return 2
	}
	return 0
}

func runProgram(ctx context.Context, prog *ir.Program, opts Options) int {
	it := interp.New(prog)
	if opts.Stdout != nil {
		it.Stdout = opts.Stdout
	}
	var collector *profiling.Collector
	if opts.ProfileOut != "" {
		collector = profiling.NewCollector()
		it.Profiler = collector
	}

	exitCode, err := it.Run(ctx, prog)
	if collector != nil {
		if werr := collector.WriteProfraw(opts.ProfileOut); werr != nil {
			fmt.Fprintf(os.Stderr, "pycc: cannot write profile: %v\n", werr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pycc: runtime error: %v\n", err)
		return exitCode
	}
	return exitCode
}
