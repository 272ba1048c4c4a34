// Command pycc-ast dumps the token stream or parsed AST of a pycc
// source file as JSON, for debugging the front end without running a
// full compile. Grounded on the teacher's cmd/devcmd-parser/main.go:
// stdlib flag package, explicit exit code constants, no cobra (this is
// a developer tool, not the shipped CLI).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/aledsdavies/pycc/internal/lexer"
	"github.com/aledsdavies/pycc/internal/parser"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitIOError = 2
)

func main() {
	var dumpTokens bool
	flag.BoolVar(&dumpTokens, "tokens", false, "Dump the token stream instead of the AST")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-tokens] <source.py>\n", os.Args[0])
		os.Exit(exitUsage)
	}

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(exitIOError)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if dumpTokens {
		toks, diags := lexer.New(path, string(src)).Tokenize()
		if err := enc.Encode(toks); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding tokens: %v\n", err)
			os.Exit(exitIOError)
		}
		for _, d := range diags.All() {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return
	}

	tree := parser.Parse(path, string(src))
	if err := enc.Encode(tree.Module); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding AST: %v\n", err)
		os.Exit(exitIOError)
	}
	for _, d := range tree.Diags.All() {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	os.Exit(exitSuccess)
}
