// io mirrors spec.md §4.5's io module: stdout writes and whole-file
// read/write, the only I/O surface this dialect subset exposes.
package runtime

import (
	"context"
	"fmt"
	"os"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerIO(r *Registry) {
	r.register("io", map[string]Fn{
		"write_stdout": ioWriteStdout,
		"write_file":   ioWriteFile,
		"read_file":    ioReadFile,
	})
}

func ioWriteStdout(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("write_stdout takes 1 argument")
	}
	fmt.Print(args[0].Str)
	return value.Value{Kind: value.KNone}, nil
}

func ioWriteFile(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("write_file takes 2 arguments")
	}
	err := os.WriteFile(args[0].Str, []byte(args[1].Str), 0o644)
	return value.Bool(err == nil), nil
}

func ioReadFile(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("read_file takes 1 argument")
	}
	b, err := os.ReadFile(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(string(b)), nil
}
