// stat backs spec.md §4.5's stat module (S_ISDIR/S_ISREG mode-bit
// tests), grounded on golang.org/x/sys/unix's S_IFMT family of
// constants, already in go.mod for the teacher's platform-specific
// syscall work.
package runtime

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerStat(r *Registry) {
	r.register("stat", map[string]Fn{
		"S_ISDIR": statIsDir,
		"S_ISREG": statIsReg,
	})
}

func statIsDir(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("S_ISDIR takes 1 argument")
	}
	return value.Bool(uint32(args[0].Int)&unix.S_IFMT == unix.S_IFDIR), nil
}

func statIsReg(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("S_ISREG takes 1 argument")
	}
	return value.Bool(uint32(args[0].Int)&unix.S_IFMT == unix.S_IFREG), nil
}
