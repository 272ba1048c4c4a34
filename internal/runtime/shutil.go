// shutil backs SPEC_FULL.md's supplemented shutil module
// (copyfile/rmtree), over stdlib os/io since the pack's filesystem
// work (io.go, path.go) already goes through plain os calls rather
// than a higher-level filesystem library.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerShutil(r *Registry) {
	r.register("shutil", map[string]Fn{
		"copyfile": shutilCopyfile,
		"rmtree":   shutilRmtree,
	})
}

func shutilCopyfile(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("copyfile takes 2 arguments")
	}
	src, err := os.Open(args[0].Str)
	if err != nil {
		return value.Bool(false), nil
	}
	defer src.Close()
	dst, err := os.Create(args[1].Str)
	if err != nil {
		return value.Bool(false), nil
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return value.Bool(false), nil
	}
	return value.Bool(true), nil
}

func shutilRmtree(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("rmtree takes 1 argument")
	}
	if err := os.RemoveAll(args[0].Str); err != nil {
		return value.Bool(false), nil
	}
	return value.Bool(true), nil
}
