// getpass backs SPEC_FULL.md's supplemented getpass module
// (getuser), reading the OS username via os/user — stdlib's
// documented way to do this, no pack library wraps it.
package runtime

import (
	"context"
	"fmt"
	"os/user"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerGetpass(r *Registry) {
	r.register("getpass", map[string]Fn{
		"getuser": getpassGetuser,
	})
}

func getpassGetuser(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("getuser takes no arguments")
	}
	u, err := user.Current()
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(u.Username), nil
}
