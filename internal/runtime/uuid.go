// uuid backs spec.md §4.5's uuid module (uuid4), using crypto/rand
// plus manual RFC 4122 version/variant bit-setting — no UUID library
// appears anywhere in the example pack, so this is hand-rolled per the
// RFC rather than fabricated as a dependency.
package runtime

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerUUID(r *Registry) {
	r.register("uuid", map[string]Fn{
		"uuid4": uuidUUID4,
	})
}

func uuidUUID4(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("uuid4 takes no arguments")
	}
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return value.Value{}, err
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant RFC 4122
	s := fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	return value.Str(s), nil
}
