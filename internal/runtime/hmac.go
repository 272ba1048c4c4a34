// hmac backs spec.md §4.5's hmac module (hmac.digest), using stdlib
// crypto/hmac over crypto/sha256 — same justification as hashlib.go,
// no alternative MAC library exists in the pack.
package runtime

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerHmac(r *Registry) {
	r.register("hmac", map[string]Fn{
		"digest": hmacDigest,
	})
}

func hmacDigest(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, fmt.Errorf("digest takes 3 arguments")
	}
	if args[2].Str != "sha256" {
		return value.Value{}, fmt.Errorf("digest: unsupported digest %q", args[2].Str)
	}
	mac := hmac.New(sha256.New, bytesOf(args[0]))
	mac.Write(bytesOf(args[1]))
	return value.Bytes(mac.Sum(nil)), nil
}
