// hashlib backs spec.md §4.5's hashlib module (sha256/md5 over str or
// bytes input, hex-encoded like CPython's `.hexdigest()`), using stdlib
// crypto/sha256 and crypto/md5 — the pack carries no alternative hash
// library.
package runtime

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerHashlib(r *Registry) {
	r.register("hashlib", map[string]Fn{
		"sha256": hashlibSHA256,
		"md5":    hashlibMD5,
	})
}

func bytesOf(v value.Value) []byte {
	if v.Kind == value.KBytes {
		return v.Bytes
	}
	return []byte(v.Str)
}

func hashlibSHA256(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("sha256 takes 1 argument")
	}
	sum := sha256.Sum256(bytesOf(args[0]))
	return value.Str(hex.EncodeToString(sum[:])), nil
}

func hashlibMD5(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("md5 takes 1 argument")
	}
	sum := md5.Sum(bytesOf(args[0]))
	return value.Str(hex.EncodeToString(sum[:])), nil
}
