// base64 and binascii back spec.md §4.5's byte-encoding modules, both
// using stdlib encoding/base64 and encoding/hex — no pack alternative
// exists for either codec.
package runtime

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerBase64(r *Registry) {
	r.register("base64", map[string]Fn{
		"b64encode": base64Encode,
		"b64decode": base64Decode,
	})
}

func registerBinascii(r *Registry) {
	r.register("binascii", map[string]Fn{
		"hexlify":   binasciiHexlify,
		"unhexlify": binasciiUnhexlify,
	})
}

func base64Encode(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("b64encode takes 1 argument")
	}
	return value.Bytes([]byte(base64.StdEncoding.EncodeToString(bytesOf(args[0])))), nil
}

func base64Decode(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("b64decode takes 1 argument")
	}
	b, err := base64.StdEncoding.DecodeString(string(bytesOf(args[0])))
	if err != nil {
		return value.Value{}, err
	}
	return value.Bytes(b), nil
}

func binasciiHexlify(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("hexlify takes 1 argument")
	}
	return value.Bytes([]byte(hex.EncodeToString(bytesOf(args[0])))), nil
}

func binasciiUnhexlify(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("unhexlify takes 1 argument")
	}
	b, err := hex.DecodeString(string(bytesOf(args[0])))
	if err != nil {
		return value.Value{}, err
	}
	return value.Bytes(b), nil
}
