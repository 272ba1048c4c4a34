// secrets backs spec.md §4.5's secrets module (CSPRNG token
// generation), using stdlib crypto/rand — the pack carries no
// alternative CSPRNG, and crypto/rand is the idiomatic Go source of
// secure randomness.
package runtime

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerSecrets(r *Registry) {
	r.register("secrets", map[string]Fn{
		"token_bytes":   secretsTokenBytes,
		"token_hex":     secretsTokenHex,
		"token_urlsafe": secretsTokenURLSafe,
	})
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func secretsTokenBytes(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("token_bytes takes 1 argument")
	}
	b, err := randomBytes(int(args[0].Int))
	if err != nil {
		return value.Value{}, err
	}
	return value.Bytes(b), nil
}

func secretsTokenHex(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("token_hex takes 1 argument")
	}
	b, err := randomBytes(int(args[0].Int))
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(hex.EncodeToString(b)), nil
}

func secretsTokenURLSafe(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("token_urlsafe takes 1 argument")
	}
	b, err := randomBytes(int(args[0].Int))
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(base64.RawURLEncoding.EncodeToString(b)), nil
}
