package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

// TestArgparseDispatchesActionKinds mirrors e2e_argparse.py scenario 5:
// store_true/store_int/store must each type their dict entry
// differently, not come back as all-strings.
func TestArgparseDispatchesActionKinds(t *testing.T) {
	ctx := context.Background()

	p, err := argparseNew(ctx, nil)
	require.NoError(t, err)

	_, err = argparseAddArgument(ctx, []value.Value{p, value.Str("--verbose"), value.Str("store_true")})
	require.NoError(t, err)
	_, err = argparseAddArgument(ctx, []value.Value{p, value.Str("--count"), value.Str("store_int")})
	require.NoError(t, err)
	_, err = argparseAddArgument(ctx, []value.Value{p, value.Str("--name"), value.Str("store")})
	require.NoError(t, err)

	argv := value.Value{Kind: value.KList, List: value.NewList(
		value.Str("--verbose"), value.Str("--count"), value.Str("3"), value.Str("--name"), value.Str("bob"),
	)}
	d, err := argparseParseArgs(ctx, []value.Value{p, argv})
	require.NoError(t, err)

	verbose, ok := d.Dict.Get(value.Str("verbose"))
	require.True(t, ok)
	assert.Equal(t, value.Bool(true), verbose)

	count, ok := d.Dict.Get(value.Str("count"))
	require.True(t, ok)
	assert.Equal(t, value.Int(3), count)

	name, ok := d.Dict.Get(value.Str("name"))
	require.True(t, ok)
	assert.Equal(t, value.Str("bob"), name)
}

func TestArgparseAddArgumentDefaultsToStoreString(t *testing.T) {
	ctx := context.Background()

	p, err := argparseNew(ctx, nil)
	require.NoError(t, err)

	_, err = argparseAddArgument(ctx, []value.Value{p, value.Str("--name")})
	require.NoError(t, err)

	argv := value.Value{Kind: value.KList, List: value.NewList(value.Str("--name"), value.Str("alice"))}
	d, err := argparseParseArgs(ctx, []value.Value{p, argv})
	require.NoError(t, err)

	name, ok := d.Dict.Get(value.Str("name"))
	require.True(t, ok)
	assert.Equal(t, value.Str("alice"), name)
}
