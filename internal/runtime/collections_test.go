package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestCollectionsCounterTallies(t *testing.T) {
	words := value.Value{Kind: value.KList, List: value.NewList(
		value.Str("a"), value.Str("b"), value.Str("a"), value.Str("a"),
	)}
	counter, err := collectionsCounter(context.Background(), []value.Value{words})
	require.NoError(t, err)
	require.Equal(t, value.KHandle, counter.Kind)
	assert.Equal(t, "collections.Counter", counter.HandleKind)

	d := counter.Handle.(*value.Dict)
	n, ok := d.Get(value.Str("a"))
	require.True(t, ok)
	assert.Equal(t, int64(3), n.Int)
}

func TestCollectionsDefaultdictMissingKeyUsesFactory(t *testing.T) {
	ctx := context.Background()
	dd, err := collectionsDefaultdict(ctx, []value.Value{value.Str("list")})
	require.NoError(t, err)

	got, err := collectionsDefaultdictGet(ctx, []value.Value{dd, value.Str("missing")})
	require.NoError(t, err)
	require.Equal(t, value.KList, got.Kind)
	assert.Equal(t, 0, got.List.Len())

	// Second lookup of the same key returns the same zero value that was
	// stored on first access, not a fresh one.
	got.List.Append(value.Int(1))
	again, err := collectionsDefaultdictGet(ctx, []value.Value{dd, value.Str("missing")})
	require.NoError(t, err)
	assert.Equal(t, 1, again.List.Len())
}

func TestCollectionsDefaultdictSetOverridesFactory(t *testing.T) {
	ctx := context.Background()
	dd, err := collectionsDefaultdict(ctx, []value.Value{value.Str("int")})
	require.NoError(t, err)

	_, err = collectionsDefaultdictSet(ctx, []value.Value{dd, value.Str("x"), value.Int(42)})
	require.NoError(t, err)

	got, err := collectionsDefaultdictGet(ctx, []value.Value{dd, value.Str("x")})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Int)
}
