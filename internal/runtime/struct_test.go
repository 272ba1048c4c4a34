package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestStructCalcsize(t *testing.T) {
	ctx := context.Background()
	size, err := structCalcsize(ctx, []value.Value{value.Str("<ihb")})
	require.NoError(t, err)
	assert.Equal(t, int64(4+2+1), size.Int)
}

func TestStructPackUnpackRoundTrip(t *testing.T) {
	ctx := context.Background()
	format := value.Str("<ihb")
	args := value.Value{Kind: value.KList, List: value.NewList(
		value.Int(1000), value.Int(-7), value.Int(9),
	)}

	packed, err := structPack(ctx, []value.Value{format, args})
	require.NoError(t, err)
	require.Equal(t, value.KBytes, packed.Kind)
	assert.Len(t, packed.Bytes, 7)

	unpacked, err := structUnpack(ctx, []value.Value{format, packed})
	require.NoError(t, err)
	require.Len(t, unpacked.List.Elems, 3)
	assert.Equal(t, int64(1000), unpacked.List.Elems[0].Int)
	assert.Equal(t, int64(-7), unpacked.List.Elems[1].Int)
	assert.Equal(t, int64(9), unpacked.List.Elems[2].Int)
}

func TestStructUnsupportedFormatCode(t *testing.T) {
	_, _, err := parseStructFormat("<z")
	assert.Error(t, err)
}
