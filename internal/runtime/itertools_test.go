package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestItertoolsCombinationsCount(t *testing.T) {
	elems := intList(1, 2, 3, 4)
	out, err := itertoolsCombinations(context.Background(), []value.Value{elems, value.Int(2)})
	require.NoError(t, err)
	// C(4,2) = 6
	assert.Equal(t, 6, out.List.Len())

	first := out.List.Elems[0].List.Elems
	assert.Equal(t, int64(1), first[0].Int)
	assert.Equal(t, int64(2), first[1].Int)
}

func TestItertoolsPermutationsCount(t *testing.T) {
	elems := intList(1, 2, 3)
	out, err := itertoolsPermutations(context.Background(), []value.Value{elems, value.Int(2)})
	require.NoError(t, err)
	// P(3,2) = 6
	assert.Equal(t, 6, out.List.Len())
}

func TestItertoolsPermutationsZeroLength(t *testing.T) {
	elems := intList(1, 2, 3)
	out, err := itertoolsPermutations(context.Background(), []value.Value{elems, value.Int(0)})
	require.NoError(t, err)
	require.Equal(t, 1, out.List.Len())
	assert.Equal(t, 0, out.List.Elems[0].List.Len())
}

func TestItertoolsCombinationsRTooLarge(t *testing.T) {
	elems := intList(1, 2)
	out, err := itertoolsCombinations(context.Background(), []value.Value{elems, value.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.List.Len())
}
