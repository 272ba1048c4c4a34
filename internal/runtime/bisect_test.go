package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func intList(xs ...int64) value.Value {
	elems := make([]value.Value, len(xs))
	for i, x := range xs {
		elems[i] = value.Int(x)
	}
	return value.Value{Kind: value.KList, List: value.NewList(elems...)}
}

func TestBisectLeftRight(t *testing.T) {
	ctx := context.Background()
	l := intList(1, 3, 3, 3, 5)

	left, err := bisectLeft(ctx, []value.Value{l, value.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), left.Int)

	right, err := bisectRight(ctx, []value.Value{l, value.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), right.Int)
}

func TestInsortKeepsSortedOrder(t *testing.T) {
	ctx := context.Background()
	l := intList(1, 3, 5, 7)

	_, err := insortRight(ctx, []value.Value{l, value.Int(4)})
	require.NoError(t, err)

	var got []int64
	for _, e := range l.List.Elems {
		got = append(got, e.Int)
	}
	assert.Equal(t, []int64{1, 3, 4, 5, 7}, got)
}

func TestInsortLeftOfEqualElements(t *testing.T) {
	ctx := context.Background()
	l := intList(1, 3, 3, 5)

	_, err := insortLeft(ctx, []value.Value{l, value.Int(3)})
	require.NoError(t, err)

	var got []int64
	for _, e := range l.List.Elems {
		got = append(got, e.Int)
	}
	assert.Equal(t, []int64{1, 3, 3, 3, 5}, got)
}
