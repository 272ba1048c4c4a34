package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestHeapqPushPopOrdering(t *testing.T) {
	ctx := context.Background()
	heap := value.Value{Kind: value.KList, List: value.NewList()}

	for _, n := range []int64{5, 1, 4, 2, 8, 0} {
		_, err := heapqPush(ctx, []value.Value{heap, value.Int(n)})
		require.NoError(t, err)
	}

	var popped []int64
	for heap.List.Len() > 0 {
		v, err := heapqPop(ctx, []value.Value{heap})
		require.NoError(t, err)
		popped = append(popped, v.Int)
	}

	assert.Equal(t, []int64{0, 1, 2, 4, 5, 8}, popped)
}

func TestHeapqPopEmpty(t *testing.T) {
	heap := value.Value{Kind: value.KList, List: value.NewList()}
	_, err := heapqPop(context.Background(), []value.Value{heap})
	assert.Error(t, err)
}

func TestHeapqHeapify(t *testing.T) {
	ctx := context.Background()
	heap := value.Value{Kind: value.KList, List: value.NewList(
		value.Int(9), value.Int(3), value.Int(7), value.Int(1), value.Int(5),
	)}

	_, err := heapqHeapify(ctx, []value.Value{heap})
	require.NoError(t, err)

	var popped []int64
	for heap.List.Len() > 0 {
		v, err := heapqPop(ctx, []value.Value{heap})
		require.NoError(t, err)
		popped = append(popped, v.Int)
	}
	assert.Equal(t, []int64{1, 3, 5, 7, 9}, popped)
}
