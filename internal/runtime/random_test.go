package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestRandomSeedMakesRandomDeterministic(t *testing.T) {
	ctx := context.Background()

	_, err := randomSeed(ctx, []value.Value{value.Int(42)})
	require.NoError(t, err)
	a, err := randomRandom(ctx, nil)
	require.NoError(t, err)

	_, err = randomSeed(ctx, []value.Value{value.Int(42)})
	require.NoError(t, err)
	b, err := randomRandom(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Float, b.Float)
}

func TestRandomRandintWithinBounds(t *testing.T) {
	ctx := context.Background()
	_, err := randomSeed(ctx, []value.Value{value.Int(1)})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		v, err := randomRandint(ctx, []value.Value{value.Int(5), value.Int(10)})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Int, int64(5))
		assert.LessOrEqual(t, v.Int, int64(10))
	}
}

func TestRandomRandintRejectsInvertedRange(t *testing.T) {
	_, err := randomRandint(context.Background(), []value.Value{value.Int(10), value.Int(5)})
	assert.Error(t, err)
}
