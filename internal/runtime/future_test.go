package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureAnnotationsIsEnabled(t *testing.T) {
	v, err := futureFlag(true)(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, v.Bool)
}

func TestFutureUnknownFeatureIsDisabled(t *testing.T) {
	v, err := futureFlag(false)(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, v.Bool)
}
