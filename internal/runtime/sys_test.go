package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestSysPlatformVersionMaxsizeAreNonEmpty(t *testing.T) {
	ctx := context.Background()

	p, err := sysPlatform(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Str)

	v, err := sysVersion(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, v.Str)

	m, err := sysMaxsize(ctx, nil)
	require.NoError(t, err)
	assert.NotZero(t, m.Int)
}

func TestSysExitReturnsSentinelError(t *testing.T) {
	_, err := sysExit(context.Background(), []value.Value{value.Int(3)})
	require.Error(t, err)
	se, ok := err.(*SysExit)
	require.True(t, ok, "expected *SysExit, got %T", err)
	assert.Equal(t, int64(3), se.Code)
}
