package runtime

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

var uuid4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUID4FormatAndVersion(t *testing.T) {
	v, err := uuidUUID4(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, value.KStr, v.Kind)
	assert.Regexp(t, uuid4Pattern, v.Str)
}

func TestUUID4Uniqueness(t *testing.T) {
	a, err := uuidUUID4(context.Background(), nil)
	require.NoError(t, err)
	b, err := uuidUUID4(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Str, b.Str)
}
