package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestShlexSplitBasic(t *testing.T) {
	got, err := shlexSplit(context.Background(), []value.Value{value.Str("one two  three")})
	require.NoError(t, err)
	var words []string
	for _, e := range got.List.Elems {
		words = append(words, e.Str)
	}
	assert.Equal(t, []string{"one", "two", "three"}, words)
}

func TestShlexSplitQuotedGroupsIntoOneToken(t *testing.T) {
	got, err := shlexSplit(context.Background(), []value.Value{value.Str(`one "two three" four`)})
	require.NoError(t, err)
	var words []string
	for _, e := range got.List.Elems {
		words = append(words, e.Str)
	}
	assert.Equal(t, []string{"one", "two three", "four"}, words)
}

func TestShlexSplitBackslashEscape(t *testing.T) {
	got, err := shlexSplit(context.Background(), []value.Value{value.Str(`a\ b c`)})
	require.NoError(t, err)
	var words []string
	for _, e := range got.List.Elems {
		words = append(words, e.Str)
	}
	assert.Equal(t, []string{"a b", "c"}, words)
}
