package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestCopyShallowSharesNestedList(t *testing.T) {
	inner := value.Value{Kind: value.KList, List: value.NewList(value.Int(1))}
	outer := value.Value{Kind: value.KList, List: value.NewList(inner)}

	shallow, err := copyShallow(context.Background(), []value.Value{outer})
	require.NoError(t, err)

	// Mutating the inner list through the copy is visible in the original,
	// since copy.copy only duplicates the top-level container.
	innerFromCopy, _ := shallow.List.Get(0)
	innerFromCopy.List.Append(value.Int(2))

	innerFromOriginal, _ := outer.List.Get(0)
	assert.Equal(t, 2, innerFromOriginal.List.Len())
}

func TestCopyDeepDoesNotShareNestedList(t *testing.T) {
	inner := value.Value{Kind: value.KList, List: value.NewList(value.Int(1))}
	outer := value.Value{Kind: value.KList, List: value.NewList(inner)}

	deep, err := copyDeep(context.Background(), []value.Value{outer})
	require.NoError(t, err)

	innerFromCopy, _ := deep.List.Get(0)
	innerFromCopy.List.Append(value.Int(2))

	innerFromOriginal, _ := outer.List.Get(0)
	assert.Equal(t, 1, innerFromOriginal.List.Len())
}

func TestCopyShallowDict(t *testing.T) {
	d := value.NewDict()
	d.Set(value.Str("a"), value.Int(1))
	original := value.Value{Kind: value.KDict, Dict: d}

	cp, err := copyShallow(context.Background(), []value.Value{original})
	require.NoError(t, err)

	cp.Dict.Set(value.Str("b"), value.Int(2))
	assert.Equal(t, 1, original.Dict.Len())
	assert.Equal(t, 2, cp.Dict.Len())
}
