package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorHitCounting(t *testing.T) {
	c := NewCollector()
	c.Hit("main")
	c.Hit("helper")
	c.Hit("main")
	c.Hit("main")

	block := c.Block()
	require.Len(t, block.Counters, 2)
	// Block sorts by function name, so "helper" precedes "main".
	assert.Equal(t, "helper", block.Counters[0].Function)
	assert.Equal(t, uint64(1), block.Counters[0].Hits)
	assert.Equal(t, "main", block.Counters[1].Function)
	assert.Equal(t, uint64(3), block.Counters[1].Hits)
}

func TestCollectorBlockOrderingIsDeterministic(t *testing.T) {
	c := NewCollector()
	for _, fn := range []string{"z", "a", "m", "a", "z"} {
		c.Hit(fn)
	}
	first := c.Block()
	second := c.Block()
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "m", "z"}, []string{
		first.Counters[0].Function, first.Counters[1].Function, first.Counters[2].Function,
	})
}

func TestWriteProfrawRoundTrip(t *testing.T) {
	c := NewCollector()
	c.Hit("fib")
	c.Hit("fib")

	path := filepath.Join(t.TempDir(), "out.profraw")
	require.NoError(t, c.WriteProfraw(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var block CounterBlock
	require.NoError(t, cbor.Unmarshal(raw, &block))
	require.Len(t, block.Counters, 1)
	assert.Equal(t, "fib", block.Counters[0].Function)
	assert.Equal(t, uint64(2), block.Counters[0].Hits)
}
