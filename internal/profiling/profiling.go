// Package profiling implements spec.md §3/§4.6's profile counter block:
// per-function hit counts collected during a run and written at
// process exit to a `.profraw` file. Real LLVM instrumented-profile
// parsing is out of reach for this exercise (no LLVM profiling library
// exists in the retrieved pack — see DESIGN.md), so the counter block
// is serialized with github.com/fxamacker/cbor/v2 instead of the real
// binary indexed-profile format; the `.profraw` extension documents the
// intent while the wire format is this package's own.
package profiling

import (
	"os"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Counter is one function's hit count in a CounterBlock.
type Counter struct {
	Function string `cbor:"function"`
	Hits     uint64 `cbor:"hits"`
}

// CounterBlock is the full per-run profile, keyed by function name.
type CounterBlock struct {
	Counters []Counter `cbor:"counters"`
}

// Collector accumulates hit counts during interp.Run; safe for
// concurrent use even though the interpreter itself is single-threaded,
// since a future concurrent backend could share one.
type Collector struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func NewCollector() *Collector {
	return &Collector{counts: make(map[string]uint64)}
}

// Hit records one invocation of fn.
func (c *Collector) Hit(fn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[fn]++
}

// Block snapshots the current counts into a CounterBlock, sorted by
// function name for deterministic output.
func (c *Collector) Block() CounterBlock {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	block := CounterBlock{Counters: make([]Counter, 0, len(names))}
	for _, name := range names {
		block.Counters = append(block.Counters, Counter{Function: name, Hits: c.counts[name]})
	}
	return block
}

// WriteProfraw serializes the collector's current counts to path as
// CBOR, matching spec.md's "written at process exit" contract.
func (c *Collector) WriteProfraw(path string) error {
	b, err := cbor.Marshal(c.Block())
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
