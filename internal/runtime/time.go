// time backs spec.md §4.5's time module, a thin wrapper over stdlib
// time — no pack library covers wall/monotonic clocks.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aledsdavies/pycc/internal/value"
)

var processStart = time.Now()

func registerTime(r *Registry) {
	r.register("time", map[string]Fn{
		"time":         timeTime,
		"time_ns":      timeTimeNs,
		"monotonic":    timeMonotonic,
		"perf_counter": timeMonotonic,
		"sleep":        timeSleep,
	})
}

func timeTime(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("time takes no arguments")
	}
	return value.Float(float64(time.Now().UnixNano()) / 1e9), nil
}

func timeTimeNs(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("time_ns takes no arguments")
	}
	return value.Int(time.Now().UnixNano()), nil
}

func timeMonotonic(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("monotonic takes no arguments")
	}
	return value.Float(time.Since(processStart).Seconds()), nil
}

func timeSleep(ctx context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("sleep takes 1 argument")
	}
	d := time.Duration(args[0].Float * float64(time.Second))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		return value.Value{}, ctx.Err()
	}
	return value.None(), nil
}
