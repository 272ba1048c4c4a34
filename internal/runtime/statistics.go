// statistics backs SPEC_FULL.md's supplemented statistics module
// (mean/median/stdev), hand-computed from the list data — the pack's
// numeric work (internal/value's Less/SortList) is all in plain
// arithmetic too, with no dedicated stats library anywhere in the pack.
package runtime

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerStatistics(r *Registry) {
	r.register("statistics", map[string]Fn{
		"mean":   statisticsMean,
		"median": statisticsMedian,
		"stdev":  statisticsStdev,
	})
}

func floatsOf(v value.Value) ([]float64, error) {
	elems := v.List.Elems
	out := make([]float64, len(elems))
	for i, e := range elems {
		switch e.Kind {
		case value.KInt:
			out[i] = float64(e.Int)
		case value.KFloat:
			out[i] = e.Float
		default:
			return nil, fmt.Errorf("statistics: non-numeric element")
		}
	}
	return out, nil
}

func statisticsMean(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("mean takes 1 argument")
	}
	xs, err := floatsOf(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(xs) == 0 {
		return value.Value{}, fmt.Errorf("mean requires at least one data point")
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return value.Float(sum / float64(len(xs))), nil
}

func statisticsMedian(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("median takes 1 argument")
	}
	xs, err := floatsOf(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(xs) == 0 {
		return value.Value{}, fmt.Errorf("median requires at least one data point")
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return value.Float(sorted[n/2]), nil
	}
	return value.Float((sorted[n/2-1] + sorted[n/2]) / 2), nil
}

func statisticsStdev(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("stdev takes 1 argument")
	}
	xs, err := floatsOf(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(xs) < 2 {
		return value.Value{}, fmt.Errorf("stdev requires at least two data points")
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return value.Float(math.Sqrt(sq / float64(len(xs)-1))), nil
}
