package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func floatList(xs ...float64) value.Value {
	elems := make([]value.Value, len(xs))
	for i, x := range xs {
		elems[i] = value.Float(x)
	}
	return value.Value{Kind: value.KList, List: value.NewList(elems...)}
}

func TestStatisticsMean(t *testing.T) {
	mean, err := statisticsMean(context.Background(), []value.Value{floatList(1, 2, 3, 4)})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, mean.Float, 1e-9)
}

func TestStatisticsMedianOddAndEven(t *testing.T) {
	odd, err := statisticsMedian(context.Background(), []value.Value{floatList(1, 3, 2)})
	require.NoError(t, err)
	assert.InDelta(t, 2, odd.Float, 1e-9)

	even, err := statisticsMedian(context.Background(), []value.Value{floatList(1, 2, 3, 4)})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, even.Float, 1e-9)
}

func TestStatisticsStdevSampleVariance(t *testing.T) {
	// population [2, 4, 4, 4, 5, 5, 7, 9] has sample stdev 2.138...
	v, err := statisticsStdev(context.Background(), []value.Value{floatList(2, 4, 4, 4, 5, 5, 7, 9)})
	require.NoError(t, err)
	assert.InDelta(t, 2.1380899, v.Float, 1e-6)
}

func TestStatisticsStdevRequiresTwoPoints(t *testing.T) {
	_, err := statisticsStdev(context.Background(), []value.Value{floatList(1)})
	assert.Error(t, err)
}

func TestStatisticsMeanRejectsEmpty(t *testing.T) {
	_, err := statisticsMean(context.Background(), []value.Value{floatList()})
	assert.Error(t, err)
}
