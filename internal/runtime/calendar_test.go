package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestCalendarIsleap(t *testing.T) {
	ctx := context.Background()
	cases := map[int64]bool{
		2000: true,
		1900: false,
		2024: true,
		2023: false,
	}
	for year, want := range cases {
		got, err := calendarIsleap(ctx, []value.Value{value.Int(year)})
		require.NoError(t, err)
		assert.Equal(t, want, got.Bool, "year %d", year)
	}
}

func TestCalendarMonthrangeFebruary(t *testing.T) {
	ctx := context.Background()
	leap, err := calendarMonthrange(ctx, []value.Value{value.Int(2024), value.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(29), leap.Tuple[1].Int)

	nonLeap, err := calendarMonthrange(ctx, []value.Value{value.Int(2023), value.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(28), nonLeap.Tuple[1].Int)
}

func TestCalendarMonthrangeWeekdayMondayIsZero(t *testing.T) {
	// 2024-01-01 was a Monday.
	got, err := calendarMonthrange(context.Background(), []value.Value{value.Int(2024), value.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Tuple[0].Int)
}
