package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestColorsysRGBToHSVPureRed(t *testing.T) {
	hsv, err := colorsysRGBToHSV(context.Background(), []value.Value{
		value.Float(1), value.Float(0), value.Float(0),
	})
	require.NoError(t, err)
	require.Len(t, hsv.Tuple, 3)
	assert.InDelta(t, 0, hsv.Tuple[0].Float, 1e-9)
	assert.InDelta(t, 1, hsv.Tuple[1].Float, 1e-9)
	assert.InDelta(t, 1, hsv.Tuple[2].Float, 1e-9)
}

func TestColorsysRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, g, b := 0.2, 0.6, 0.9
	hsv, err := colorsysRGBToHSV(ctx, []value.Value{value.Float(r), value.Float(g), value.Float(b)})
	require.NoError(t, err)

	rgb, err := colorsysHSVToRGB(ctx, hsv.Tuple)
	require.NoError(t, err)
	assert.InDelta(t, r, rgb.Tuple[0].Float, 1e-6)
	assert.InDelta(t, g, rgb.Tuple[1].Float, 1e-6)
	assert.InDelta(t, b, rgb.Tuple[2].Float, 1e-6)
}

func TestColorsysGrayscaleHasZeroSaturation(t *testing.T) {
	hsv, err := colorsysRGBToHSV(context.Background(), []value.Value{
		value.Float(0.5), value.Float(0.5), value.Float(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), hsv.Tuple[1].Float)
}
