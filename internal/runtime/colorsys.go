// colorsys backs SPEC_FULL.md's supplemented colorsys module
// (rgb_to_hsv/hsv_to_rgb), a direct port of the standard formula — no
// color-space library appears anywhere in the pack.
package runtime

import (
	"context"
	"fmt"
	"math"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerColorsys(r *Registry) {
	r.register("colorsys", map[string]Fn{
		"rgb_to_hsv": colorsysRGBToHSV,
		"hsv_to_rgb": colorsysHSVToRGB,
	})
}

func colorsysRGBToHSV(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, fmt.Errorf("rgb_to_hsv takes 3 arguments")
	}
	r, g, b := args[0].Float, args[1].Float, args[2].Float
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v := maxc
	if maxc == minc {
		return value.Tuple([]value.Value{value.Float(0), value.Float(0), value.Float(v)}), nil
	}
	delta := maxc - minc
	s := delta / maxc
	rc := (maxc - r) / delta
	gc := (maxc - g) / delta
	bc := (maxc - b) / delta
	var h float64
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h = math.Mod(h/6.0, 1.0)
	if h < 0 {
		h += 1.0
	}
	return value.Tuple([]value.Value{value.Float(h), value.Float(s), value.Float(v)}), nil
}

func colorsysHSVToRGB(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, fmt.Errorf("hsv_to_rgb takes 3 arguments")
	}
	h, s, v := args[0].Float, args[1].Float, args[2].Float
	if s == 0 {
		return value.Tuple([]value.Value{value.Float(v), value.Float(v), value.Float(v)}), nil
	}
	i := math.Floor(h * 6.0)
	f := h*6.0 - i
	p := v * (1.0 - s)
	q := v * (1.0 - s*f)
	t := v * (1.0 - s*(1.0-f))
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return value.Tuple([]value.Value{value.Float(r), value.Float(g), value.Float(b)}), nil
}
