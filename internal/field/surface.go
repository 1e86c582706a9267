package field

import "image/color"

// Surface is the immediate-mode drawing target of a Field, in device pixels.
type Surface interface {
	Clear()
	// FillGlow fills a radial gradient from c at (cx, cy) to transparent at radius.
	FillGlow(cx, cy, radius float64, c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
}
