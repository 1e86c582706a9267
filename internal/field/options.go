package field

// ReferenceArea is the CSS-pixel area the default density was tuned for.
const ReferenceArea = 1280 * 720

// Options are the tuning constants of a Field. Distances and speeds are in
// CSS pixels; the field scales them by the device-pixel ratio.
type Options struct {
	Density  float64 // particles per ReferenceArea of CSS pixels
	MinCount int
	MaxCount int

	Speed    float64 // initial per-axis speed bound
	MaxSpeed float64

	RadiusMin, RadiusMax float64
	AlphaMin, AlphaMax   float64
	HueA, HueB           float64

	LinkDistance float64
	LinkAlpha    float64
	LinkBoost    float64 // extra link distance when the pointer is at a midpoint
	BoostRadius  float64

	RepelRadius   float64
	RepelStrength float64

	MaxDPR float64
	Glow   bool
}

func DefaultOptions() Options {
	return Options{
		Density:       90,
		MinCount:      50,
		MaxCount:      140,
		Speed:         0.3,
		MaxSpeed:      1.6,
		RadiusMin:     1.2,
		RadiusMax:     2.2,
		AlphaMin:      0.6,
		AlphaMax:      0.9,
		HueA:          205,
		HueB:          165,
		LinkDistance:  110,
		LinkAlpha:     0.18,
		LinkBoost:     50,
		BoostRadius:   140,
		RepelRadius:   120,
		RepelStrength: 0.27,
		MaxDPR:        2,
		Glow:          true,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MinCount < 0 {
		o.MinCount = 0
	}
	if o.MaxCount < o.MinCount {
		o.MaxCount = o.MinCount
	}
	if o.RadiusMax < o.RadiusMin {
		o.RadiusMin, o.RadiusMax = o.RadiusMax, o.RadiusMin
	}
	if o.AlphaMax < o.AlphaMin {
		o.AlphaMin, o.AlphaMax = o.AlphaMax, o.AlphaMin
	}
	if o.MaxSpeed <= 0 {
		o.MaxSpeed = d.MaxSpeed
	}
	if o.MaxDPR <= 0 {
		o.MaxDPR = d.MaxDPR
	}
	return o
}
