package cloud

// Layout selects how bodies are placed by Init.
type Layout string

const (
	LayoutRandom Layout = "random"
	LayoutRings  Layout = "rings"
)

// MinSize replaces non-positive body sizes so that mass never reaches zero.
const MinSize = 8.0

type Options struct {
	Damping        float64 // velocity multiplier per frame; 1 keeps all energy
	DragMultiplier float64
	InitialSpeed   float64
	RelaxRate      float64 // fraction of the remaining squash removed per frame
	Squash         float64
	MassPerSize    float64
	Iterations     int // positional correction passes per frame
	Tolerance      float64
	Layout         Layout
	Preserve       bool // keep relative positions on resize instead of re-initializing
}

func DefaultOptions() Options {
	return Options{
		Damping:        1,
		DragMultiplier: 1.5,
		InitialSpeed:   1.2,
		RelaxRate:      0.15,
		Squash:         0.15,
		MassPerSize:    1,
		Iterations:     16,
		Tolerance:      0.01,
		Layout:         LayoutRandom,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Damping <= 0 || o.Damping > 1 {
		o.Damping = d.Damping
	}
	if o.MassPerSize <= 0 {
		o.MassPerSize = d.MassPerSize
	}
	if o.RelaxRate < 0 || o.RelaxRate > 1 {
		o.RelaxRate = d.RelaxRate
	}
	if o.Squash < 0 || o.Squash >= 1 {
		o.Squash = d.Squash
	}
	if o.Iterations < 1 {
		o.Iterations = 1
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.Layout == "" {
		o.Layout = LayoutRandom
	}
	return o
}
