// Package metrics measures the effects frame by frame: body energy and
// momentum, overlap violations and link density.
package metrics

import (
	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/field"
)

// Snapshot is what a metric sees of one frame.
type Snapshot struct {
	Frame     int
	Bodies    []cloud.Body
	Particles []field.Particle
	Links     int
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Default returns the metric set used by the bench and the HUDs.
func Default() []Metric {
	return []Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewSeparation(0.5),
		NewLinkDensity(),
	}
}

// Values collects the current value of every metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
