package metrics

import (
	"math"

	"github.com/san-kum/heroviz/internal/cloud"
)

// KineticEnergy is ½·m·v² summed over bodies.
func KineticEnergy(bodies []cloud.Body) float64 {
	e := 0.0
	for i := range bodies {
		e += 0.5 * bodies[i].Mass * bodies[i].Speed2()
	}
	return e
}

type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	current     float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s Snapshot) {
	e.current = KineticEnergy(s.Bodies)
	e.totalEnergy += e.current
	e.samples++
}

// Value is the mean kinetic energy over all observed frames.
func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Current() float64 { return e.current }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.current = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the first frame's
// kinetic energy. Without damping or dragging it should stay near zero.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s Snapshot) {
	energy := KineticEnergy(s.Bodies)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
