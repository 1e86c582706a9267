package metrics

import (
	"math"

	"github.com/san-kum/heroviz/internal/cloud"
)

// TotalMomentum is Σ m·v over bodies.
func TotalMomentum(bodies []cloud.Body) (px, py float64) {
	for i := range bodies {
		px += bodies[i].Mass * bodies[i].VX
		py += bodies[i].Mass * bodies[i].VY
	}
	return px, py
}

type Momentum struct {
	name    string
	sum     float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s Snapshot) {
	px, py := TotalMomentum(s.Bodies)
	m.sum += math.Hypot(px, py)
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.sum = 0
	m.samples = 0
}
