package metrics

import (
	"math"

	"github.com/san-kum/heroviz/internal/cloud"
)

// MaxOverlap is the deepest penetration between any two bodies.
func MaxOverlap(bodies []cloud.Body) float64 {
	worst := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := &bodies[i], &bodies[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			worst = math.Max(worst, a.R+b.R-d)
		}
	}
	return worst
}

// Separation is the fraction of frames in which no pair overlapped by more
// than the tolerance.
type Separation struct {
	name       string
	tolerance  float64
	violations int
	samples    int
	worst      float64
}

func NewSeparation(tolerance float64) *Separation {
	return &Separation{
		name:      "separation",
		tolerance: tolerance,
	}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(snap Snapshot) {
	s.samples++
	overlap := MaxOverlap(snap.Bodies)
	s.worst = math.Max(s.worst, overlap)
	if overlap > s.tolerance {
		s.violations++
	}
}

func (s *Separation) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Separation) Worst() float64 { return s.worst }

func (s *Separation) Reset() {
	s.violations = 0
	s.samples = 0
	s.worst = 0
}
