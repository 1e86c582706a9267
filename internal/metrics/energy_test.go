package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/field"
)

func TestKineticEnergy(t *testing.T) {
	bodies := []cloud.Body{
		{Mass: 2, VX: 3, VY: 4},
		{Mass: 1, VX: -1},
	}

	if e := KineticEnergy(bodies); math.Abs(e-25.5) > 1e-9 {
		t.Errorf("expected energy 25.5, got %f", e)
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy()

	m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 1, VX: 1}}})
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 2, VX: 1}}})
	m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 2, VY: -1}}})
	if m.Value() != 0 {
		t.Errorf("same speed should not drift, got %f", m.Value())
	}

	m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 2, VX: 2}}})
	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected drift 3, got %f", m.Value())
	}
}

func TestMomentum(t *testing.T) {
	px, py := TotalMomentum([]cloud.Body{
		{Mass: 2, VX: 1, VY: 1},
		{Mass: 1, VX: -2, VY: 1},
	})
	if px != 0 || py != 3 {
		t.Errorf("expected (0, 3), got (%f, %f)", px, py)
	}

	m := NewMomentum()
	m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 1, VX: 3, VY: 4}}})
	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
}

func TestSeparation(t *testing.T) {
	s := NewSeparation(0.5)
	if s.Value() != 1 {
		t.Error("no samples should read as fully separated")
	}

	s.Observe(Snapshot{Bodies: []cloud.Body{{X: 0, R: 10}, {X: 20, R: 10}}})
	s.Observe(Snapshot{Bodies: []cloud.Body{{X: 0, R: 10}, {X: 15, R: 10}}})

	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
	if s.Worst() != 5 {
		t.Errorf("expected worst overlap 5, got %f", s.Worst())
	}
}

func TestLinkDensity(t *testing.T) {
	l := NewLinkDensity()
	l.Observe(Snapshot{})
	l.Observe(Snapshot{Particles: make([]field.Particle, 4), Links: 6})

	if l.Value() != 1.5 {
		t.Errorf("expected 1.5, got %f", l.Value())
	}
}

func TestValues(t *testing.T) {
	ms := Default()
	for _, m := range ms {
		m.Observe(Snapshot{Bodies: []cloud.Body{{Mass: 1, VX: 1, R: 5}}})
	}
	vals := Values(ms)
	for _, name := range []string{"energy", "energy_drift", "momentum", "separation", "link_density"} {
		if _, ok := vals[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
}
