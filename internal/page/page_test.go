package page

import (
	"testing"

	"github.com/san-kum/heroviz/internal/geom"
	"github.com/san-kum/heroviz/internal/loop"
)

func TestSectionsStack(t *testing.T) {
	p := New(800, 600)

	if got := p.Rect(Hero); got != (geom.Rect{W: 800, H: 600}) {
		t.Errorf("hero rect %+v", got)
	}
	if got := p.Rect(Skills); got != (geom.Rect{Y: 600, W: 800, H: 600}) {
		t.Errorf("skills rect %+v", got)
	}
	if p.Height() != 1200 || p.MaxScroll() != 600 {
		t.Errorf("height %g max scroll %g", p.Height(), p.MaxScroll())
	}
}

func TestScrollClamp(t *testing.T) {
	tests := []struct {
		to   float64
		want float64
	}{
		{-50, 0},
		{0, 0},
		{250, 250},
		{600, 600},
		{5000, 600},
	}

	for _, tt := range tests {
		p := New(800, 600)
		p.ScrollTo(tt.to)
		if p.Scroll() != tt.want {
			t.Errorf("ScrollTo(%g): expected %g, got %g", tt.to, tt.want, p.Scroll())
		}
	}
}

func TestScrollMovesRects(t *testing.T) {
	p := New(800, 600)
	if !p.ScrollBy(200) {
		t.Fatal("expected scroll to change")
	}
	if p.ScrollBy(0) {
		t.Error("zero scroll reported a change")
	}
	if got := p.Rect(Hero).Y; got != -200 {
		t.Errorf("hero top %g, expected -200", got)
	}
	if got := p.Rect(Skills).Y; got != 400 {
		t.Errorf("skills top %g, expected 400", got)
	}

	p.Show(Skills)
	if p.Current() != Skills || p.Rect(Skills).Y != 0 {
		t.Errorf("show skills left current=%s top=%g", p.Current(), p.Rect(Skills).Y)
	}
	p.Show(Hero)
	if p.Current() != Hero {
		t.Errorf("expected hero current, got %s", p.Current())
	}
}

func TestResize(t *testing.T) {
	p := New(800, 600)
	if p.Resize(800, 600) {
		t.Error("same size reported a change")
	}

	p.Show(Skills)
	if !p.Resize(1000, 300) {
		t.Fatal("expected a change")
	}
	if p.Scroll() != 300 || p.Current() != Skills {
		t.Errorf("resize lost the visible section: scroll=%g", p.Scroll())
	}

	p.Resize(0, -10)
	w, h := p.Size()
	if w != geom.MinDimension || h != geom.MinDimension {
		t.Errorf("degenerate resize gave %gx%g", w, h)
	}
}

func TestAt(t *testing.T) {
	p := New(800, 600)
	p.ScrollTo(300)

	if s, ok := p.At(10, 100); !ok || s != Hero {
		t.Errorf("expected hero at y=100, got %s %v", s, ok)
	}
	if s, ok := p.At(10, 500); !ok || s != Skills {
		t.Errorf("expected skills at y=500, got %s %v", s, ok)
	}
	if _, ok := p.At(900, 100); ok {
		t.Error("expected no section outside the viewport width")
	}
}

func TestObserversFollowScroll(t *testing.T) {
	p := New(800, 600)
	var hero, skills []bool
	heroObs := loop.NewObserver(loop.DefaultThreshold, func(v bool) { hero = append(hero, v) })
	skillsObs := loop.NewObserver(loop.DefaultThreshold, func(v bool) { skills = append(skills, v) })

	update := func() {
		heroObs.SetTarget(p.Rect(Hero))
		skillsObs.SetTarget(p.Rect(Skills))
		heroObs.Update(p.Viewport())
		skillsObs.Update(p.Viewport())
	}

	update()
	// 10% of skills visible is below the threshold.
	p.ScrollTo(60)
	update()
	p.ScrollTo(600)
	update()

	if len(hero) != 2 || !hero[0] || hero[1] {
		t.Errorf("hero transitions %v", hero)
	}
	if len(skills) != 2 || skills[0] || !skills[1] {
		t.Errorf("skills transitions %v", skills)
	}
}

func TestSectionString(t *testing.T) {
	if Hero.String() != "hero" || Skills.String() != "skills" || Section(9).String() != "unknown" {
		t.Error("unexpected section names")
	}
}
