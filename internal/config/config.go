package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/field"
	"github.com/san-kum/heroviz/internal/loop"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTPS    = 60
	DefaultTitle  = "heroviz"
)

type Config struct {
	Seed      int64          `yaml:"seed"`
	Particles ParticleConfig `yaml:"particles"`
	Bodies    BodyConfig     `yaml:"bodies"`
	Loop      LoopConfig     `yaml:"loop"`
	Window    WindowConfig   `yaml:"window"`
}

type ParticleConfig struct {
	Density       float64 `yaml:"density"`
	MinCount      int     `yaml:"min_count"`
	MaxCount      int     `yaml:"max_count"`
	Speed         float64 `yaml:"speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	RadiusMin     float64 `yaml:"radius_min"`
	RadiusMax     float64 `yaml:"radius_max"`
	LinkDistance  float64 `yaml:"link_distance"`
	LinkAlpha     float64 `yaml:"link_alpha"`
	LinkBoost     float64 `yaml:"link_boost"`
	BoostRadius   float64 `yaml:"boost_radius"`
	RepelRadius   float64 `yaml:"repel_radius"`
	RepelStrength float64 `yaml:"repel_strength"`
	HueA          float64 `yaml:"hue_a"`
	HueB          float64 `yaml:"hue_b"`
	MaxDPR        float64 `yaml:"max_dpr"`
	Glow          bool    `yaml:"glow"`
}

type BodyConfig struct {
	Damping          float64      `yaml:"damping"`
	DragMultiplier   float64      `yaml:"drag_multiplier"`
	InitialSpeed     float64      `yaml:"initial_speed"`
	RelaxRate        float64      `yaml:"relax_rate"`
	Squash           float64      `yaml:"squash"`
	MassPerSize      float64      `yaml:"mass_per_size"`
	Iterations       int          `yaml:"iterations"`
	Layout           string       `yaml:"layout"`
	PreserveOnResize bool         `yaml:"preserve_on_resize"`
	Skills           []cloud.Spec `yaml:"skills"`
}

type LoopConfig struct {
	ResizeDebounce      time.Duration `yaml:"resize_debounce"`
	VisibilityThreshold float64       `yaml:"visibility_threshold"`
	ReducedMotion       bool          `yaml:"reduced_motion"`
	TPS                 int           `yaml:"tps"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultSkills is the icon set of the skill cloud.
var DefaultSkills = []cloud.Spec{
	{Name: "TypeScript", Size: 72}, {Name: "JavaScript", Size: 72}, {Name: "React", Size: 72},
	{Name: "Next.js", Size: 64}, {Name: "Node.js", Size: 72}, {Name: "Express", Size: 56},
	{Name: "NestJS", Size: 64}, {Name: "GraphQL", Size: 56}, {Name: "PostgreSQL", Size: 64},
	{Name: "MongoDB", Size: 56}, {Name: "Redis", Size: 56}, {Name: "Docker", Size: 64},
	{Name: "Kubernetes", Size: 56}, {Name: "AWS", Size: 64}, {Name: "Git", Size: 56},
	{Name: "Tailwind CSS", Size: 56}, {Name: "Sass", Size: 48}, {Name: "Jest", Size: 48},
	{Name: "Cypress", Size: 48}, {Name: "Webpack", Size: 48}, {Name: "Vite", Size: 48},
}

func DefaultConfig() *Config {
	fo := field.DefaultOptions()
	co := cloud.DefaultOptions()
	return &Config{
		Particles: ParticleConfig{
			Density:       fo.Density,
			MinCount:      fo.MinCount,
			MaxCount:      fo.MaxCount,
			Speed:         fo.Speed,
			MaxSpeed:      fo.MaxSpeed,
			RadiusMin:     fo.RadiusMin,
			RadiusMax:     fo.RadiusMax,
			LinkDistance:  fo.LinkDistance,
			LinkAlpha:     fo.LinkAlpha,
			LinkBoost:     fo.LinkBoost,
			BoostRadius:   fo.BoostRadius,
			RepelRadius:   fo.RepelRadius,
			RepelStrength: fo.RepelStrength,
			HueA:          fo.HueA,
			HueB:          fo.HueB,
			MaxDPR:        fo.MaxDPR,
			Glow:          fo.Glow,
		},
		Bodies: BodyConfig{
			Damping:        co.Damping,
			DragMultiplier: co.DragMultiplier,
			InitialSpeed:   co.InitialSpeed,
			RelaxRate:      co.RelaxRate,
			Squash:         co.Squash,
			MassPerSize:    co.MassPerSize,
			Iterations:     co.Iterations,
			Layout:         string(co.Layout),
			Skills:         append([]cloud.Spec(nil), DefaultSkills...),
		},
		Loop: LoopConfig{
			ResizeDebounce:      loop.DefaultDebounce,
			VisibilityThreshold: loop.DefaultThreshold,
			TPS:                 DefaultTPS,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto reads a YAML file over a copy of base. Keys the file leaves out
// keep base's values; base itself is not modified.
func LoadInto(base *Config, path string) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be handed out safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies.Skills = append([]cloud.Spec(nil), c.Bodies.Skills...)
	return &out
}

func (c *Config) Validate() error {
	p, b := c.Particles, c.Bodies
	switch {
	case p.MinCount < 0 || p.MaxCount < p.MinCount:
		return invalid("particles.min_count/max_count", "need 0 <= min_count <= max_count, got %d..%d", p.MinCount, p.MaxCount)
	case p.Density < 0:
		return invalid("particles.density", "must not be negative, got %g", p.Density)
	case p.RadiusMin < 0 || p.RadiusMax < p.RadiusMin:
		return invalid("particles.radius_min/radius_max", "need 0 <= radius_min <= radius_max")
	case p.LinkDistance < 0:
		return invalid("particles.link_distance", "must not be negative, got %g", p.LinkDistance)
	case p.MaxSpeed <= 0:
		return invalid("particles.max_speed", "must be positive, got %g", p.MaxSpeed)
	case b.Damping <= 0 || b.Damping > 1:
		return invalid("bodies.damping", "must be in (0, 1], got %g", b.Damping)
	case b.Squash < 0 || b.Squash >= 1:
		return invalid("bodies.squash", "must be in [0, 1), got %g", b.Squash)
	case b.Layout != "" && b.Layout != string(cloud.LayoutRandom) && b.Layout != string(cloud.LayoutRings):
		return invalid("bodies.layout", "unknown layout %q", b.Layout)
	case c.Loop.VisibilityThreshold < 0 || c.Loop.VisibilityThreshold > 1:
		return invalid("loop.visibility_threshold", "must be in [0, 1], got %g", c.Loop.VisibilityThreshold)
	case c.Loop.TPS < 0:
		return invalid("loop.tps", "must not be negative, got %d", c.Loop.TPS)
	}
	for i, s := range b.Skills {
		if s.Size <= 0 {
			return invalid(fmt.Sprintf("bodies.skills[%d]", i), "size must be positive, got %g", s.Size)
		}
	}
	return nil
}

func (c *Config) FieldOptions() field.Options {
	p := c.Particles
	d := field.DefaultOptions()
	return field.Options{
		Density:       p.Density,
		MinCount:      p.MinCount,
		MaxCount:      p.MaxCount,
		Speed:         p.Speed,
		MaxSpeed:      p.MaxSpeed,
		RadiusMin:     p.RadiusMin,
		RadiusMax:     p.RadiusMax,
		AlphaMin:      d.AlphaMin,
		AlphaMax:      d.AlphaMax,
		HueA:          p.HueA,
		HueB:          p.HueB,
		LinkDistance:  p.LinkDistance,
		LinkAlpha:     p.LinkAlpha,
		LinkBoost:     p.LinkBoost,
		BoostRadius:   p.BoostRadius,
		RepelRadius:   p.RepelRadius,
		RepelStrength: p.RepelStrength,
		MaxDPR:        p.MaxDPR,
		Glow:          p.Glow,
	}
}

func (c *Config) CloudOptions() cloud.Options {
	b := c.Bodies
	return cloud.Options{
		Damping:        b.Damping,
		DragMultiplier: b.DragMultiplier,
		InitialSpeed:   b.InitialSpeed,
		RelaxRate:      b.RelaxRate,
		Squash:         b.Squash,
		MassPerSize:    b.MassPerSize,
		Iterations:     b.Iterations,
		Layout:         cloud.Layout(b.Layout),
		Preserve:       b.PreserveOnResize,
	}
}

// SeedOr returns the configured seed, or fallback when none is set.
func (c *Config) SeedOr(fallback int64) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return fallback
}
