package config

import (
	"fmt"
	"sort"
)

// Presets are named adjustments applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"calm": func(c *Config) {
		c.Particles.Speed = 0.15
		c.Particles.MaxSpeed = 0.8
		c.Particles.RepelStrength = 0.12
		c.Bodies.InitialSpeed = 0.5
		c.Bodies.Damping = 0.995
	},
	"dense": func(c *Config) {
		c.Particles.Density = 140
		c.Particles.MaxCount = 140
		c.Particles.LinkDistance = 90
	},
	"bouncy": func(c *Config) {
		c.Bodies.InitialSpeed = 3
		c.Bodies.Squash = 0.25
		c.Bodies.DragMultiplier = 2
	},
	"rings": func(c *Config) {
		c.Bodies.Layout = "rings"
		c.Bodies.InitialSpeed = 0.3
		c.Bodies.PreserveOnResize = true
	},
	"still": func(c *Config) {
		c.Loop.ReducedMotion = true
	},
}

// GetPreset returns a fresh config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
