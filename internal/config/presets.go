package config

import (
	"fmt"
	"sort"
)

// Presets are complete configurations. "classic" and "calm" are the two tunings the
// landing page shipped with.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"calm": func() *Config {
		c := DefaultConfig()
		c.Web.Damping = 0.998
		c.Web.LinkAlpha = 0.22
		c.Web.LinkBoost = 1.1
		c.Reveal.SweepMs = 2400
		c.Reveal.SettleEarlyMs = 220
		return c
	}(),
	"dense": func() *Config {
		c := DefaultConfig()
		c.Web.DensityDivisor = 12000
		c.Web.MinCount = 140
		c.Web.MaxCount = 240
		c.Web.MaxLinkDist = 150
		return c
	}(),
	"sparse": func() *Config {
		c := DefaultConfig()
		c.Web.DensityDivisor = 26000
		c.Web.MinCount = 60
		c.Web.MaxCount = 120
		c.Web.LinkAlpha = 0.34
		return c
	}(),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c := *cfg
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
