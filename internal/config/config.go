package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particleweb/internal/web"
)

const (
	DefaultFPS         = 60
	DefaultTheme       = "night"
	DefaultBenchFrames = 600
	DefaultWidth       = 1700
	DefaultHeight      = 1000
)

var (
	// ErrInvalidParam indicates a configuration value outside its valid range.
	ErrInvalidParam = errors.New("config: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Theme  string       `yaml:"theme"`
	FPS    int          `yaml:"fps"`
	Seed   int64        `yaml:"seed"`
	Web    WebConfig    `yaml:"web"`
	Reveal RevealConfig `yaml:"reveal"`
	Bench  BenchConfig  `yaml:"bench"`
}

type WebConfig struct {
	DensityDivisor  float64 `yaml:"density_divisor"`
	MinCount        int     `yaml:"min_count"`
	MaxCount        int     `yaml:"max_count"`
	MaxSpeed        float64 `yaml:"max_speed"`
	MinRadius       float64 `yaml:"min_radius"`
	MaxRadius       float64 `yaml:"max_radius"`
	LinkScale       float64 `yaml:"link_scale"`
	MinLinkDist     float64 `yaml:"min_link_dist"`
	MaxLinkDist     float64 `yaml:"max_link_dist"`
	LinkAlpha       float64 `yaml:"link_alpha"`
	LinkBoost       float64 `yaml:"link_boost"`
	MinAlpha        float64 `yaml:"min_alpha"`
	InfluenceRadius float64 `yaml:"influence_radius"`
	DecayMs         float64 `yaml:"decay_ms"`
	AttractionRate  float64 `yaml:"attraction_rate"`
	Damping         float64 `yaml:"damping"`
	WrapMargin      float64 `yaml:"wrap_margin"`
	RevealOpacity   float64 `yaml:"reveal_opacity"`
}

type RevealConfig struct {
	SweepMs           float64 `yaml:"sweep_ms"`
	SettleEarlyMs     float64 `yaml:"settle_early_ms"`
	LoadRevealDelayMs float64 `yaml:"load_reveal_delay_ms"`
	FirstFrameDelay   int     `yaml:"first_frame_delay"`
}

type BenchConfig struct {
	Frames  int     `yaml:"frames"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	FrameMs float64 `yaml:"frame_ms"`
}

func defaultWebConfig() WebConfig {
	p := web.DefaultParams()
	return WebConfig{
		DensityDivisor:  p.DensityDivisor,
		MinCount:        p.MinCount,
		MaxCount:        p.MaxCount,
		MaxSpeed:        p.MaxSpeed,
		MinRadius:       p.MinRadius,
		MaxRadius:       p.MaxRadius,
		LinkScale:       p.LinkScale,
		MinLinkDist:     p.MinLinkDist,
		MaxLinkDist:     p.MaxLinkDist,
		LinkAlpha:       p.LinkAlpha,
		LinkBoost:       p.LinkBoost,
		MinAlpha:        p.MinAlpha,
		InfluenceRadius: p.InfluenceRadius,
		DecayMs:         p.DecayMs,
		AttractionRate:  p.AttractionRate,
		Damping:         p.Damping,
		WrapMargin:      p.WrapMargin,
		RevealOpacity:   p.RevealOpacity,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultTheme,
		FPS:   DefaultFPS,
		Web:   defaultWebConfig(),
		Reveal: RevealConfig{
			SweepMs:           2000,
			SettleEarlyMs:     180,
			LoadRevealDelayMs: 50,
			FirstFrameDelay:   2,
		},
		Bench: BenchConfig{
			Frames:  DefaultBenchFrames,
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			FrameMs: 1000.0 / DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func invalid(name string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidParam, name, v)
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	w := c.Web
	switch {
	case c.FPS <= 0:
		return invalid("fps", c.FPS)
	case w.DensityDivisor <= 0:
		return invalid("density_divisor", w.DensityDivisor)
	case w.MinCount < 0 || w.MaxCount < w.MinCount:
		return invalid("min_count/max_count", fmt.Sprintf("%d/%d", w.MinCount, w.MaxCount))
	case w.MaxSpeed < 0:
		return invalid("max_speed", w.MaxSpeed)
	case w.MinRadius <= 0 || w.MaxRadius < w.MinRadius:
		return invalid("min_radius/max_radius", fmt.Sprintf("%g/%g", w.MinRadius, w.MaxRadius))
	case w.LinkScale <= 0:
		return invalid("link_scale", w.LinkScale)
	case w.MinLinkDist <= 0 || w.MaxLinkDist < w.MinLinkDist:
		return invalid("min_link_dist/max_link_dist", fmt.Sprintf("%g/%g", w.MinLinkDist, w.MaxLinkDist))
	case w.LinkAlpha < 0 || w.LinkAlpha > 1:
		return invalid("link_alpha", w.LinkAlpha)
	case w.InfluenceRadius <= 0:
		return invalid("influence_radius", w.InfluenceRadius)
	case w.DecayMs <= 0:
		return invalid("decay_ms", w.DecayMs)
	case w.Damping <= 0 || w.Damping > 1:
		return invalid("damping", w.Damping)
	case w.WrapMargin < 0:
		return invalid("wrap_margin", w.WrapMargin)
	case w.RevealOpacity < 0 || w.RevealOpacity > 1:
		return invalid("reveal_opacity", w.RevealOpacity)
	case c.Reveal.SweepMs < 0 || c.Reveal.SettleEarlyMs < 0:
		return invalid("sweep_ms/settle_early_ms", fmt.Sprintf("%g/%g", c.Reveal.SweepMs, c.Reveal.SettleEarlyMs))
	case c.Reveal.LoadRevealDelayMs < 0:
		return invalid("load_reveal_delay_ms", c.Reveal.LoadRevealDelayMs)
	case c.Reveal.FirstFrameDelay <= 0:
		return invalid("first_frame_delay", c.Reveal.FirstFrameDelay)
	case c.Bench.Frames <= 0:
		return invalid("bench.frames", c.Bench.Frames)
	case c.Bench.Width <= 0 || c.Bench.Height <= 0:
		return invalid("bench.width/bench.height", fmt.Sprintf("%g/%g", c.Bench.Width, c.Bench.Height))
	case c.Bench.FrameMs <= 0:
		return invalid("bench.frame_ms", c.Bench.FrameMs)
	}
	return nil
}

// Params converts the web section to simulation parameters. Colors and fixed
// numerical constants come from web.DefaultParams.
func (w WebConfig) Params() web.Params {
	p := web.DefaultParams()
	p.DensityDivisor = w.DensityDivisor
	p.MinCount = w.MinCount
	p.MaxCount = w.MaxCount
	p.MaxSpeed = w.MaxSpeed
	p.MinRadius = w.MinRadius
	p.MaxRadius = w.MaxRadius
	p.LinkScale = w.LinkScale
	p.MinLinkDist = w.MinLinkDist
	p.MaxLinkDist = w.MaxLinkDist
	p.LinkAlpha = w.LinkAlpha
	p.LinkBoost = w.LinkBoost
	p.MinAlpha = w.MinAlpha
	p.InfluenceRadius = w.InfluenceRadius
	p.DecayMs = w.DecayMs
	p.AttractionRate = w.AttractionRate
	p.Damping = w.Damping
	p.WrapMargin = w.WrapMargin
	p.RevealOpacity = w.RevealOpacity
	return p
}
