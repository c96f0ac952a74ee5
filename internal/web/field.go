package web

import (
	"math"
	"math/rand"
)

// Particle is one moving point. Units are viewport units and units per frame.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// Speed is the magnitude of the particle's velocity.
func (p Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

// Valid reports whether every component is finite.
func (p Particle) Valid() bool {
	for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY, p.R} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ParticleCount sizes the population to the viewport area.
func ParticleCount(w, h float64, p Params) int {
	div := p.DensityDivisor
	if div <= 0 {
		div = 1
	}
	area := math.Max(0, w*h)
	return int(math.Round(clamp(area/div, float64(p.MinCount), float64(p.MaxCount))))
}

// Field owns the particle set.
type Field struct {
	Particles []Particle
	params    Params
	rng       *rand.Rand
}

func NewField(p Params, rng *rand.Rand) *Field {
	return &Field{params: p, rng: rng}
}

// Regenerate discards every particle and creates a fresh, independently randomized set
// sized for a w×h viewport.
func (f *Field) Regenerate(w, h float64) {
	n := ParticleCount(w, h, f.params)
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:  f.uniform(0, w),
			Y:  f.uniform(0, h),
			VX: f.uniform(-f.params.MaxSpeed, f.params.MaxSpeed),
			VY: f.uniform(-f.params.MaxSpeed, f.params.MaxSpeed),
			R:  f.uniform(f.params.MinRadius, f.params.MaxRadius),
		}
	}
	f.Particles = ps
}

func (f *Field) Len() int { return len(f.Particles) }

func (f *Field) uniform(lo, hi float64) float64 {
	return f.rng.Float64()*(hi-lo) + lo
}
