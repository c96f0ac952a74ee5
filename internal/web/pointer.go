package web

import "math"

// Pointer is the last known pointer position in surface-local units.
type Pointer struct {
	X, Y   float64
	Active bool
	// T is the timestamp of the last move, in clock milliseconds.
	T float64
}

func (p *Pointer) OnMove(x, y, ts float64) {
	p.X, p.Y = x, y
	p.Active = true
	p.T = ts
}

// Influence decays linearly from 1 at the last move to 0 after decayMs. An inactive
// pointer has none.
func (p *Pointer) Influence(now, decayMs float64) float64 {
	if !p.Active || decayMs <= 0 {
		return 0
	}
	dt := math.Max(0, now-p.T)
	return math.Max(0, 1-dt/decayMs)
}

func (p *Pointer) Deactivate() { p.Active = false }
