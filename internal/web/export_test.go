package web

// SetParticles replaces the field so tests can place particles exactly.
func (w *Web) SetParticles(ps []Particle) { w.field.Particles = ps }
