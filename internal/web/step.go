package web

import "math"

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame     int
	Time      float64
	Particles int
	// Candidates counts pairs closer than LinkDist; Links counts the ones actually drawn.
	Candidates int
	Links      int
	LinkDist   float64
	Influence  float64
	MeanSpeed  float64
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(s FrameStats)
}

// LinkDistance keeps visual density roughly constant across viewport sizes.
func LinkDistance(w, h float64, p Params) float64 {
	scale := p.LinkScale
	if scale <= 0 {
		scale = 1
	}
	return clamp(math.Sqrt(math.Max(1, w*h))/scale, p.MinLinkDist, p.MaxLinkDist)
}

// LinkAlpha falls off linearly from p.LinkAlpha at distance 0 to 0 at linkDist.
func LinkAlpha(d, linkDist float64, p Params) float64 {
	if linkDist <= 0 {
		return 0
	}
	return math.Max(0, p.LinkAlpha*(1-d/linkDist))
}

// PointerBoost is the multiplicative brightening of a link whose midpoint lies cd units
// from the pointer. It is exactly 1 when cf is 0 or the midpoint is out of range.
func PointerBoost(cd, cf float64, p Params) float64 {
	if cf <= 0 || cd >= p.InfluenceRadius {
		return 1
	}
	return 1 + p.LinkBoost*(1-cd/p.InfluenceRadius)*cf
}

// Attraction is the velocity impulse pulling a particle at (x, y) toward the pointer.
func Attraction(px, py, x, y, cf float64, p Params) (ax, ay float64) {
	if cf <= 0 {
		return 0, 0
	}
	dx, dy := px-x, py-y
	dist := math.Hypot(dx, dy)
	if dist >= p.InfluenceRadius {
		return 0, 0
	}
	pull := (1 - dist/p.InfluenceRadius) * p.AttractionRate * cf
	return dx / (dist + p.Epsilon) * pull, dy / (dist + p.Epsilon) * pull
}

// Wrap moves a coordinate that left [-margin, limit+margin] to the opposite edge.
func Wrap(v, limit, margin float64) float64 {
	if v < -margin {
		return limit + margin
	}
	if v > limit+margin {
		return -margin
	}
	return v
}

// Step renders one frame at timestamp ts, advances the simulation by one tick and
// requests the next frame.
func (w *Web) Step(ts float64) {
	w.scheduled = false
	vp := w.sizer.Viewport()
	ctx := w.context()

	ctx.ClearRect(0, 0, vp.Width, vp.Height)

	cf := 0.0
	if w.pointer.Active {
		cf = w.pointer.Influence(ts, w.params.DecayMs)
		if cf == 0 {
			w.pointer.Deactivate()
		}
	}

	stats := FrameStats{
		Frame:     w.frames,
		Time:      ts,
		Particles: w.field.Len(),
		LinkDist:  LinkDistance(vp.Width, vp.Height, w.params),
		Influence: cf,
	}

	// Links read pre-update positions; motion happens only after every link is drawn.
	w.drawLinks(ctx, stats.LinkDist, cf, &stats)
	w.advance(ctx, vp, cf, &stats)

	w.frames++
	for _, o := range w.observers {
		o.OnFrame(stats)
	}
	w.schedule()
}

func (w *Web) drawLinks(ctx Context2D, linkDist, cf float64, stats *FrameStats) {
	ps := w.field.Particles
	max2 := linkDist * linkDist
	ctx.SetLineWidth(w.params.LineWidth)

	for i := range ps {
		p := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			q := &ps[j]
			dx, dy := p.X-q.X, p.Y-q.Y
			d2 := dx*dx + dy*dy
			if d2 >= max2 {
				continue
			}
			stats.Candidates++

			a := LinkAlpha(math.Sqrt(d2), linkDist, w.params)
			if cf > 0 {
				mx, my := (p.X+q.X)*0.5, (p.Y+q.Y)*0.5
				a *= PointerBoost(math.Hypot(mx-w.pointer.X, my-w.pointer.Y), cf, w.params)
			}
			if a <= w.params.MinAlpha {
				continue
			}

			ctx.SetStrokeStyle(w.params.LinkColor.WithAlpha(a))
			ctx.BeginPath()
			ctx.MoveTo(p.X, p.Y)
			ctx.LineTo(q.X, q.Y)
			ctx.Stroke()
			stats.Links++
		}
	}
}

func (w *Web) advance(ctx Context2D, vp Viewport, cf float64, stats *FrameStats) {
	ps := w.field.Particles
	damp, margin := w.params.Damping, w.params.WrapMargin
	speed := 0.0

	ctx.SetFillStyle(w.params.DotColor)
	for i := range ps {
		s := &ps[i]

		ax, ay := Attraction(w.pointer.X, w.pointer.Y, s.X, s.Y, cf, w.params)
		s.VX += ax
		s.VY += ay

		ctx.BeginPath()
		ctx.Arc(s.X, s.Y, s.R, 0, 2*math.Pi)
		ctx.Fill()

		s.X += s.VX
		s.Y += s.VY
		s.VX *= damp
		s.VY *= damp

		s.X = Wrap(s.X, vp.Width, margin)
		s.Y = Wrap(s.Y, vp.Height, margin)
		speed += s.Speed()
	}

	if len(ps) > 0 {
		stats.MeanSpeed = speed / float64(len(ps))
	}
}
