package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particleweb/internal/web"
)

// painter is the drawing backend behind Surface. The raylib one draws into the current
// frame; tests swap in a recorder.
type painter interface {
	Line(x0, y0, x1, y1, width float64, c rl.Color)
	Circle(x, y, r float64, c rl.Color)
}

type rlPainter struct{}

func (rlPainter) Line(x0, y0, x1, y1, width float64, c rl.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), c)
}

func (rlPainter) Circle(x, y, r float64, c rl.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), c)
}

type point struct{ x, y float64 }

// Surface draws web paths with raylib. Raylib owns the framebuffer and scales it for
// high-DPI screens itself, so the backing size and transform are only recorded.
// Drawing is offset by the origin, and every alpha is scaled by the opacity.
type Surface struct {
	paint painter

	originX, originY float64
	opacity          float64
	logicalW         float64
	logicalH         float64
	backingW         int
	backingH         int

	stroke, fill web.RGBA
	width        float64
	path         []point
	arcs         []point
	radii        []float64

	// frame holds everything drawn since the last clear, for Replay.
	frame []mark
}

// mark is one drawn line or dot in surface-local units, before opacity.
type mark struct {
	dot            bool
	x0, y0, x1, y1 float64
	size           float64
	c              web.RGBA
}

func NewSurface() *Surface {
	return &Surface{paint: rlPainter{}, width: 1}
}

func (s *Surface) SetLogicalSize(w, h float64) { s.logicalW, s.logicalH = w, h }
func (s *Surface) SetBackingSize(w, h int)     { s.backingW, s.backingH = w, h }
func (s *Surface) Context() web.Context2D      { return s }
func (s *Surface) SetOpacity(a float64)        { s.opacity = a }
func (s *Surface) Opacity() float64            { return s.opacity }
func (s *Surface) Origin() (float64, float64)  { return s.originX, s.originY }
func (s *Surface) SetOrigin(x, y float64)      { s.originX, s.originY = x, y }

func (s *Surface) SetTransform(a, b, c, d, e, f float64) {}

// ClearRect drops the recorded frame. The pixels themselves are cleared by
// ClearBackground at the start of every raylib frame.
func (s *Surface) ClearRect(x, y, w, h float64) { s.frame = s.frame[:0] }

func (s *Surface) SetStrokeStyle(c web.RGBA) { s.stroke = c }
func (s *Surface) SetFillStyle(c web.RGBA)   { s.fill = c }
func (s *Surface) SetLineWidth(w float64)    { s.width = w }

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.arcs = s.arcs[:0]
	s.radii = s.radii[:0]
}

func (s *Surface) MoveTo(x, y float64) { s.path = append(s.path[:0], point{x, y}) }
func (s *Surface) LineTo(x, y float64) { s.path = append(s.path, point{x, y}) }

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.arcs = append(s.arcs, point{x, y})
	s.radii = append(s.radii, r)
}

func (s *Surface) Stroke() {
	for i := 1; i < len(s.path); i++ {
		a, b := s.path[i-1], s.path[i]
		m := mark{x0: a.x, y0: a.y, x1: b.x, y1: b.y, size: s.width, c: s.stroke}
		s.frame = append(s.frame, m)
		s.draw(m)
	}
}

func (s *Surface) Fill() {
	for i, p := range s.arcs {
		m := mark{dot: true, x0: p.x, y0: p.y, size: s.radii[i], c: s.fill}
		s.frame = append(s.frame, m)
		s.draw(m)
	}
}

// Replay draws the last frame again at the current origin and opacity. Hosts call it
// when no new frame ran, since raylib clears the window every loop.
func (s *Surface) Replay() {
	for _, m := range s.frame {
		s.draw(m)
	}
}

func (s *Surface) draw(m mark) {
	c := s.color(m.c)
	if m.dot {
		s.paint.Circle(m.x0+s.originX, m.y0+s.originY, m.size, c)
		return
	}
	s.paint.Line(m.x0+s.originX, m.y0+s.originY, m.x1+s.originX, m.y1+s.originY, m.size, c)
}

func (s *Surface) color(c web.RGBA) rl.Color {
	a := math.Max(0, math.Min(1, c.A*s.opacity))
	return rl.NewColor(c.R, c.G, c.B, uint8(math.Round(a*255)))
}
