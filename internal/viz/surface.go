package viz

import (
	"math"

	"github.com/san-kum/particleweb/internal/web"
)

type point struct{ x, y float64 }

type arc struct{ x, y, r float64 }

// Surface draws the particle web into a braille Canvas. Backing pixels map to
// canvas sub-pixels by Scale, so one braille cell covers 2*Scale x 4*Scale pixels.
type Surface struct {
	Canvas *Canvas
	Scale  float64

	logicalW, logicalH float64
	originX, originY   float64
	opacity            float64
	tf                 [6]float64

	stroke, fill web.RGBA
	path         []point
	arcs         []arc
}

func NewSurface(scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{
		Canvas: NewCanvas(0, 0),
		Scale:  scale,
		tf:     [6]float64{1, 0, 0, 1, 0, 0},
	}
}

func (s *Surface) SetLogicalSize(w, h float64) { s.logicalW, s.logicalH = w, h }

// SetBackingSize resizes the canvas to hold w×h backing pixels.
func (s *Surface) SetBackingSize(w, h int) {
	cols := int(math.Ceil(float64(w) / s.Scale / 2))
	rows := int(math.Ceil(float64(h) / s.Scale / 4))
	s.Canvas.Resize(cols, rows)
}

func (s *Surface) Context() web.Context2D          { return s }
func (s *Surface) SetOpacity(a float64)            { s.opacity = a }
func (s *Surface) Opacity() float64                { return s.opacity }
func (s *Surface) Origin() (float64, float64)      { return s.originX, s.originY }
func (s *Surface) SetOrigin(x, y float64)          { s.originX, s.originY = x, y }
func (s *Surface) LogicalSize() (float64, float64) { return s.logicalW, s.logicalH }

func (s *Surface) SetTransform(a, b, c, d, e, f float64) {
	s.tf = [6]float64{a, b, c, d, e, f}
}

// project maps logical units to canvas sub-pixels.
func (s *Surface) project(x, y float64) (float64, float64) {
	bx := s.tf[0]*x + s.tf[2]*y + s.tf[4]
	by := s.tf[1]*x + s.tf[3]*y + s.tf[5]
	return bx / s.Scale, by / s.Scale
}

// ClearRect blanks every cell the rectangle touches; a rectangle covering the whole
// canvas clears it outright.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0 := s.project(x, y)
	x1, y1 := s.project(x+w, y+h)
	col0, row0 := int(math.Floor(x0/2)), int(math.Floor(y0/4))
	col1, row1 := int(math.Ceil(x1/2)), int(math.Ceil(y1/4))

	if col0 <= 0 && row0 <= 0 && col1 >= s.Canvas.Width && row1 >= s.Canvas.Height {
		s.Canvas.Clear()
		return
	}
	s.Canvas.ClearCells(col0, row0, col1, row1)
}

func (s *Surface) SetStrokeStyle(c web.RGBA) { s.stroke = c }
func (s *Surface) SetFillStyle(c web.RGBA)   { s.fill = c }

// SetLineWidth is ignored; braille lines are one sub-pixel wide.
func (s *Surface) SetLineWidth(float64) {}

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.arcs = s.arcs[:0]
}

func (s *Surface) MoveTo(x, y float64) { s.path = append(s.path[:0], point{x, y}) }
func (s *Surface) LineTo(x, y float64) { s.path = append(s.path, point{x, y}) }

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.arcs = append(s.arcs, arc{x, y, r})
}

func (s *Surface) Stroke() {
	a := s.stroke.A * s.opacity
	if a <= 0 {
		return
	}
	for i := 1; i < len(s.path); i++ {
		x0, y0 := s.project(s.path[i-1].x, s.path[i-1].y)
		x1, y1 := s.project(s.path[i].x, s.path[i].y)
		s.Canvas.DrawLine(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), a)
	}
}

func (s *Surface) Fill() {
	a := s.fill.A * s.opacity
	if a <= 0 {
		return
	}
	for _, c := range s.arcs {
		x, y := s.project(c.x, c.y)
		s.Canvas.FillCircle(x, y, c.r*s.tf[0]/s.Scale, a)
	}
}
