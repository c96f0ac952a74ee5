package host

import "github.com/san-kum/particleweb/internal/web"

type point struct{ x, y float64 }

// Line is a stroked segment in logical units.
type Line struct {
	X0, Y0, X1, Y1 float64
	Color          web.RGBA
	Width          float64
}

// Dot is a filled circle in logical units.
type Dot struct {
	X, Y, R float64
	Color   web.RGBA
}

// Recorder is a Surface whose context records what was drawn since the last
// full clear. It draws nothing.
type Recorder struct {
	LogicalW, LogicalH float64
	BackingW, BackingH int
	Transform          [6]float64
	Opacity            float64
	OriginX, OriginY   float64

	Lines  []Line
	Dots   []Dot
	Clears int

	stroke, fill web.RGBA
	width        float64
	path         []point
	arcs         []Dot
}

func NewRecorder() *Recorder {
	return &Recorder{Transform: [6]float64{1, 0, 0, 1, 0, 0}, width: 1}
}

func (r *Recorder) SetLogicalSize(w, h float64) { r.LogicalW, r.LogicalH = w, h }
func (r *Recorder) SetBackingSize(w, h int)     { r.BackingW, r.BackingH = w, h }
func (r *Recorder) Context() web.Context2D      { return r }
func (r *Recorder) SetOpacity(a float64)        { r.Opacity = a }
func (r *Recorder) Origin() (float64, float64)  { return r.OriginX, r.OriginY }

func (r *Recorder) SetTransform(a, b, c, d, e, f float64) {
	r.Transform = [6]float64{a, b, c, d, e, f}
}

// ClearRect drops everything recorded when the rect covers the logical surface.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Clears++
	if x <= 0 && y <= 0 && x+w >= r.LogicalW && y+h >= r.LogicalH {
		r.Lines = r.Lines[:0]
		r.Dots = r.Dots[:0]
	}
}

func (r *Recorder) SetStrokeStyle(c web.RGBA) { r.stroke = c }
func (r *Recorder) SetFillStyle(c web.RGBA)   { r.fill = c }
func (r *Recorder) SetLineWidth(w float64)    { r.width = w }

func (r *Recorder) BeginPath() {
	r.path = r.path[:0]
	r.arcs = r.arcs[:0]
}

func (r *Recorder) MoveTo(x, y float64) { r.path = append(r.path[:0], point{x, y}) }
func (r *Recorder) LineTo(x, y float64) { r.path = append(r.path, point{x, y}) }

func (r *Recorder) Arc(x, y, rad, start, end float64) {
	r.arcs = append(r.arcs, Dot{X: x, Y: y, R: rad})
}

func (r *Recorder) Stroke() {
	for i := 1; i < len(r.path); i++ {
		a, b := r.path[i-1], r.path[i]
		r.Lines = append(r.Lines, Line{X0: a.x, Y0: a.y, X1: b.x, Y1: b.y, Color: r.stroke, Width: r.width})
	}
}

func (r *Recorder) Fill() {
	for _, d := range r.arcs {
		d.Color = r.fill
		r.Dots = append(r.Dots, d)
	}
}
