package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/particleweb/internal/viz"
	"github.com/san-kum/particleweb/internal/web"
)

// Background is the page color behind the web.
const Background = "#0a0a0f"

type point struct{ x, y float64 }

// SVG is a web.Surface that records one frame as SVG elements. Coordinates stay in
// logical units; the backing size becomes the document's pixel size.
type SVG struct {
	logicalW, logicalH float64
	backingW, backingH int
	originX, originY   float64
	opacity            float64

	stroke, fill web.RGBA
	lineWidth    float64
	path         []point
	arcs         []point
	radii        []float64

	body strings.Builder
}

func NewSVG() *SVG {
	return &SVG{lineWidth: 1, opacity: 1}
}

func (s *SVG) SetLogicalSize(w, h float64) { s.logicalW, s.logicalH = w, h }
func (s *SVG) SetBackingSize(w, h int)     { s.backingW, s.backingH = w, h }
func (s *SVG) Context() web.Context2D      { return s }
func (s *SVG) SetOpacity(a float64)        { s.opacity = a }
func (s *SVG) Origin() (float64, float64)  { return s.originX, s.originY }

// SetTransform is implied by the viewBox, which maps logical units onto the backing size.
func (s *SVG) SetTransform(a, b, c, d, e, f float64) {}

// ClearRect discards everything drawn so far when it covers the whole surface.
func (s *SVG) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= s.logicalW && y+h >= s.logicalH {
		s.body.Reset()
	}
}

func (s *SVG) SetStrokeStyle(c web.RGBA) { s.stroke = c }
func (s *SVG) SetFillStyle(c web.RGBA)   { s.fill = c }
func (s *SVG) SetLineWidth(w float64)    { s.lineWidth = w }

func (s *SVG) BeginPath() {
	s.path = s.path[:0]
	s.arcs = s.arcs[:0]
	s.radii = s.radii[:0]
}

func (s *SVG) MoveTo(x, y float64) { s.path = append(s.path[:0], point{x, y}) }
func (s *SVG) LineTo(x, y float64) { s.path = append(s.path, point{x, y}) }

func (s *SVG) Arc(x, y, r, start, end float64) {
	s.arcs = append(s.arcs, point{x, y})
	s.radii = append(s.radii, r)
}

func (s *SVG) Stroke() {
	for i := 1; i < len(s.path); i++ {
		a, b := s.path[i-1], s.path[i]
		fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%g"/>
`, a.x, a.y, b.x, b.y, rgb(s.stroke), s.stroke.A, s.lineWidth)
	}
}

func (s *SVG) Fill() {
	for i, c := range s.arcs {
		fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, c.x, c.y, s.radii[i], rgb(s.fill), s.fill.A)
	}
}

// String returns the complete SVG document for the recorded frame.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %g %g">
<rect width="100%%" height="100%%" fill="%s"/>
<g opacity="%.2f">
`, s.backingW, s.backingH, s.logicalW, s.logicalH, Background, s.opacity))
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteFile writes the SVG document to path.
func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

func rgb(c web.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// CanvasToSVG converts a Braille canvas to SVG format, shading each dot by its
// cell's brightness.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, Background, color))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	// Convert each braille character to dots
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			level := canvas.Level[row][col]

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, cx, cy, dotRadius, level))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
