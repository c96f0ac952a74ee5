package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particleweb/internal/web"
)

type stroke struct {
	x0, y0, x1, y1, w float64
	c                 rl.Color
}

type circle struct {
	x, y, r float64
	c       rl.Color
}

type recordPainter struct {
	lines   []stroke
	circles []circle
}

func (p *recordPainter) Line(x0, y0, x1, y1, w float64, c rl.Color) {
	p.lines = append(p.lines, stroke{x0, y0, x1, y1, w, c})
}

func (p *recordPainter) Circle(x, y, r float64, c rl.Color) {
	p.circles = append(p.circles, circle{x, y, r, c})
}

func newTestSurface() (*Surface, *recordPainter) {
	p := &recordPainter{}
	s := NewSurface()
	s.paint = p
	return s, p
}

func TestSurface_StrokeOffsetsByOrigin(t *testing.T) {
	s, p := newTestSurface()
	s.SetOrigin(0, headerHeight)
	s.SetOpacity(1)
	s.SetStrokeStyle(web.RGBA{R: 200, G: 200, B: 210, A: 0.5})
	s.SetLineWidth(1)

	s.BeginPath()
	s.MoveTo(10, 20)
	s.LineTo(30, 40)
	s.Stroke()

	if len(p.lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(p.lines))
	}
	l := p.lines[0]
	if l.y0 != 20+headerHeight || l.y1 != 40+headerHeight || l.x0 != 10 || l.x1 != 30 {
		t.Errorf("line = %+v", l)
	}
	if l.c.A != 128 {
		t.Errorf("alpha = %d, want 128", l.c.A)
	}
}

func TestSurface_OpacityScalesAlpha(t *testing.T) {
	s, p := newTestSurface()
	s.SetFillStyle(web.RGBA{R: 235, G: 235, B: 245, A: 0.95})

	s.BeginPath()
	s.Arc(5, 5, 2, 0, 6.283)
	s.Fill()
	if p.circles[0].c.A != 0 {
		t.Errorf("hidden surface drew alpha %d", p.circles[0].c.A)
	}

	s.SetOpacity(0.5)
	s.Fill()
	if got := p.circles[1].c.A; got != 121 {
		t.Errorf("alpha = %d, want 121", got)
	}
}

func TestSurface_BeginPathResets(t *testing.T) {
	s, p := newTestSurface()
	s.SetOpacity(1)
	s.BeginPath()
	s.Arc(1, 1, 1, 0, 1)
	s.BeginPath()
	s.Fill()
	if len(p.circles) != 0 {
		t.Errorf("circles = %d after BeginPath", len(p.circles))
	}
}

func TestSurface_ReplayRedrawsLastFrame(t *testing.T) {
	s, p := newTestSurface()
	s.SetOrigin(0, headerHeight)
	s.SetOpacity(1)

	s.ClearRect(0, 0, 800, 600)
	s.SetStrokeStyle(web.RGBA{R: 200, G: 200, B: 210, A: 0.5})
	s.BeginPath()
	s.MoveTo(10, 20)
	s.LineTo(30, 40)
	s.Stroke()
	s.SetFillStyle(web.RGBA{R: 235, G: 235, B: 245, A: 1})
	s.BeginPath()
	s.Arc(5, 5, 2, 0, 6.283)
	s.Fill()

	drawn := *p
	p.lines, p.circles = nil, nil
	s.Replay()
	if len(p.lines) != 1 || len(p.circles) != 1 {
		t.Fatalf("replayed %d lines, %d circles; want 1, 1", len(p.lines), len(p.circles))
	}
	if p.lines[0] != drawn.lines[0] || p.circles[0] != drawn.circles[0] {
		t.Errorf("replay differs: %+v %+v", p.lines[0], p.circles[0])
	}

	// Opacity applies at replay time so a reveal during pause shows up.
	p.lines, p.circles = nil, nil
	s.SetOpacity(0.5)
	s.Replay()
	if got := p.circles[0].c.A; got != 128 {
		t.Errorf("replayed alpha = %d, want 128", got)
	}

	p.lines, p.circles = nil, nil
	s.ClearRect(0, 0, 800, 600)
	s.Replay()
	if len(p.lines) != 0 || len(p.circles) != 0 {
		t.Error("replay after clear should draw nothing")
	}
}
