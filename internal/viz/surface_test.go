package viz

import (
	"testing"

	"github.com/san-kum/particleweb/internal/web"
)

func TestSurface_BackingSize(t *testing.T) {
	s := NewSurface(4)
	s.SetBackingSize(640, 384)
	if s.Canvas.Width != 80 || s.Canvas.Height != 24 {
		t.Errorf("expected 80x24 cells, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	s.SetBackingSize(641, 385)
	if s.Canvas.Width != 81 || s.Canvas.Height != 25 {
		t.Errorf("expected partial cells to round up, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
}

func TestSurface_HiddenUntilOpaque(t *testing.T) {
	s := NewSurface(4)
	s.SetBackingSize(80, 64)
	ctx := s.Context()

	ctx.SetStrokeStyle(web.RGBA{R: 200, G: 200, B: 210, A: 0.5})
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(40, 0)
	ctx.Stroke()
	if s.Canvas.Grid[0][0] != blank {
		t.Fatal("nothing should draw at zero opacity")
	}

	s.SetOpacity(0.58)
	ctx.Stroke()
	if s.Canvas.Grid[0][0] == blank {
		t.Fatal("expected the line after reveal")
	}
	if got := s.Canvas.Level[0][0]; got < 0.289 || got > 0.291 {
		t.Errorf("expected level 0.29, got %f", got)
	}
}

func TestSurface_TransformAndClear(t *testing.T) {
	s := NewSurface(4)
	s.SetBackingSize(160, 128)
	s.SetOpacity(1)
	s.SetTransform(2, 0, 0, 2, 0, 0)
	ctx := s.Context()

	ctx.SetFillStyle(web.RGBA{A: 1})
	ctx.BeginPath()
	ctx.Arc(10, 10, 0.5, 0, 6.28)
	ctx.Fill()
	// (10,10) logical -> (20,20) backing -> (5,5) sub-pixels -> cell (2,1)
	if s.Canvas.Grid[1][2] == blank {
		t.Error("expected dot at cell (2,1)")
	}

	ctx.ClearRect(0, 0, 80, 64)
	for _, row := range s.Canvas.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("expected a cleared canvas")
			}
		}
	}
}

func TestSurface_PartialClearKeepsOtherCells(t *testing.T) {
	s := NewSurface(4)
	s.SetBackingSize(160, 128)
	s.SetOpacity(1)
	ctx := s.Context()

	ctx.SetFillStyle(web.RGBA{A: 1})
	ctx.BeginPath()
	ctx.Arc(4, 8, 0.5, 0, 6.28)
	ctx.Arc(100, 100, 0.5, 0, 6.28)
	ctx.Fill()

	// Clears cells (0..4, 0..2) only.
	ctx.ClearRect(0, 0, 40, 32)
	if s.Canvas.Grid[0][0] != blank {
		t.Error("expected cell (0,0) cleared")
	}
	if s.Canvas.Grid[6][12] == blank {
		t.Error("expected cell (12,6) to survive a partial clear")
	}
}

func TestSurface_Origin(t *testing.T) {
	s := NewSurface(4)
	s.SetOrigin(0, 32)
	if x, y := s.Origin(); x != 0 || y != 32 {
		t.Errorf("unexpected origin %v,%v", x, y)
	}
}
