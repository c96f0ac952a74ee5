package web

import "math"

// Viewport is the drawable area in device-independent units.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// Area is width*height, never below 1 so area-derived formulas stay finite.
func (v Viewport) Area() float64 {
	return math.Max(1, v.Width*v.Height)
}

// Sizer tracks the current viewport and keeps the surface's backing buffer in step with it.
type Sizer struct {
	vp Viewport
}

// Resize reads the window, sizes the surface for sharp rendering at the window's pixel
// density and records the new dimensions. A nil window leaves the viewport unchanged;
// a nil surface only records the dimensions.
func (s *Sizer) Resize(win Window, surf Surface) Viewport {
	if win == nil {
		return s.vp
	}
	w, h := win.InnerSize()
	w, h = math.Max(0, w), math.Max(0, h)
	dpr := win.DevicePixelRatio()
	if !(dpr >= 1) {
		dpr = 1
	}

	if surf != nil {
		surf.SetLogicalSize(w, h)
		surf.SetBackingSize(int(math.Floor(w*dpr)), int(math.Floor(h*dpr)))
		if ctx := surf.Context(); ctx != nil {
			ctx.SetTransform(dpr, 0, 0, dpr, 0, 0)
		}
	}

	s.vp = Viewport{Width: w, Height: h, DPR: dpr}
	return s.vp
}

func (s *Sizer) Viewport() Viewport { return s.vp }
