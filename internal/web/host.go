package web

import "fmt"

// RGBA is a straight (non-premultiplied) color with a fractional alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}

// Context2D is an immediate-mode 2D drawing context.
type Context2D interface {
	// SetTransform maps logical units to backing pixels: x' = a*x + c*y + e, y' = b*x + d*y + f.
	SetTransform(a, b, c, d, e, f float64)
	ClearRect(x, y, w, h float64)
	SetStrokeStyle(c RGBA)
	SetFillStyle(c RGBA)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64)
	Stroke()
	Fill()
}

// Surface is the drawing surface the web renders into.
type Surface interface {
	SetLogicalSize(w, h float64)
	SetBackingSize(w, h int)
	Context() Context2D
	// SetOpacity sets the visibility of the whole surface in [0,1].
	SetOpacity(a float64)
	// Origin is the surface's top-left corner in the pointer's reference space.
	Origin() (x, y float64)
}

// Window reports the viewport in device-independent units.
type Window interface {
	InnerSize() (w, h float64)
	DevicePixelRatio() float64
}

// FrameFunc receives the frame timestamp in milliseconds.
type FrameFunc func(ts float64)

// FrameID identifies a requested frame.
type FrameID uint64

// Scheduler is the host's per-frame scheduling primitive.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// Clock is a monotonic clock in milliseconds.
type Clock interface {
	Now() float64
}

// Host bundles the runtime boundary. Any field may be nil; the web then treats the
// corresponding feature as absent.
type Host struct {
	Window    Window
	Surface   Surface
	Scheduler Scheduler
	Clock     Clock
}

type nopContext struct{}

func (nopContext) SetTransform(a, b, c, d, e, f float64) {}
func (nopContext) ClearRect(x, y, w, h float64)          {}
func (nopContext) SetStrokeStyle(RGBA)                   {}
func (nopContext) SetFillStyle(RGBA)                     {}
func (nopContext) SetLineWidth(float64)                  {}
func (nopContext) BeginPath()                            {}
func (nopContext) MoveTo(x, y float64)                   {}
func (nopContext) LineTo(x, y float64)                   {}
func (nopContext) Arc(x, y, r, start, end float64)       {}
func (nopContext) Stroke()                               {}
func (nopContext) Fill()                                 {}
