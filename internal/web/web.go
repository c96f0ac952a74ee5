package web

import (
	"math/rand"
	"time"
)

// Web is the particle web controller. It owns all simulation state; every mutation goes
// through its methods.
type Web struct {
	params  Params
	sizer   Sizer
	field   *Field
	pointer Pointer

	window  Window
	surface Surface
	sched   Scheduler
	clock   Clock

	frame     FrameID
	scheduled bool
	frames    int

	revealed  bool
	observers []Observer
}

// New creates a web for the given host. A nil rng seeds one from the wall clock.
func New(p Params, h Host, rng *rand.Rand) *Web {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Web{
		params:    p,
		field:     NewField(p, rng),
		window:    h.Window,
		surface:   h.Surface,
		sched:     h.Scheduler,
		clock:     h.Clock,
		observers: make([]Observer, 0),
	}
}

func (w *Web) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Start sizes the surface, regenerates the field and schedules the first frame,
// cancelling any frame a previous Start left pending.
func (w *Web) Start() {
	w.Resize()
	w.Stop()
	w.schedule()
}

// Stop cancels the pending frame, if any.
func (w *Web) Stop() {
	if w.scheduled && w.sched != nil {
		w.sched.CancelFrame(w.frame)
	}
	w.scheduled = false
}

// Resize handles a window resize: the surface is resized and the field fully regenerated.
func (w *Web) Resize() {
	vp := w.sizer.Resize(w.window, w.surface)
	w.field.Regenerate(vp.Width, vp.Height)
}

// PointerMove records a pointer position given in the same space as Surface.Origin.
func (w *Web) PointerMove(x, y float64) {
	var ox, oy, ts float64
	if w.surface != nil {
		ox, oy = w.surface.Origin()
	}
	if w.clock != nil {
		ts = w.clock.Now()
	}
	w.pointer.OnMove(x-ox, y-oy, ts)
}

// Reveal makes the surface visible at the configured opacity. It may be called any
// number of times, before or after a surface is attached.
func (w *Web) Reveal() {
	w.revealed = true
	if w.surface != nil {
		w.surface.SetOpacity(w.params.RevealOpacity)
	}
}

// Attach binds a surface that did not exist when the web was created.
func (w *Web) Attach(s Surface) {
	w.surface = s
	if s == nil {
		return
	}
	if w.revealed {
		s.SetOpacity(w.params.RevealOpacity)
	}
}

func (w *Web) Revealed() bool     { return w.revealed }
func (w *Web) Params() Params     { return w.params }
func (w *Web) Viewport() Viewport { return w.sizer.Viewport() }
func (w *Web) Pointer() Pointer   { return w.pointer }
func (w *Web) Frames() int        { return w.frames }
func (w *Web) Pending() bool      { return w.scheduled }

// Particles returns the live particle slice. Callers must not retain it across a Resize.
func (w *Web) Particles() []Particle { return w.field.Particles }

func (w *Web) schedule() {
	if w.sched == nil {
		return
	}
	w.frame = w.sched.RequestFrame(w.Step)
	w.scheduled = true
}

func (w *Web) context() Context2D {
	if w.surface == nil {
		return nopContext{}
	}
	if ctx := w.surface.Context(); ctx != nil {
		return ctx
	}
	return nopContext{}
}
