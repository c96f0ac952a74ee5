// Package web implements the particle web: a field of drifting points joined by
// proximity links whose opacity encodes distance, perturbed by a decaying pointer.
//
// The package is host-agnostic. A host supplies the runtime boundary:
//
//   - [Window]: viewport size and device pixel ratio
//   - [Surface]: the drawing surface and its [Context2D]
//   - [Scheduler]: the per-frame callback primitive
//   - [Clock]: a monotonic millisecond clock
//
// The [Web] controller owns the [Sizer], the [Field] and the [Pointer] and advances
// them one frame per [Web.Step].
//
// # Example
//
//	w := web.New(web.DefaultParams(), web.Host{Window: win, Surface: surf, Scheduler: sched, Clock: clk}, nil)
//	w.Start()
//	// host delivers: w.Resize(), w.PointerMove(x, y), frame callbacks
//
// # Thread Safety
//
// A Web is NOT safe for concurrent use. Resize, pointer and frame callbacks must be
// delivered from a single goroutine, the way a browser delivers events and animation
// frames from one queue. Hosts in this module (bubbletea Update loop, raylib main loop,
// the manual scheduler) all satisfy this.
package web
