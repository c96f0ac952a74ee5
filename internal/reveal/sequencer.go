// Package reveal sequences the headline settle and the fade-in of the particle web.
//
// The headline settles exactly once, on whichever comes first: the end of its sweep
// animation or a timer just before the sweep would end. Settling reveals the web.
// Two independent fallbacks also reveal it: a short delay after the page has loaded,
// and the first rendered frames of the web itself.
//
// Timers are polled through Tick rather than run on goroutines, so a Sequencer lives on
// the same single event loop as the web it reveals.
package reveal

import (
	"math"

	"github.com/san-kum/particleweb/internal/web"
)

// Revealer is the web's reveal operation. Reveal must be idempotent.
type Revealer interface {
	Reveal()
}

type Timing struct {
	SweepMs           float64
	SettleEarlyMs     float64
	LoadRevealDelayMs float64
	// FirstFrameDelay is how many rendered frames trigger the frame fallback.
	FirstFrameDelay int
}

func DefaultTiming() Timing {
	return Timing{SweepMs: 2000, SettleEarlyMs: 180, LoadRevealDelayMs: 50, FirstFrameDelay: 2}
}

type Sequencer struct {
	timing   Timing
	target   Revealer
	headline bool

	settleAt float64
	loadAt   float64
	settled  bool
	reveals  int
}

// New creates a sequencer whose clock starts at now. With headline false the settle
// path is absent and only the fallbacks reveal. A nil target is allowed.
func New(target Revealer, t Timing, headline bool, now float64) *Sequencer {
	return &Sequencer{
		timing:   t,
		target:   target,
		headline: headline,
		settleAt: now + math.Max(0, t.SweepMs-t.SettleEarlyMs),
		loadAt:   math.NaN(),
	}
}

// AnimationEnd is the headline sweep's completion signal.
func (s *Sequencer) AnimationEnd() { s.settle() }

// Loaded is the page-load signal.
func (s *Sequencer) Loaded(now float64) {
	if math.IsNaN(s.loadAt) {
		s.loadAt = now + s.timing.LoadRevealDelayMs
	}
}

// Tick fires every timer due at now.
func (s *Sequencer) Tick(now float64) {
	if now >= s.settleAt {
		s.settle()
	}
	if !math.IsNaN(s.loadAt) && now >= s.loadAt {
		s.loadAt = math.Inf(1)
		s.reveal()
	}
}

// OnFrame implements web.Observer for the first-frame fallback.
func (s *Sequencer) OnFrame(st web.FrameStats) {
	if st.Frame+1 == s.timing.FirstFrameDelay {
		s.reveal()
	}
}

func (s *Sequencer) Settled() bool { return s.settled }

// Reveals counts how many times the target was asked to reveal.
func (s *Sequencer) Reveals() int { return s.reveals }

// Progress is the sweep position in [0,1] at now; 1 once settled.
func (s *Sequencer) Progress(now, start float64) float64 {
	if s.settled || s.timing.SweepMs <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, (now-start)/s.timing.SweepMs))
}

func (s *Sequencer) settle() {
	if s.settled || !s.headline {
		return
	}
	s.settled = true
	s.reveal()
}

func (s *Sequencer) reveal() {
	s.reveals++
	if s.target != nil {
		s.target.Reveal()
	}
}
