// Package host provides reusable pieces of the runtime boundary the particle web
// needs: a frame queue, clocks, fixed windows and a recording drawing context.
package host

import "github.com/san-kum/particleweb/internal/web"

type request struct {
	id web.FrameID
	fn web.FrameFunc
}

// Scheduler is a frame queue in the style of requestAnimationFrame. Callbacks
// requested while a frame runs wait for the next RunFrame.
type Scheduler struct {
	next    web.FrameID
	pending []request
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make([]request, 0, 1)}
}

func (s *Scheduler) RequestFrame(fn web.FrameFunc) web.FrameID {
	s.next++
	s.pending = append(s.pending, request{id: s.next, fn: fn})
	return s.next
}

func (s *Scheduler) CancelFrame(id web.FrameID) {
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// RunFrame invokes every callback pending at call time with ts and returns how many ran.
func (s *Scheduler) RunFrame(ts float64) int {
	batch := s.pending
	s.pending = make([]request, 0, 1)
	for _, r := range batch {
		r.fn(ts)
	}
	return len(batch)
}

func (s *Scheduler) Pending() int { return len(s.pending) }
