package metrics

import "github.com/san-kum/particleweb/internal/web"

// History keeps the most recent frames in a ring buffer.
type History struct {
	capacity int
	frames   []web.FrameStats
	next     int
	full     bool
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity, frames: make([]web.FrameStats, 0, capacity)}
}

func (h *History) OnFrame(s web.FrameStats) {
	if !h.full {
		h.frames = append(h.frames, s)
		if len(h.frames) == h.capacity {
			h.full = true
		}
		return
	}
	h.frames[h.next] = s
	h.next = (h.next + 1) % h.capacity
}

func (h *History) Len() int { return len(h.frames) }

// Frames returns the retained frames, oldest first.
func (h *History) Frames() []web.FrameStats {
	out := make([]web.FrameStats, 0, len(h.frames))
	if h.full {
		out = append(out, h.frames[h.next:]...)
		out = append(out, h.frames[:h.next]...)
		return out
	}
	return append(out, h.frames...)
}

// Last returns the newest frame.
func (h *History) Last() (web.FrameStats, bool) {
	if len(h.frames) == 0 {
		return web.FrameStats{}, false
	}
	if h.full {
		return h.frames[(h.next+h.capacity-1)%h.capacity], true
	}
	return h.frames[len(h.frames)-1], true
}

// Series extracts one value per retained frame, oldest first.
func (h *History) Series(pick func(web.FrameStats) float64) []float64 {
	frames := h.Frames()
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}

func Links(s web.FrameStats) float64     { return float64(s.Links) }
func Speed(s web.FrameStats) float64     { return s.MeanSpeed }
func Influence(s web.FrameStats) float64 { return s.Influence }
