package metrics

import "github.com/san-kum/particleweb/internal/web"

// Metric accumulates one scalar over the frames it observes.
type Metric interface {
	web.Observer
	Name() string
	Value() float64
	Reset()
}

type mean struct {
	name    string
	pick    func(web.FrameStats) float64
	total   float64
	samples int
}

func (m *mean) Name() string { return m.name }

func (m *mean) OnFrame(s web.FrameStats) {
	m.total += m.pick(s)
	m.samples++
}

func (m *mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *mean) Reset() {
	m.total = 0
	m.samples = 0
}

// NewMeanLinks averages the links drawn per frame.
func NewMeanLinks() Metric {
	return &mean{name: "links", pick: func(s web.FrameStats) float64 { return float64(s.Links) }}
}

// NewMeanSpeed averages the mean particle speed, in units per frame.
func NewMeanSpeed() Metric {
	return &mean{name: "speed", pick: func(s web.FrameStats) float64 { return s.MeanSpeed }}
}

// NewPointerActivity is the fraction of frames rendered under pointer influence.
func NewPointerActivity() Metric {
	return &mean{name: "pointer", pick: func(s web.FrameStats) float64 {
		if s.Influence > 0 {
			return 1
		}
		return 0
	}}
}

// PeakLinks tracks the most links drawn in a single frame.
type PeakLinks struct {
	peak int
}

func NewPeakLinks() *PeakLinks { return &PeakLinks{} }

func (p *PeakLinks) Name() string { return "peak_links" }

func (p *PeakLinks) OnFrame(s web.FrameStats) {
	if s.Links > p.peak {
		p.peak = s.Links
	}
}

func (p *PeakLinks) Value() float64 { return float64(p.peak) }
func (p *PeakLinks) Reset()         { p.peak = 0 }

// Defaults returns a fresh set of the standard frame metrics.
func Defaults() []Metric {
	return []Metric{NewMeanLinks(), NewPeakLinks(), NewMeanSpeed(), NewPointerActivity()}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
