package metrics

import (
	"math"
	"sort"
	"time"
)

// Timing collects wall-clock frame costs in milliseconds.
type Timing struct {
	samples []float64
}

func (t *Timing) Add(d time.Duration) {
	t.samples = append(t.samples, float64(d)/float64(time.Millisecond))
}

func (t *Timing) Samples() []float64 { return t.samples }
func (t *Timing) Len() int           { return len(t.samples) }

func (t *Timing) Mean() float64 {
	if len(t.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range t.samples {
		sum += s
	}
	return sum / float64(len(t.samples))
}

func (t *Timing) Max() float64 {
	m := 0.0
	for _, s := range t.samples {
		m = math.Max(m, s)
	}
	return m
}

// Percentile returns the p-th percentile (0-100) by nearest rank.
func (t *Timing) Percentile(p float64) float64 {
	if len(t.samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), t.samples...)
	sort.Float64s(sorted)
	rank := int(math.Ceil(p*float64(len(sorted))/100)) - 1
	rank = min(max(rank, 0), len(sorted)-1)
	return sorted[rank]
}
