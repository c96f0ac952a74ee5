package host

import "time"

// WallClock reports milliseconds since it was created, from the monotonic clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// ManualClock only moves when told to.
type ManualClock struct {
	T float64
}

func (c *ManualClock) Now() float64 { return c.T }

func (c *ManualClock) Advance(ms float64) float64 {
	c.T += ms
	return c.T
}
