package host

// FixedWindow is a window with a settable size.
type FixedWindow struct {
	W, H float64
	DPR  float64
}

func (w *FixedWindow) InnerSize() (float64, float64) { return w.W, w.H }
func (w *FixedWindow) DevicePixelRatio() float64     { return w.DPR }

func (w *FixedWindow) SetSize(width, height float64) {
	w.W, w.H = width, height
}
