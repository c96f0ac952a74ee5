package web

// Params holds every tunable constant of the particle web.
type Params struct {
	// Population: round(clamp(area/DensityDivisor, MinCount, MaxCount)).
	DensityDivisor float64
	MinCount       int
	MaxCount       int

	MaxSpeed  float64
	MinRadius float64
	MaxRadius float64

	// Link distance: clamp(sqrt(area)/LinkScale, MinLinkDist, MaxLinkDist).
	LinkScale   float64
	MinLinkDist float64
	MaxLinkDist float64
	LinkAlpha   float64
	LinkBoost   float64
	MinAlpha    float64
	LineWidth   float64

	InfluenceRadius float64
	DecayMs         float64
	AttractionRate  float64
	Epsilon         float64

	Damping    float64
	WrapMargin float64

	RevealOpacity float64

	LinkColor RGBA
	DotColor  RGBA
}

func DefaultParams() Params {
	return Params{
		DensityDivisor:  17000,
		MinCount:        100,
		MaxCount:        180,
		MaxSpeed:        0.06,
		MinRadius:       0.8,
		MaxRadius:       2.1,
		LinkScale:       6.5,
		MinLinkDist:     100,
		MaxLinkDist:     180,
		LinkAlpha:       0.28,
		LinkBoost:       1.4,
		MinAlpha:        0.01,
		LineWidth:       1,
		InfluenceRadius: 370,
		DecayMs:         200,
		AttractionRate:  0.02,
		Epsilon:         0.001,
		Damping:         0.999,
		WrapMargin:      5,
		RevealOpacity:   0.58,
		LinkColor:       RGBA{R: 200, G: 200, B: 210, A: 1},
		DotColor:        RGBA{R: 235, G: 235, B: 245, A: 0.95},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
