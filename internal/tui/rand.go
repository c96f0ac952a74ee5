package tui

import (
	"math/rand"
	"time"
)

// seededRand uses seed when set and the wall clock otherwise.
func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
