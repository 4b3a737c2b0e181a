package engine

import "math/rand/v2"

// RandomSource picks spawn locations. Tests inject a scripted source to pin placement.
type RandomSource interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

type defaultRandom struct {
	r *rand.Rand
}

// NewRandomSource returns a RandomSource backed by a PCG generator seeded with seed
func NewRandomSource(seed uint64) RandomSource {
	return &defaultRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *defaultRandom) Intn(n int) int {
	return d.r.IntN(n)
}

// globalRandom uses the auto-seeded package generator
type globalRandom struct{}

func (globalRandom) Intn(n int) int {
	return rand.IntN(n)
}
