package economy

// Rand is the randomness source every stochastic resolver draws from.
// *math/rand.Rand satisfies it; tests pass a scripted fake.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// noise returns a multiplier in [1-spread, 1+spread).
func noise(rng Rand, spread float64) float64 {
	return 1 + (rng.Float64()*2-1)*spread
}
