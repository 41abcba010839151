package arena

// splitmix64 is a fast 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash2D returns a deterministic hash for (x,y) under seed.
func hash2D(seed uint64, x, y int) uint64 {
	h := seed
	h ^= uint64(uint32(x)) * 0x9E3779B185EBCA87
	h ^= uint64(uint32(y)) * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

// Rand is a tiny deterministic RNG (xorshift64*). Level generation and
// pickup placement use it so a seed reproduces a session.
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: splitmix64(seed)}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Range returns an int in [min, max].
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}
