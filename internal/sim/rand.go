package sim

// Rand is a deterministic xorshift64* RNG, the same construction the
// teacher uses for world generation (internal/game/mathutil.go), used
// here for the RAND bytecode instruction; weapon firing applies no
// spray-angle jitter. It must be seeded and advanced only from sim state — never
// math/rand's global source — so that two peers given the same
// commands produce the same stream (spec §8 determinism law).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &Rand{s: seed}
}

func (r *Rand) nextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 0x2545F4914F6CDD1D
}

// RangeI32 returns a value in [lo, hi], matching the RAND(lo, hi)
// bytecode instruction's inclusive range.
func (r *Rand) RangeI32(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	span := uint64(hi-lo) + 1
	return lo + int32(r.nextU64()%span)
}

// RangeScalar returns a uniformly distributed SimScalar in [lo, hi];
// nothing in the simulation calls it. It operates purely on the Q16.16 bit pattern so the
// result stays inside the sim-determinism contract — no float64
// conversion occurs on this path.
func (r *Rand) RangeScalar(lo, hi SimScalar) SimScalar {
	if !hi.GreaterThan(lo) {
		return lo
	}
	spanBits := uint64(hi.Sub(lo).Bits())
	offset := int32(r.nextU64() % (spanBits + 1))
	return lo.Add(ScalarFromBits(offset))
}
