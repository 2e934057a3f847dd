package sim

import "math"

// SimAngle is an unsigned 16-bit turn-fraction: 0 = +Z, wrapping
// modulo 2^16. HalfTurn and QuarterTurn are expressed in the same
// units.
type SimAngle uint16

const (
	FullTurn    SimAngle = 0
	HalfTurn    SimAngle = 1 << 15
	QuarterTurn SimAngle = 1 << 14
)

// AngleFromRadians converts a float64 radian value to SimAngle. This
// is a load-time/authoring conversion (e.g. turning a definition
// table's documented angle into the wire representation); it is not
// called on the simulation's per-tick hot path.
func AngleFromRadians(rad float64) SimAngle {
	turns := rad / (2 * math.Pi)
	return SimAngle(int64(math.Round(turns*65536)) & 0xFFFF)
}

// ToRadians converts back to float64, for rendering and logging only.
func (a SimAngle) ToRadians() float64 {
	return float64(a) / 65536 * 2 * math.Pi
}

func (a SimAngle) Add(o SimAngle) SimAngle { return a + o }
func (a SimAngle) Sub(o SimAngle) SimAngle { return a - o }

// signedDelta returns the short-way signed difference target-current,
// in (-HalfTurn, HalfTurn].
func signedDelta(current, target SimAngle) int32 {
	d := int32(target) - int32(current)
	d &= 0xFFFF
	if d > int32(HalfTurn) {
		d -= 1 << 16
	}
	return d
}

// AngleBetween returns the short-way difference between a and b,
// always <= HalfTurn in magnitude, represented as an unsigned
// SimAngle (i.e. the absolute turn-fraction distance).
func AngleBetween(a, b SimAngle) SimAngle {
	d := signedDelta(a, b)
	if d < 0 {
		d = -d
	}
	return SimAngle(d)
}

// TurnTowards moves current toward target by at most maxStep, in
// whichever direction is shorter. Equals target exactly once
// maxStep >= AngleBetween(current, target).
func TurnTowards(current, target, maxStep SimAngle) SimAngle {
	d := signedDelta(current, target)
	if d == 0 {
		return current
	}
	step := int32(maxStep)
	if d > 0 {
		if int32(d) <= step {
			return target
		}
		return current + SimAngle(step)
	}
	if int32(-d) <= step {
		return target
	}
	return current - SimAngle(step)
}

const sinTableBits = 14 // quarter-turn resolution: 2^14 + 1 entries
const sinTableSize = 1<<sinTableBits + 1

// sinTable holds sin(theta) for theta in [0, QuarterTurn] sampled at
// sinTableSize points, quantized once at package init from float64
// math.Sin. Every conforming build computes the identical table, so
// all downstream Sin/Cos/Atan2 calls are a pure function of the
// SimAngle/SimScalar bit patterns thereafter — no runtime libm calls
// occur on the simulation's hot path.
var sinTable [sinTableSize]int32

func init() {
	for i := 0; i < sinTableSize; i++ {
		theta := float64(i) / float64(1<<sinTableBits) * (math.Pi / 2)
		sinTable[i] = int32(math.Round(math.Sin(theta) * float64(scalarOne)))
	}
}

func sinQuarter(frac uint32) int32 {
	// frac is in [0, 1<<sinTableBits], indexing directly into the table.
	if frac > 1<<sinTableBits {
		frac = 1 << sinTableBits
	}
	return sinTable[frac]
}

// Sin returns sin(a) as a SimScalar, deterministic across platforms
// since it only indexes the precomputed table.
func Sin(a SimAngle) SimScalar {
	u := uint32(a)
	quadrant := u >> 14
	frac := u & ((1 << 14) - 1)
	switch quadrant {
	case 0:
		return SimScalar{bits: sinQuarter(frac)}
	case 1:
		return SimScalar{bits: sinQuarter((1 << sinTableBits) - frac)}
	case 2:
		return SimScalar{bits: -sinQuarter(frac)}
	default:
		return SimScalar{bits: -sinQuarter((1 << sinTableBits) - frac)}
	}
}

// Cos returns cos(a) as a SimScalar via the quarter-turn phase shift.
func Cos(a SimAngle) SimScalar {
	return Sin(a + QuarterTurn)
}

// cordicIterations bounds the vectoring loop; at Q16.16 precision
// atan(2^-19) is already below the table's angular resolution, so
// iterations beyond that contribute nothing.
const cordicIterations = 20

// cordicAtanTable holds atan(2^-i) for i in [0, cordicIterations), in
// SimAngle turn-fraction units, quantized once at package init from
// float64 math.Atan — the same one-time quantization pattern as
// sinTable, so Atan2 itself runs as pure integer shifts and adds with
// no runtime libm call.
var cordicAtanTable [cordicIterations]int32

func init() {
	for i := 0; i < cordicIterations; i++ {
		theta := math.Atan(math.Pow(2, float64(-i)))
		cordicAtanTable[i] = int32(math.Round(theta / (2 * math.Pi) * 65536))
	}
}

// Atan2 returns the SimAngle whose direction matches (x, z) — z is the
// forward axis per spec.md's "0 = +Z" convention (Atan2(0, 1) == 0),
// x is the lateral axis — via fixed-point CORDIC vectoring rather than a
// runtime math.Atan2 call, matching Sin/Cos's table-driven determinism
// (only cordicAtanTable's one-time init quantizes through float64).
func Atan2(x, z SimScalar) SimAngle {
	X, Y := int64(z.bits), int64(x.bits)
	if X == 0 && Y == 0 {
		return 0
	}

	var acc int32
	if X < 0 {
		X, Y = -X, -Y
		acc = int32(HalfTurn)
	}

	for i := 0; i < cordicIterations; i++ {
		shift := uint(i)
		if Y < 0 {
			X, Y = X-(Y>>shift), Y+(X>>shift)
			acc -= cordicAtanTable[i]
		} else {
			X, Y = X+(Y>>shift), Y-(X>>shift)
			acc += cordicAtanTable[i]
		}
	}
	return SimAngle(uint16(acc))
}
