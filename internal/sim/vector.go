package sim

// SimVector is a triple of SimScalar: X is the map's east-west axis, Z
// is north-south, Y is height, matching the original engine's
// ground-plane-is-XZ convention (spec.md §4.1 "0 = +Z").
type SimVector struct {
	X, Y, Z SimScalar
}

var VectorZero = SimVector{}

func (v SimVector) Add(o SimVector) SimVector {
	return SimVector{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v SimVector) Sub(o SimVector) SimVector {
	return SimVector{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v SimVector) Scale(s SimScalar) SimVector {
	return SimVector{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

func (v SimVector) Neg() SimVector {
	return SimVector{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

// LengthXZ returns the ground-plane distance from the origin, used by
// movement arrival checks and weapon-range tests.
func (v SimVector) LengthXZ() SimScalar {
	return Hypot(v.X, v.Z)
}

// DistanceXZ returns the ground-plane distance between v and o.
func (v SimVector) DistanceXZ(o SimVector) SimScalar {
	return v.Sub(o).LengthXZ()
}

// HeadingTo returns the SimAngle from v to o on the ground plane,
// using the Atan2(x, z) convention so that angle 0 points toward +Z.
func (v SimVector) HeadingTo(o SimVector) SimAngle {
	d := o.Sub(v)
	return Atan2(d.X, d.Z)
}

// FromHeading returns a unit-length (scale-1) direction vector on the
// ground plane for the given heading.
func FromHeading(a SimAngle) SimVector {
	return SimVector{X: Sin(a), Y: ScalarZero, Z: Cos(a)}
}
