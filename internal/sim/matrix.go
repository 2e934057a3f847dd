package sim

// Matrix4 is a 4x4 row-major transform over SimScalar. Only the
// operations piece_transform (spec §4.1) needs are implemented:
// translation, single-axis rotation, and composition.
type Matrix4 struct {
	m [4][4]SimScalar
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m.m[i][i] = ScalarOne
	}
	return m
}

// Translate4 returns a pure-translation matrix.
func Translate4(v SimVector) Matrix4 {
	m := Identity4()
	m.m[0][3] = v.X
	m.m[1][3] = v.Y
	m.m[2][3] = v.Z
	return m
}

// RotateX4, RotateY4, RotateZ4 build rotation matrices about each axis
// using the table-driven Sin/Cos, so they are as deterministic as the
// rest of the sim.
func RotateX4(a SimAngle) Matrix4 {
	m := Identity4()
	c, s := Cos(a), Sin(a)
	m.m[1][1], m.m[1][2] = c, s.Neg()
	m.m[2][1], m.m[2][2] = s, c
	return m
}

func RotateY4(a SimAngle) Matrix4 {
	m := Identity4()
	c, s := Cos(a), Sin(a)
	m.m[0][0], m.m[0][2] = c, s
	m.m[2][0], m.m[2][2] = s.Neg(), c
	return m
}

func RotateZ4(a SimAngle) Matrix4 {
	m := Identity4()
	c, s := Cos(a), Sin(a)
	m.m[0][0], m.m[0][1] = c, s.Neg()
	m.m[1][0], m.m[1][1] = s, c
	return m
}

// Mul composes m then o, i.e. returns m * o in row-major terms: a
// point p is transformed as (m.Mul(o)).Apply(p) == m.Apply(o.Apply(p)).
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := ScalarZero
			for k := 0; k < 4; k++ {
				sum = sum.Add(m.m[r][k].Mul(o.m[k][c]))
			}
			out.m[r][c] = sum
		}
	}
	return out
}

// Apply transforms a point (w=1 implicit).
func (m Matrix4) Apply(p SimVector) SimVector {
	x := m.m[0][0].Mul(p.X).Add(m.m[0][1].Mul(p.Y)).Add(m.m[0][2].Mul(p.Z)).Add(m.m[0][3])
	y := m.m[1][0].Mul(p.X).Add(m.m[1][1].Mul(p.Y)).Add(m.m[1][2].Mul(p.Z)).Add(m.m[1][3])
	z := m.m[2][0].Mul(p.X).Add(m.m[2][1].Mul(p.Y)).Add(m.m[2][2].Mul(p.Z)).Add(m.m[2][3])
	return SimVector{X: x, Y: y, Z: z}
}

// Cell returns element (r, c).
func (m Matrix4) Cell(r, c int) SimScalar { return m.m[r][c] }

// PieceLocalTransform computes T(origin + offset) * Rz * Rx * Ry for a
// single piece, per spec §4.1's tie-break order (Z then X then Y).
func PieceLocalTransform(origin, offset SimVector, rotX, rotY, rotZ SimAngle) Matrix4 {
	t := Translate4(origin.Add(offset))
	rz := RotateZ4(rotZ)
	rx := RotateX4(rotX)
	ry := RotateY4(rotY)
	return t.Mul(rz).Mul(rx).Mul(ry)
}
