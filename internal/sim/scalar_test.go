package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimScalar(t *testing.T) {
	Convey("Given fixed-point SimScalar arithmetic", t, func() {
		Convey("Integer construction round-trips exactly", func() {
			So(ScalarFromInt(5).ToFloat64(), ShouldEqual, 5.0)
			So(ScalarFromInt(-3).ToFloat64(), ShouldEqual, -3.0)
		})

		Convey("Add/Sub/Mul/Div behave like real arithmetic within quantization", func() {
			a := ScalarFromFloat64(2.5)
			b := ScalarFromFloat64(1.5)
			So(a.Add(b).ToFloat64(), ShouldAlmostEqual, 4.0, 0.0001)
			So(a.Sub(b).ToFloat64(), ShouldAlmostEqual, 1.0, 0.0001)
			So(a.Mul(b).ToFloat64(), ShouldAlmostEqual, 3.75, 0.0001)
			So(a.Div(b).ToFloat64(), ShouldAlmostEqual, 5.0/3.0, 0.0001)
		})

		Convey("Div by zero returns zero rather than panicking", func() {
			So(ScalarOne.Div(ScalarZero), ShouldResemble, ScalarZero)
		})

		Convey("Two SimScalars are equal iff their bit patterns are equal", func() {
			x := ScalarFromFloat64(0.1)
			y := ScalarFromBits(x.Bits())
			So(x.Equal(y), ShouldBeTrue)
		})

		Convey("ScalarMin/ScalarMax/ScalarClamp", func() {
			lo, hi := ScalarFromInt(0), ScalarFromInt(10)
			So(ScalarClamp(ScalarFromInt(-5), lo, hi), ShouldResemble, lo)
			So(ScalarClamp(ScalarFromInt(15), lo, hi), ShouldResemble, hi)
			So(ScalarClamp(ScalarFromInt(4), lo, hi), ShouldResemble, ScalarFromInt(4))
		})

		Convey("Sqrt converges for perfect squares", func() {
			nine := ScalarFromInt(9)
			So(nine.Sqrt().ToFloat64(), ShouldAlmostEqual, 3.0, 0.001)
		})

		Convey("Hypot computes the Euclidean norm of (x, z)", func() {
			h := Hypot(ScalarFromInt(3), ScalarFromInt(4))
			So(h.ToFloat64(), ShouldAlmostEqual, 5.0, 0.001)
		})

		Convey("JSON round-trips the raw bit pattern, not a lossy float", func() {
			s := ScalarFromFloat64(0.1)
			b, err := s.MarshalJSON()
			So(err, ShouldBeNil)
			var out SimScalar
			So(out.UnmarshalJSON(b), ShouldBeNil)
			So(out.Bits(), ShouldEqual, s.Bits())
		})
	})
}
