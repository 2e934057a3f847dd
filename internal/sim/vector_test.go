package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimVector(t *testing.T) {
	Convey("Given ground-plane SimVector geometry", t, func() {
		Convey("DistanceXZ matches the Pythagorean length of the difference", func() {
			a := SimVector{X: ScalarFromInt(0), Z: ScalarFromInt(0)}
			b := SimVector{X: ScalarFromInt(3), Z: ScalarFromInt(4)}
			So(a.DistanceXZ(b).ToFloat64(), ShouldAlmostEqual, 5.0, 0.001)
		})

		Convey("HeadingTo(+Z) is angle 0, matching the 0 = +Z convention", func() {
			a := VectorZero
			b := SimVector{Z: ScalarFromInt(10)}
			So(a.HeadingTo(b), ShouldEqual, SimAngle(0))
		})

		Convey("FromHeading(HeadingTo(a, b)) points from a toward b", func() {
			a := SimVector{X: ScalarFromInt(2), Z: ScalarFromInt(2)}
			b := SimVector{X: ScalarFromInt(2), Z: ScalarFromInt(12)}
			heading := a.HeadingTo(b)
			dir := FromHeading(heading)
			So(dir.X.ToFloat64(), ShouldAlmostEqual, 0.0, 0.01)
			So(dir.Z.ToFloat64(), ShouldAlmostEqual, 1.0, 0.01)
		})

		Convey("Add/Sub are inverse operations", func() {
			a := SimVector{X: ScalarFromInt(5), Y: ScalarFromInt(1), Z: ScalarFromInt(-3)}
			b := SimVector{X: ScalarFromInt(2), Y: ScalarFromInt(2), Z: ScalarFromInt(7)}
			So(a.Add(b).Sub(b), ShouldResemble, a)
		})
	})
}
