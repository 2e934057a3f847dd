package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTickAxisMove(t *testing.T) {
	Convey("Given a pending Move op targeting 10 at speed 4 per tick", t, func() {
		cur := ScalarZero
		op := PendingOp{Kind: OpMove, Target: ScalarFromInt(10), Speed: ScalarFromInt(4)}

		Convey("each tick advances cur toward target by speed*dt", func() {
			tickAxisMove(&cur, &op, ScalarOne)
			So(cur, ShouldResemble, ScalarFromInt(4))
			So(op.Kind, ShouldEqual, OpMove)

			tickAxisMove(&cur, &op, ScalarOne)
			So(cur, ShouldResemble, ScalarFromInt(8))
		})

		Convey("the op clamps to target and clears on completion rather than overshooting", func() {
			tickAxisMove(&cur, &op, ScalarOne)
			tickAxisMove(&cur, &op, ScalarOne)
			tickAxisMove(&cur, &op, ScalarOne)
			So(cur, ShouldResemble, ScalarFromInt(10))
			So(op.Kind, ShouldEqual, OpNone)
		})
	})

	Convey("Given a pending Move op approaching target from above", t, func() {
		cur := ScalarFromInt(10)
		op := PendingOp{Kind: OpMove, Target: ScalarZero, Speed: ScalarFromInt(100)}

		Convey("it steps downward and clamps at the target", func() {
			tickAxisMove(&cur, &op, ScalarOne)
			So(cur, ShouldResemble, ScalarZero)
			So(op.Kind, ShouldEqual, OpNone)
		})
	})

	Convey("Given no pending op", t, func() {
		cur := ScalarFromInt(5)
		op := PendingOp{Kind: OpNone}

		Convey("tickAxisMove leaves cur untouched", func() {
			tickAxisMove(&cur, &op, ScalarOne)
			So(cur, ShouldResemble, ScalarFromInt(5))
		})
	})
}

func TestTickAxisTurnCompletesWithinStep(t *testing.T) {
	Convey("Given a Turn op whose remaining angle is smaller than one tick's max step", t, func() {
		cur := SimAngle(0)
		op := PendingOp{Kind: OpTurn, TargetAngle: SimAngle(100), Speed: ScalarFromInt(1000000)}

		Convey("it snaps exactly to the target and clears the op", func() {
			tickAxisTurn(&cur, &op, ScalarOne)
			So(cur, ShouldEqual, SimAngle(100))
			So(op.Kind, ShouldEqual, OpNone)
		})
	})
}

func TestTickAxisTurnSpinAndStopSpin(t *testing.T) {
	Convey("Given a Spin op accelerating toward a target angular speed", t, func() {
		cur := SimAngle(0)
		op := PendingOp{Kind: OpSpin, Speed: ScalarZero, SpinTarget: ScalarFromInt(100), Acceleration: ScalarFromInt(10)}

		Convey("speed ramps up by Acceleration*dt each tick and never overshoots SpinTarget", func() {
			tickAxisTurn(&cur, &op, ScalarOne)
			So(op.Speed, ShouldResemble, ScalarFromInt(10))

			for i := 0; i < 20; i++ {
				tickAxisTurn(&cur, &op, ScalarOne)
			}
			So(op.Speed, ShouldResemble, ScalarFromInt(100))
			So(op.Kind, ShouldEqual, OpSpin)
		})
	})

	Convey("Given a spinning piece transitioned to StopSpin", t, func() {
		cur := SimAngle(0)
		op := PendingOp{Kind: OpStopSpin, Speed: ScalarFromInt(20), Acceleration: ScalarFromInt(10)}

		Convey("speed decelerates to zero and the op clears, never going negative", func() {
			tickAxisTurn(&cur, &op, ScalarOne)
			So(op.Speed, ShouldResemble, ScalarFromInt(10))
			So(op.Kind, ShouldEqual, OpStopSpin)

			tickAxisTurn(&cur, &op, ScalarOne)
			So(op.Speed, ShouldResemble, ScalarZero)

			tickAxisTurn(&cur, &op, ScalarOne)
			So(op.Kind, ShouldEqual, OpNone)
		})
	})
}

func TestTickPiecesDoubleBuffersPreviousState(t *testing.T) {
	Convey("Given a unit with a pending move op on one piece", t, func() {
		s := newTestSimulation()
		u := s.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)
		u.Pieces = append(u.Pieces, UnitMeshState{})
		u.Pieces[0].MoveOp[AxisX] = PendingOp{Kind: OpMove, Target: ScalarFromInt(5), Speed: ScalarFromInt(5)}

		Convey("tickPieces snapshots the prior offset into PreviousOffset before advancing", func() {
			s.tickPieces(ScalarOne)
			So(u.Pieces[0].PreviousOffset, ShouldResemble, VectorZero)
			So(u.Pieces[0].Offset.X, ShouldResemble, ScalarFromInt(5))
		})

		Convey("a dead unit's pieces are left untouched", func() {
			s.killUnit(u)
			before := u.Pieces[0].Offset
			s.tickPieces(ScalarOne)
			So(u.Pieces[0].Offset, ShouldResemble, before)
		})
	})
}
