package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScenario4LockstepBlocking(t *testing.T) {
	Convey("Given two registered players and no commands pushed yet", t, func() {
		l := NewLockstep()
		p0, p1 := PlayerIdFromSlot(0), PlayerIdFromSlot(1)
		l.RegisterPlayer(p0)
		l.RegisterPlayer(p1)

		Convey("TryPopCommands returns (nil, false) until every player has pushed", func() {
			batch, ok := l.TryPopCommands()
			So(ok, ShouldBeFalse)
			So(batch, ShouldBeNil)

			l.PushCommands(p0, nil)
			batch, ok = l.TryPopCommands()
			So(ok, ShouldBeFalse)
			So(batch, ShouldBeNil)
		})

		Convey("once both have pushed, it returns both batches and empties both queues", func() {
			cmdA := []PlayerCommand{moveOrderCommand(UnitId{}, VectorZero)}
			l.PushCommands(p0, cmdA)
			l.PushCommands(p1, nil)

			batch, ok := l.TryPopCommands()
			So(ok, ShouldBeTrue)
			So(batch, ShouldHaveLength, 2)
			So(l.BufferedCommandCount(p0), ShouldEqual, 0)
			So(l.BufferedCommandCount(p1), ShouldEqual, 0)

			_, ok = l.TryPopCommands()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestScenario5DesyncDetection(t *testing.T) {
	Convey("Given two players reporting per-tick hashes", t, func() {
		l := NewLockstep()
		p0, p1 := PlayerIdFromSlot(0), PlayerIdFromSlot(1)
		l.RegisterPlayer(p0)
		l.RegisterPlayer(p1)

		Convey("CheckHashes returns nil until every player has reported this tick", func() {
			l.PushHash(p0, GameHash(42))
			So(l.CheckHashes(), ShouldBeNil)
		})

		Convey("CheckHashes returns nil when agreeing hashes are reported", func() {
			l.PushHash(p0, GameHash(42))
			l.PushHash(p1, GameHash(42))
			So(l.CheckHashes(), ShouldBeNil)
		})

		Convey("CheckHashes returns ErrDesync on the first disagreeing tick", func() {
			l.PushHash(p0, GameHash(42))
			l.PushHash(p1, GameHash(99))
			So(l.CheckHashes(), ShouldEqual, ErrDesync)
		})

		Convey("after a mismatch is reported, the compared entries are popped so later ticks can still be checked", func() {
			l.PushHash(p0, GameHash(1))
			l.PushHash(p1, GameHash(2))
			So(l.CheckHashes(), ShouldEqual, ErrDesync)

			l.PushHash(p0, GameHash(5))
			l.PushHash(p1, GameHash(5))
			So(l.CheckHashes(), ShouldBeNil)
		})
	})
}
