package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApplyCommands(t *testing.T) {
	Convey("Given a spawned unit owned by player 0", t, func() {
		s := newTestSimulation()
		u := s.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)

		Convey("a move order from the owner sets BehaviourMoving with the requested destination", func() {
			dest := SimVector{X: ScalarFromInt(10), Z: ScalarFromInt(20)}
			s.applyCommands([]PlayerCommands{{
				Player:   PlayerIdFromSlot(0),
				Commands: []PlayerCommand{moveOrderCommand(u.ID, dest)},
			}})
			So(u.BehaviourState.Kind, ShouldEqual, BehaviourMoving)
			So(u.BehaviourState.Moving.Destination, ShouldResemble, dest)
		})

		Convey("a command from a non-owning player is silently ignored", func() {
			dest := SimVector{X: ScalarFromInt(10)}
			s.applyCommands([]PlayerCommands{{
				Player:   PlayerIdFromSlot(1),
				Commands: []PlayerCommand{moveOrderCommand(u.ID, dest)},
			}})
			So(u.BehaviourState.Kind, ShouldEqual, BehaviourIdle)
		})

		Convey("a command targeting a dead unit is silently ignored", func() {
			s.killUnit(u)
			dest := SimVector{X: ScalarFromInt(10)}
			s.applyCommands([]PlayerCommands{{
				Player:   PlayerIdFromSlot(0),
				Commands: []PlayerCommand{moveOrderCommand(u.ID, dest)},
			}})
			So(u.BehaviourState.Kind, ShouldEqual, BehaviourIdle)
		})

		Convey("CmdStop clears any in-progress order and zeroes target speed", func() {
			u.BehaviourState = BehaviourState{Kind: BehaviourMoving, Moving: MovingState{Destination: VectorZero}}
			u.TargetSpeed = ScalarFromInt(5)
			s.applyCommand(PlayerIdFromSlot(0), PlayerCommand{
				Kind: CmdPlayerUnit,
				Unit: PlayerUnitCommand{Unit: u.ID, Kind: CmdStop},
			})
			So(u.BehaviourState.Kind, ShouldEqual, BehaviourIdle)
			So(u.TargetSpeed, ShouldResemble, ScalarZero)
		})

		Convey("CmdSetFireOrders updates the unit's fire orders", func() {
			s.applyCommand(PlayerIdFromSlot(0), PlayerCommand{
				Kind: CmdPlayerUnit,
				Unit: PlayerUnitCommand{Unit: u.ID, Kind: CmdSetFireOrders, FireOrders: HoldFire},
			})
			So(u.FireOrders, ShouldEqual, HoldFire)
		})

		Convey("CmdSetOnOff toggles Activated", func() {
			s.applyCommand(PlayerIdFromSlot(0), PlayerCommand{
				Kind: CmdPlayerUnit,
				Unit: PlayerUnitCommand{Unit: u.ID, Kind: CmdSetOnOff, On: true},
			})
			So(u.Activated, ShouldBeTrue)
		})

		Convey("CmdPauseGame/CmdUnpauseGame are accepted as no-ops", func() {
			So(func() { s.applyCommand(PlayerIdFromSlot(0), PlayerCommand{Kind: CmdPauseGame}) }, ShouldNotPanic)
			So(func() { s.applyCommand(PlayerIdFromSlot(0), PlayerCommand{Kind: CmdUnpauseGame}) }, ShouldNotPanic)
		})
	})
}
