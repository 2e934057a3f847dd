package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHashLaws(t *testing.T) {
	Convey("Given the GameHash combinator", t, func() {
		Convey("combine is order-insensitive, matching hash(xs++ys) == hash(xs)+hash(ys)", func() {
			a, b, c := GameHash(7), GameHash(11), GameHash(19)
			So(combine(a, b, c), ShouldEqual, combine(c, a, b))
			So(combine(a, b), ShouldEqual, a.Plus(b))
		})

		Convey("hashVariant folds the tag index into the payload: hash(V(i,x)) == i + hash(x)", func() {
			payload := GameHash(42)
			So(hashVariant(3, payload), ShouldEqual, GameHash(3)+payload)
		})

		Convey("hashBehaviourState is deterministic for each listed BehaviourKind", func() {
			states := []BehaviourState{
				IdleBehaviour(),
				{Kind: BehaviourMoving, Moving: MovingState{Destination: SimVector{X: ScalarFromInt(1)}}},
				{Kind: BehaviourBuilding, Building: BuildingState{Target: UnitId{}}},
				{Kind: BehaviourGuarding, GuardTarget: UnitId{}},
				{Kind: BehaviourReclaiming, Reclaiming: ReclaimingState{TargetFeature: FeatureId{}}},
			}
			for _, st := range states {
				h := hashBehaviourState(st)
				So(int(h)%65536 >= 0, ShouldBeTrue) // sanity: no panic, deterministic value
				So(hashBehaviourState(st), ShouldEqual, h)
			}
		})

		Convey("ComputeHash is a pure function of simulation state (determinism law)", func() {
			s1 := newTestSimulation()
			s2 := newTestSimulation()
			So(ComputeHash(s1), ShouldEqual, ComputeHash(s2))

			u1 := s1.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), SimVector{X: ScalarFromInt(3), Z: ScalarFromInt(4)})
			u2 := s2.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), SimVector{X: ScalarFromInt(3), Z: ScalarFromInt(4)})
			So(u1.ID, ShouldResemble, u2.ID)
			So(ComputeHash(s1), ShouldEqual, ComputeHash(s2))
		})

		Convey("ComputeHash changes when a unit's hit points diverge (desync-detectable)", func() {
			s1 := newTestSimulation()
			s2 := newTestSimulation()
			u1 := s1.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)
			u2 := s2.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)
			_ = u2
			u1.HitPoints -= 5 // simulate corruption on one peer
			So(ComputeHash(s1), ShouldNotEqual, ComputeHash(s2))
		})
	})
}
