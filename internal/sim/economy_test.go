package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTickEconomy(t *testing.T) {
	Convey("Given a player producing less energy than its units demand", t, func() {
		s := newTestSimulation()
		p := &s.Players[0]
		p.MaxMetal = ScalarFromInt(1000)
		p.MaxEnergy = ScalarFromInt(1000)
		p.Metal = ScalarZero
		p.Energy = ScalarZero

		u := s.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)
		u.Activated = true
		u.EnergyUse = ScalarFromInt(100)
		u.MetalMake = ScalarFromInt(10)

		Convey("the player goes energy-stalled and units lose sufficient power", func() {
			s.tickEconomy(ScalarOne)
			So(p.EnergyStalled, ShouldBeTrue)
			So(u.IsSufficientlyPowered, ShouldBeFalse)
		})

		Convey("metal production still accrues even while energy-stalled", func() {
			s.tickEconomy(ScalarOne)
			So(p.Metal.GreaterThan(ScalarZero), ShouldBeTrue)
		})

		Convey("a dead unit contributes nothing to its owner's buffers", func() {
			s.killUnit(u)
			before := p.Metal
			s.tickEconomy(ScalarOne)
			So(p.Metal, ShouldResemble, before)
		})
	})

	Convey("Given a well-powered player with surplus production", t, func() {
		s := newTestSimulation()
		p := &s.Players[0]
		p.Metal = ScalarZero
		p.Energy = ScalarZero

		u := s.SpawnUnit("SOLDIER", PlayerIdFromSlot(0), VectorZero)
		u.Activated = true
		u.MetalMake = ScalarFromInt(50)
		u.EnergyMake = ScalarFromInt(50)

		Convey("it is not stalled and stays sufficiently powered", func() {
			s.tickEconomy(ScalarOne)
			So(p.EnergyStalled, ShouldBeFalse)
			So(p.MetalStalled, ShouldBeFalse)
			So(u.IsSufficientlyPowered, ShouldBeTrue)
		})

		Convey("production is capped at the player's storage maximum", func() {
			p.Metal = p.MaxMetal
			p.Energy = p.MaxEnergy
			s.tickEconomy(ScalarOne)
			So(p.Metal, ShouldResemble, p.MaxMetal)
			So(p.Energy, ShouldResemble, p.MaxEnergy)
		})
	})
}
