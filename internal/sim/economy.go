package sim

// tickEconomy advances the per-player resource ledger by one tick
// (spec §4.3 step 7): sum each unit's make/use against its owner's
// buffers, then settle desired-vs-actual consumption, matching the
// original engine's two-phase "desired then actual" stall accounting
// (spec GLOSSARY "stalled").
func (s *Simulation) tickEconomy(tickDt SimScalar) {
	for i := range s.Players {
		p := &s.Players[i]
		if p.Status != PlayerActive {
			continue
		}
		p.PreviousDesiredMetalConsumptionBuffer = p.DesiredMetalConsumptionBuffer
		p.PreviousDesiredEnergyConsumptionBuffer = p.DesiredEnergyConsumptionBuffer
		p.DesiredMetalConsumptionBuffer = ScalarZero
		p.DesiredEnergyConsumptionBuffer = ScalarZero
		p.MetalProductionBuffer = ScalarZero
		p.EnergyProductionBuffer = ScalarZero
	}

	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead || !u.Activated {
			return
		}
		owner := &s.Players[u.Owner.Slot()]
		owner.MetalProductionBuffer = owner.MetalProductionBuffer.Add(u.MetalMake.Mul(tickDt))
		owner.EnergyProductionBuffer = owner.EnergyProductionBuffer.Add(u.EnergyMake.Mul(tickDt))
		owner.DesiredMetalConsumptionBuffer = owner.DesiredMetalConsumptionBuffer.Add(u.MetalUse.Mul(tickDt))
		owner.DesiredEnergyConsumptionBuffer = owner.DesiredEnergyConsumptionBuffer.Add(u.EnergyUse.Mul(tickDt))
	})

	for i := range s.Players {
		p := &s.Players[i]
		if p.Status != PlayerActive {
			continue
		}
		p.Metal = ScalarMin(p.MaxMetal, p.Metal.Add(p.MetalProductionBuffer))
		p.Energy = ScalarMin(p.MaxEnergy, p.Energy.Add(p.EnergyProductionBuffer))

		p.MetalStalled = p.DesiredMetalConsumptionBuffer.GreaterThan(p.Metal)
		p.EnergyStalled = p.DesiredEnergyConsumptionBuffer.GreaterThan(p.Energy)

		actualMetal := ScalarMin(p.DesiredMetalConsumptionBuffer, p.Metal)
		actualEnergy := ScalarMin(p.DesiredEnergyConsumptionBuffer, p.Energy)
		p.ActualMetalConsumptionBuffer = actualMetal
		p.ActualEnergyConsumptionBuffer = actualEnergy

		p.Metal = p.Metal.Sub(actualMetal)
		p.Energy = p.Energy.Sub(actualEnergy)
	}

	s.applyPowerStall()
}

// applyPowerStall marks units as insufficiently powered when their
// owner is energy-stalled, the gate spec §3 ties IsSufficientlyPowered
// to (UnitState field consulted by weapon/build ticks in a fuller
// build; kept here as the single place that derives it each tick).
func (s *Simulation) applyPowerStall() {
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead {
			return
		}
		owner := &s.Players[u.Owner.Slot()]
		u.IsSufficientlyPowered = !owner.EnergyStalled
	})
}
