package sim

// PlayerStatus tracks whether a player slot is in use.
type PlayerStatus int

const (
	PlayerEmpty PlayerStatus = iota
	PlayerActive
	PlayerDefeated
)

// GamePlayerInfo is the per-player economy and status record, one of
// the fixed 10 slots (spec §3).
type GamePlayerInfo struct {
	Status PlayerStatus
	Side   string
	Color  int

	Metal, MaxMetal     SimScalar
	Energy, MaxEnergy   SimScalar

	MetalStalled, EnergyStalled bool

	DesiredMetalConsumptionBuffer, DesiredEnergyConsumptionBuffer         SimScalar
	PreviousDesiredMetalConsumptionBuffer, PreviousDesiredEnergyConsumptionBuffer SimScalar
	ActualMetalConsumptionBuffer, ActualEnergyConsumptionBuffer           SimScalar
	MetalProductionBuffer, EnergyProductionBuffer                        SimScalar
}

// Players is the fixed-size 10-slot array described in spec §3.
type Players [MaxPlayers]GamePlayerInfo
