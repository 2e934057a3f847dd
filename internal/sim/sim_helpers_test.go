package sim

// newTestSimulation builds a small, fully-wired Simulation against an
// open 120x120 flat map, with one movement class and two unit types
// registered, shared by the scenario tests in this package.
func newTestSimulation() *Simulation {
	const tiles = 120
	terrain := NewMapTerrain(tiles, tiles, 0, ScalarFromInt(1))
	for z := 0; z < tiles; z++ {
		for x := 0; x < tiles; x++ {
			terrain.SetTileAttribute(x, z, TileAttribute{Height: 10})
		}
	}
	for z := 0; z <= tiles; z++ {
		for x := 0; x <= tiles; x++ {
			terrain.SetHeightCorner(x, z, 10)
		}
	}

	defs := NewDefinitionTable()
	classID := MovementClassId{}
	class := &MovementClassDefinition{
		Name:          "walk",
		FootprintX:    1,
		FootprintZ:    1,
		MinWaterDepth: ScalarFromInt(-1000),
		MaxWaterDepth: ScalarFromInt(0),
		MaxSlope:      ScalarFromInt(50),
		MaxWaterSlope: ScalarFromInt(50),
	}
	defs.MovementClasses[classID] = class

	defs.Units["SOLDIER"] = &UnitDefinition{
		Name:          "SOLDIER",
		MovementClass: classID,
		FootprintX:    1,
		FootprintZ:    1,
		MaxVelocity:   ScalarFromFloat64(35),
		Acceleration:  ScalarFromFloat64(1000),
		BrakeRate:     ScalarFromFloat64(1000),
		TurnRate:      SimAngle(65000),
		MaxHitPoints:  100,
		ArrivalRadius: ScalarFromFloat64(1.0),
		Cost:          BuildCost{Metal: 50, Energy: 50, Time: ScalarFromInt(3)},
	}
	defs.Units["BUILDING"] = &UnitDefinition{
		Name:         "BUILDING",
		FootprintX:   2,
		FootprintZ:   2,
		MaxHitPoints: 500,
	}
	defs.Weapons["GUN"] = &WeaponDefinition{
		Name:           "GUN",
		Physics:        WeaponDirect,
		MaxRange:       ScalarFromFloat64(50),
		ReloadTime:     GameTime(30),
		BurstSize:      1,
		Tolerance:      SimAngle(2000),
		Velocity:       ScalarFromFloat64(20),
		Damage:         map[string]int{"DEFAULT": 10},
		ProjectileLife: GameTime(60),
	}

	s := NewSimulation(terrain, defs, ScalarFromInt(1), 0xC0FFEE)
	s.Walkability[classID] = BuildWalkabilityGrid(terrain, *class, classID)

	s.Players[0].Status = PlayerActive
	s.Players[0].MaxMetal = ScalarFromInt(1000)
	s.Players[0].MaxEnergy = ScalarFromInt(1000)
	s.Lockstep.RegisterPlayer(PlayerIdFromSlot(0))

	s.Players[1].Status = PlayerActive
	s.Players[1].MaxMetal = ScalarFromInt(1000)
	s.Players[1].MaxEnergy = ScalarFromInt(1000)
	s.Lockstep.RegisterPlayer(PlayerIdFromSlot(1))

	return s
}

// moveOrderCommand builds the PlayerCommand that issues a move order to
// unit, the same shape a real host constructs from player input.
func moveOrderCommand(unit UnitId, dest SimVector) PlayerCommand {
	return PlayerCommand{
		Kind: CmdPlayerUnit,
		Unit: PlayerUnitCommand{
			Unit:      unit,
			Kind:      CmdIssueOrder,
			IssueKind: Immediate,
			Order:     UnitOrder{Kind: OrderMove, Destination: dest},
		},
	}
}
