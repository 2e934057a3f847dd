// Command simrun is the headless driver for the simulation core: it
// builds a small scenario, steps the simulation a fixed number of
// ticks with no renderer or audio attached, and prints the resulting
// state hash every 30 ticks — the same thing a dedicated-server host or a
// lockstep desync repro tool would do, minus the network transport.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"tacsim/internal/adapters/assets"
	"tacsim/internal/sim"
)

func main() {
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("TACSIM_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	ticks := 300
	if s := os.Getenv("TACSIM_TICKS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			ticks = v
		}
	}

	s, err := buildDemoSimulation(seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simrun:", err)
		os.Exit(1)
	}

	run(s, ticks)
}

func run(s *sim.Simulation, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Lockstep.PushCommands(sim.PlayerIdFromSlot(0), nil)
		if err := s.Tick(); err != nil {
			fmt.Fprintf(os.Stderr, "simrun: tick %d: %v\n", i, err)
			return
		}
		if i%30 == 0 {
			fmt.Printf("tick=%d time=%d hash=%08x units=%d\n", i, s.Time, sim.ComputeHash(s), s.Units.Len())
		}
	}
}

func buildDemoSimulation(seed uint64) (*sim.Simulation, error) {
	loader := assets.NewStaticLoader()

	classID := sim.MovementClassId{}
	loader.MovementClasses[classID] = &sim.MovementClassDefinition{
		Name:          "kbot",
		FootprintX:    1,
		FootprintZ:    1,
		MinWaterDepth: sim.ScalarFromInt(-1000),
		MaxWaterDepth: sim.ScalarFromInt(0),
		MaxSlope:      sim.ScalarFromInt(1),
		MaxWaterSlope: sim.ScalarFromInt(1),
	}

	loader.Units["ARMSOLDIER"] = &sim.UnitDefinition{
		Name:          "ARMSOLDIER",
		MovementClass: classID,
		FootprintX:    1,
		FootprintZ:    1,
		MaxVelocity:   sim.ScalarFromFloat64(3.0),
		Acceleration:  sim.ScalarFromFloat64(0.5),
		BrakeRate:     sim.ScalarFromFloat64(0.8),
		TurnRate:      sim.SimAngle(2000),
		MaxHitPoints:  60,
		ArrivalRadius: sim.ScalarFromFloat64(1.0),
	}

	loader.Weapons["RIFLE"] = &sim.WeaponDefinition{
		Name:          "RIFLE",
		Physics:       sim.WeaponDirect,
		MaxRange:      sim.ScalarFromFloat64(80),
		ReloadTime:    sim.GameTime(30),
		BurstSize:     1,
		Tolerance:     sim.SimAngle(1000),
		Velocity:      sim.ScalarFromFloat64(40),
		Damage:        map[string]int{"DEFAULT": 5},
		ProjectileLife: sim.GameTime(60),
	}

	terrain := sim.NewMapTerrain(64, 64, 0, sim.ScalarFromInt(8))

	s := sim.NewSimulation(terrain, nil, sim.ScalarFromInt(8), seed)
	table, scripts, err := assets.BuildDefinitionTable(loader)
	if err != nil {
		return nil, err
	}
	s.Definitions = table
	s.Scripts = scripts
	s.Walkability[classID] = sim.BuildWalkabilityGrid(terrain, *table.MovementClasses[classID], classID)

	s.Players[0].Status = sim.PlayerActive
	s.Lockstep.RegisterPlayer(sim.PlayerIdFromSlot(0))

	u := s.SpawnUnit("ARMSOLDIER", sim.PlayerIdFromSlot(0), sim.SimVector{X: sim.ScalarFromInt(10), Z: sim.ScalarFromInt(10)})
	u.Weapons[0] = &sim.UnitWeapon{WeaponName: "RIFLE"}

	return s, nil
}
