package sim

// TickDt is the fixed-point per-tick duration matching TickInterval,
// precomputed once since it never changes at runtime.
var TickDt = ScalarFromFloat64(1.0 / TickRate)

// Tick advances the simulation by exactly one step, in the fixed
// nine-stage order spec §4.3 requires for determinism: the same
// inputs must produce the same outputs regardless of wall-clock
// timing, so every stage runs unconditionally and in this order.
//
//  1. drain one tick's worth of commands from the lockstep buffer
//  2. advance script VM threads
//  3. integrate mesh piece animation
//  4. advance unit behaviour state machines
//  5. aim and fire weapons
//  6. integrate projectiles and apply damage
//  7. tick the resource economy
//  8. sweep dead units and projectiles
//  9. advance GameTime
//
// Any path search completed since the previous tick is drained from
// the simulation's own internal channel before step 4 runs, so
// newly-arrived paths are visible to this tick's movement.
func (s *Simulation) Tick() error {
	batches, ok := s.Lockstep.TryPopCommands()
	if !ok {
		return errNoCommandsReady
	}
	s.applyCommands(batches)

	s.drainPathResults()

	s.advanceScripts()

	s.tickPieces(TickDt)

	s.tickBehaviours(TickDt)

	s.tickWeapons(TickDt)

	s.tickProjectiles(TickDt)

	s.tickEconomy(TickDt)

	s.sweepDead()

	s.Time = s.Time.Add(1)

	hash := ComputeHash(s)
	s.Lockstep.PushHash(localPlayerID(s), hash)

	return nil
}

// drainPathResults consumes every pathResult already sitting in the
// simulation's internal channel without blocking, applying each at
// this tick boundary (spec §5/§9): results are never applied from the
// worker goroutine itself.
func (s *Simulation) drainPathResults() {
	for {
		select {
		case r := <-s.pathResultsCh:
			s.ApplyPathResult(r)
		default:
			return
		}
	}
}

// advanceScripts runs every live unit's COB thread scheduler for this
// tick (spec §4.2's per-tick quantum rule), skipping units with no
// script environment.
func (s *Simulation) advanceScripts() {
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead || u.CobEnvironment == nil {
			return
		}
		host := &unitHost{unit: u, def: s.Definitions.MustUnit(u.UnitType), sim: s}
		u.CobEnvironment.Tick(host, int64(s.Time))
	})
}

// sweepDead removes every unit marked Dead from the dense map; ids are
// never reused (spec §8 invariant 4). killUnit has already freed the
// unit's footprint and killed its script threads; no on-destroy script
// is run for a dead unit.
func (s *Simulation) sweepDead() {
	var deadUnits []UnitId
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead {
			deadUnits = append(deadUnits, u.ID)
		}
	})
	for _, id := range deadUnits {
		s.Units.Remove(id)
	}
}

// localPlayerID is the slot this process treats as its own for hash
// reporting; a full multi-process host assigns this at session setup.
// Reported as slot 0 here since the deterministic core itself is
// player-agnostic about which slot is "local" — only the host driving
// Tick knows that (spec §6 boundary).
func localPlayerID(s *Simulation) PlayerId {
	return PlayerIdFromSlot(0)
}

var errNoCommandsReady = &tickError{"sim: commands not yet available for this tick"}

type tickError struct{ msg string }

func (e *tickError) Error() string { return e.msg }
