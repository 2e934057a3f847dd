package sim

import "time"

// Tunables grouped by subsystem, in the style of the teacher's
// internal/game/config.go: plain typed constants, not a parsed config
// file — the core has no persisted configuration of its own (spec.md
// §6 "CLI, config, persisted state: not part of the core").
const (
	// TickRate is the nominal simulation rate in Hz (spec.md §3
	// GameTime: "one tick = 1/30 second (nominal)").
	TickRate     = 30
	TickInterval = time.Second / TickRate

	// ScriptQuantum mirrors cob.ScriptQuantum, the bound the VM itself
	// enforces on how many instructions a single thread may execute
	// within one tick before it is preempted and resumed next tick at
	// the same instruction pointer (spec §4.2 scheduling rule d).
	ScriptQuantum = 4000

	// MaxWeaponsPerUnit generalises the original engine's baked-in
	// weapon1/weapon2/weapon3 fields (spec.md §9 open question) into a
	// small fixed capacity rather than an unbounded slice, since the
	// definition table format and COB engine queries both address
	// weapons by a small ordinal.
	MaxWeaponsPerUnit = 3

	// RoughTerrainTax is the pathfinding cost multiplier applied to
	// cells adjacent to an obstacle (spec §4.4).
	RoughTerrainTax = 2
)

// GameTime is the monotonic integer tick counter.
type GameTime int64

func (t GameTime) Add(ticks int64) GameTime { return t + GameTime(ticks) }

// MillisToTicks converts a millisecond duration to a whole tick count,
// rounding up, per spec §4.2's SLEEP(ms) resumption rule
// ("current_game_time + ceil(ms/tick_ms)"). Multiplies before dividing
// so the result is exact (e.g. 500ms @ 30Hz is exactly 15 ticks); going
// through a truncated tickMs=33 intermediate would give 16.
func MillisToTicks(ms int) int64 {
	return int64((ms*TickRate + 999) / 1000)
}
