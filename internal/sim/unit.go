package sim

import "tacsim/internal/cob"

// LifeState is Alive or Dead.
type LifeState int

const (
	Alive LifeState = iota
	Dead
)

// FireOrders controls auto-acquire behaviour for weapon aiming
// (spec §4.3 step 5).
type FireOrders int

const (
	HoldFire FireOrders = iota
	ReturnFire
	FireAtWill
)

// BehaviourKind tags the behaviour_state variant.
type BehaviourKind int

const (
	BehaviourIdle BehaviourKind = iota
	BehaviourMoving
	BehaviourBuilding
	BehaviourCreatingUnit
	BehaviourGuarding
	BehaviourReclaiming
)

// MovingState is the payload of BehaviourMoving.
type MovingState struct {
	Destination SimVector
	PathTask    *PathTaskId // nil until a path has been requested
	Path        [][2]int    // nil until the path result has arrived
	PathIndex   int
}

// BuildingState is the payload of BehaviourBuilding.
type BuildingState struct {
	Target UnitId
}

// UnitCreationStatus is the outcome of a CreatingUnit behaviour.
type UnitCreationStatus int

const (
	CreationPending UnitCreationStatus = iota
	CreationDone
	CreationFailed
)

// CreatingUnitState is the payload of BehaviourCreatingUnit.
type CreatingUnitState struct {
	UnitType string
	Status   UnitCreationStatus
}

// ReclaimingState is the payload of BehaviourReclaiming.
type ReclaimingState struct {
	TargetFeature FeatureId
}

// BehaviourState is the tagged union described in spec §3; exactly one
// of the payload fields is meaningful, selected by Kind. Exhaustive
// switches on Kind are required everywhere this is inspected (spec §9).
type BehaviourState struct {
	Kind        BehaviourKind
	Moving      MovingState
	Building    BuildingState
	CreatingUnit CreatingUnitState
	GuardTarget UnitId
	Reclaiming  ReclaimingState
}

func IdleBehaviour() BehaviourState { return BehaviourState{Kind: BehaviourIdle} }

// BuildQueueEntry is one (unit_type, count) run in a unit's build
// queue; contiguous identical entries are merged by EnqueueBuild.
type BuildQueueEntry struct {
	UnitType string
	Count    int
}

// PendingOpKind tags PendingOp, the tagged union of a mesh piece's
// per-axis pending operation (spec §3 UnitMeshState).
type PendingOpKind int

const (
	OpNone PendingOpKind = iota
	OpMove
	OpTurn
	OpSpin
	OpStopSpin
)

type PendingOp struct {
	Kind         PendingOpKind
	Target       SimScalar // for Move: target offset; for Turn: target angle (stored via TargetAngle)
	TargetAngle  SimAngle
	Speed        SimScalar // Move/Turn speed, or Spin's current angular speed
	Acceleration SimScalar // Spin/StopSpin
	SpinTarget   SimScalar
}

// Axis identifies one of the three translation or rotation axes of a
// mesh piece.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// UnitMeshState is the per-piece animation target, one entry per mesh
// piece, in the same order as the unit type's piece-definition list
// (spec §8 invariant 1).
type UnitMeshState struct {
	Offset, PreviousOffset SimVector
	RotX, RotY, RotZ       SimAngle
	PrevRotX, PrevRotY, PrevRotZ SimAngle

	MoveOp [3]PendingOp // indexed by Axis, for translation
	TurnOp [3]PendingOp // indexed by Axis, for rotation

	Hidden bool
	Shaded bool
}

// WeaponFireState is a UnitWeapon's aim/fire state.
type WeaponFireState int

const (
	WeaponIdle WeaponFireState = iota
	WeaponAiming
	WeaponFiring
)

// UnitWeapon is the runtime state of one of a unit's up to
// MaxWeaponsPerUnit weapons.
type UnitWeapon struct {
	WeaponName      string
	State           WeaponFireState
	Target          *UnitId
	TargetPos       SimVector
	ReadyTime       GameTime
	BurstRemaining  int
	ExplicitTarget  bool
}

// UnitState is the mutable runtime state of one unit (spec §3).
type UnitState struct {
	ID       UnitId
	UnitType string
	Owner    PlayerId

	Position, PreviousPosition SimVector
	Rotation, PreviousRotation SimAngle

	TurnRate     SimAngle
	CurrentSpeed SimScalar
	TargetAngle  SimAngle
	TargetSpeed  SimScalar

	HitPoints int
	MaxDamage int
	LifeState LifeState

	BehaviourState BehaviourState

	BuildQueue []BuildQueueEntry

	InBuildStance        bool
	YardOpen             bool
	InCollision          bool
	Activated            bool
	IsSufficientlyPowered bool

	FireOrders FireOrders

	BuildTimeCompleted SimScalar

	MetalMake, EnergyMake SimScalar
	MetalUse, EnergyUse   SimScalar

	Pieces []UnitMeshState

	CobEnvironment *cob.Environment

	Weapons [MaxWeaponsPerUnit]*UnitWeapon
}

// Footprint returns the DiscreteRect this unit currently occupies,
// given its type's footprint size, snapped to the unit's top-left
// grid corner.
func (u *UnitState) Footprint(def *UnitDefinition, tileWorldSize SimScalar) DiscreteRect {
	x := u.Position.X.TileIndex(tileWorldSize)
	z := u.Position.Z.TileIndex(tileWorldSize)
	return DiscreteRect{X: x, Y: z, Width: def.FootprintX, Height: def.FootprintZ}
}

// EnqueueBuild appends to the build queue, merging into the last entry
// when it names the same unit type (spec §3 "merged contiguous runs").
func (u *UnitState) EnqueueBuild(unitType string, count int) {
	if n := len(u.BuildQueue); n > 0 && u.BuildQueue[n-1].UnitType == unitType {
		u.BuildQueue[n-1].Count += count
		return
	}
	u.BuildQueue = append(u.BuildQueue, BuildQueueEntry{UnitType: unitType, Count: count})
}

// PopBuild removes one item from the front of the build queue,
// decrementing its run count, and reports the unit type produced.
func (u *UnitState) PopBuild() (string, bool) {
	if len(u.BuildQueue) == 0 {
		return "", false
	}
	head := &u.BuildQueue[0]
	unitType := head.UnitType
	head.Count--
	if head.Count <= 0 {
		u.BuildQueue = u.BuildQueue[1:]
	}
	return unitType, true
}

// Units is the dense map UnitId -> UnitState (spec §3). Implemented as
// a map keyed by the id's backing integer plus a slice of ids in
// insertion order, so iteration order is the allocation order — stable and identical across peers
// per spec §5 ("Dense-index maps iterated by id satisfy this").
type Units struct {
	byID map[uint32]*UnitState
	ids  []uint32 // insertion order, for stable iteration
}

func NewUnits() *Units {
	return &Units{byID: make(map[uint32]*UnitState)}
}

func (u *Units) Insert(unit *UnitState) {
	u.byID[unit.ID.v] = unit
	u.ids = append(u.ids, unit.ID.v)
}

func (u *Units) Get(id UnitId) (*UnitState, bool) {
	v, ok := u.byID[id.v]
	return v, ok
}

// MustGet panics on an unknown unit id (spec §7 programmer error).
func (u *Units) MustGet(id UnitId) *UnitState {
	v, ok := u.byID[id.v]
	if !ok {
		panic("sim: unknown unit id " + id.String())
	}
	return v
}

func (u *Units) Remove(id UnitId) {
	delete(u.byID, id.v)
}

// Each iterates live units in stable, cross-peer-identical order.
func (u *Units) Each(fn func(*UnitState)) {
	for _, id := range u.ids {
		if unit, ok := u.byID[id]; ok {
			fn(unit)
		}
	}
}

func (u *Units) Len() int { return len(u.byID) }
