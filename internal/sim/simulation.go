package sim

import "tacsim/internal/cob"

// Simulation is the single owner of all mutable world state (spec §3
// "the simulation exclusively owns all mutable state") and the
// SimulationContext spec §9 asks for: every service the tick function
// needs is a field here, explicitly threaded through, with no ambient
// globals.
type Simulation struct {
	Time GameTime

	Terrain *MapTerrain
	Occupied *OccupiedGrid
	Walkability map[MovementClassId]*WalkabilityGrid

	Definitions *DefinitionTable
	Scripts     map[string]*cob.Program // by UnitDefinition.ScriptName

	Units       *Units
	Projectiles *Projectiles
	Features    *Features
	Players     Players

	Lockstep *Lockstep
	Callbacks Callbacks

	Rand *Rand

	tileWorldSize SimScalar

	unitIDs       unitIdAllocator
	projectileIDs projectileIdAllocator
	featureIDs    featureIdAllocator
	pathTaskIDs   pathTaskIdAllocator

	pendingPaths  map[uint32]pendingPathRequest
	pathResultsCh chan pathResult
	Logger        func(format string, args ...any)
}

// NewSimulation builds an empty simulation bound to the given
// immutable terrain/definition tables and a deterministic seed.
func NewSimulation(terrain *MapTerrain, defs *DefinitionTable, tileWorldSize SimScalar, seed uint64) *Simulation {
	return &Simulation{
		Terrain:       terrain,
		Occupied:      NewOccupiedGrid(terrain.TilesX(), terrain.TilesZ()),
		Walkability:   make(map[MovementClassId]*WalkabilityGrid),
		Definitions:   defs,
		Scripts:       make(map[string]*cob.Program),
		Units:         NewUnits(),
		Projectiles:   NewProjectiles(),
		Features:      NewFeatures(),
		Lockstep:      NewLockstep(),
		Rand:          NewRand(seed),
		tileWorldSize: tileWorldSize,
		pendingPaths:  make(map[uint32]pendingPathRequest),
		pathResultsCh: make(chan pathResult, 64),
	}
}

func (s *Simulation) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger(format, args...)
	}
}

// SpawnUnit creates a new unit of the given type for owner at
// position, allocating a fresh id never reused within the game (spec
// §8 invariant 4), with one UnitMeshState per model piece (invariant
// 1) and a script environment started at the "Create" entry point if
// the unit's script defines one.
func (s *Simulation) SpawnUnit(unitType string, owner PlayerId, position SimVector) *UnitState {
	def := s.Definitions.MustUnit(unitType)
	id := s.unitIDs.Next()

	u := &UnitState{
		ID:           id,
		UnitType:     unitType,
		Owner:        owner,
		Position:     position,
		PreviousPosition: position,
		HitPoints:    def.MaxHitPoints,
		MaxDamage:    def.MaxHitPoints,
		LifeState:    Alive,
		BehaviourState: IdleBehaviour(),
		Pieces:       make([]UnitMeshState, len(def.Model.Pieces)),
		FireOrders:   FireAtWill,
	}

	if program, ok := s.Scripts[def.ScriptName]; ok {
		u.CobEnvironment = cob.NewEnvironment(program)
		host := &unitHost{unit: u, def: def, sim: s}
		u.CobEnvironment.StartThread(host, int64(s.Time), "Create", nil)
	}

	s.Units.Insert(u)
	footprint := u.Footprint(def, s.tileWorldSize)
	s.Occupied.PlaceFootprint(footprint, id)
	return u
}

// SpawnProjectile allocates a fresh ProjectileId and registers proj.
func (s *Simulation) SpawnProjectile(proj Projectile) *Projectile {
	proj.ID = s.projectileIDs.Next()
	p := proj
	s.Projectiles.Insert(&p)
	return &p
}

// SpawnFeature allocates a fresh FeatureId and registers feat.
func (s *Simulation) SpawnFeature(feat MapFeature) *MapFeature {
	feat.ID = s.featureIDs.Next()
	f := feat
	s.Features.Insert(&f)
	return &f
}
