package sim

// WeaponPhysicsType distinguishes direct-fire weapons (hitscan-style,
// lead solved against current target position) from ballistic weapons
// (lead solved under gravity), per spec §4.3 step 5.
type WeaponPhysicsType int

const (
	WeaponDirect WeaponPhysicsType = iota
	WeaponBallistic
)

// WeaponDefinition is immutable, loaded once at game start.
type WeaponDefinition struct {
	Name             string
	Physics          WeaponPhysicsType
	MaxRange         SimScalar
	ReloadTime       GameTime
	BurstSize        int
	BurstInterval    GameTime
	SprayAngle       SimAngle
	Tolerance        SimAngle
	PitchTolerance   SimAngle
	Velocity         SimScalar
	Gravity          bool
	Damage           map[string]int // unit_type -> damage; "DEFAULT" is the fallback
	DamageRadius     SimScalar
	ProjectileLife   GameTime
	TracksTarget     bool
}

// DamageFor resolves the damage this weapon deals to a given
// unit-type, falling back to the "DEFAULT" entry (spec.md §3
// Projectile.damage).
func (w *WeaponDefinition) DamageFor(unitType string) int {
	if v, ok := w.Damage[unitType]; ok {
		return v
	}
	return w.Damage["DEFAULT"]
}

// PieceDef is one entry of a unit model's piece tree: Parent is the
// index of the parent piece, or nil for a root piece. No pointers, no
// cycles possible by construction (spec §9).
type PieceDef struct {
	Name   string
	Origin SimVector
	Parent *int
}

// UnitModel is the immutable mesh shape loaded from the model asset
// (spec §6 load_model).
type UnitModel struct {
	Height SimScalar
	Pieces []PieceDef
}

// BuildCost is the metal/energy price and construction time of a unit.
type BuildCost struct {
	Metal  int
	Energy int
	Time   SimScalar // nominal build time in seconds (tickBuilding adds tickDt/Time per tick)
}

// UnitDefinition is the immutable per-unit-type definition table entry.
type UnitDefinition struct {
	Name            string
	MovementClass   MovementClassId
	FootprintX      int
	FootprintZ      int
	MaxVelocity     SimScalar
	Acceleration    SimScalar
	BrakeRate       SimScalar
	TurnRate        SimAngle
	MaxHitPoints    int
	WeaponNames     [MaxWeaponsPerUnit]string
	Cost            BuildCost
	YardMap         string // per-cell 'y'/'n'/'o' passability string, spec GLOSSARY
	Model           UnitModel
	CanBuild        bool
	ScriptName      string
	ArrivalRadius   SimScalar
	CanFly          bool
}

// FeatureDefinition is the immutable per-feature-type definition table
// entry.
type FeatureDefinition struct {
	Name        string
	FootprintX  int
	FootprintZ  int
	Blocking    bool
	Reclaimable bool
	Flammable   bool
	MaxHealth   int
}

// DefinitionTable is the immutable, load-once set of definition
// tables, resolved through the AssetLoader adapter interface (spec §6).
type DefinitionTable struct {
	Units           map[string]*UnitDefinition
	Weapons         map[string]*WeaponDefinition
	MovementClasses map[MovementClassId]*MovementClassDefinition
	Features        map[string]*FeatureDefinition
}

func NewDefinitionTable() *DefinitionTable {
	return &DefinitionTable{
		Units:           make(map[string]*UnitDefinition),
		Weapons:         make(map[string]*WeaponDefinition),
		MovementClasses: make(map[MovementClassId]*MovementClassDefinition),
		Features:        make(map[string]*FeatureDefinition),
	}
}

// MustUnit panics on an unknown unit type, the programmer-error
// behaviour spec §7 requires for invariant violations such as a
// dangling unit-type lookup key.
func (t *DefinitionTable) MustUnit(name string) *UnitDefinition {
	d, ok := t.Units[name]
	if !ok {
		panic("sim: unknown unit type " + name)
	}
	return d
}

func (t *DefinitionTable) MustWeapon(name string) *WeaponDefinition {
	d, ok := t.Weapons[name]
	if !ok {
		panic("sim: unknown weapon type " + name)
	}
	return d
}
