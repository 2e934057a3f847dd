// Package assets implements the AssetLoader boundary described in
// SPEC_FULL.md §6: the simulation core never reads a filesystem or
// archive directly, it only ever calls a Loader. StaticLoader is the
// in-memory implementation used by headless and test harnesses; a
// production host would implement Loader against the original
// engine's HPI/GAF archive formats instead.
package assets

import (
	"tacsim/internal/cob"
	"tacsim/internal/sim"
)

// Loader resolves named content into the immutable tables the
// simulation core consumes. Every lookup failure is a *sim.AssetError,
// never a panic — these are load-time (boundary) errors, not
// programmer errors (spec §7).
type Loader interface {
	LoadUnitDefinition(name string) (*sim.UnitDefinition, error)
	LoadWeaponDefinition(name string) (*sim.WeaponDefinition, error)
	LoadFeatureDefinition(name string) (*sim.FeatureDefinition, error)
	LoadMovementClass(id sim.MovementClassId) (*sim.MovementClassDefinition, error)
	LoadScript(name string) (*cob.Program, error)
}

// StaticLoader is a Loader backed by maps populated up front — by a
// test, or by a one-time archive-to-map conversion step outside the
// core. It never touches the filesystem itself.
type StaticLoader struct {
	Units           map[string]*sim.UnitDefinition
	Weapons         map[string]*sim.WeaponDefinition
	Features        map[string]*sim.FeatureDefinition
	MovementClasses map[sim.MovementClassId]*sim.MovementClassDefinition
	Scripts         map[string]*cob.Program
}

func NewStaticLoader() *StaticLoader {
	return &StaticLoader{
		Units:           make(map[string]*sim.UnitDefinition),
		Weapons:         make(map[string]*sim.WeaponDefinition),
		Features:        make(map[string]*sim.FeatureDefinition),
		MovementClasses: make(map[sim.MovementClassId]*sim.MovementClassDefinition),
		Scripts:         make(map[string]*cob.Program),
	}
}

func (l *StaticLoader) LoadUnitDefinition(name string) (*sim.UnitDefinition, error) {
	if d, ok := l.Units[name]; ok {
		return d, nil
	}
	return nil, &sim.AssetError{Kind: "unit", Name: name}
}

func (l *StaticLoader) LoadWeaponDefinition(name string) (*sim.WeaponDefinition, error) {
	if d, ok := l.Weapons[name]; ok {
		return d, nil
	}
	return nil, &sim.AssetError{Kind: "weapon", Name: name}
}

func (l *StaticLoader) LoadFeatureDefinition(name string) (*sim.FeatureDefinition, error) {
	if d, ok := l.Features[name]; ok {
		return d, nil
	}
	return nil, &sim.AssetError{Kind: "feature", Name: name}
}

func (l *StaticLoader) LoadMovementClass(id sim.MovementClassId) (*sim.MovementClassDefinition, error) {
	if d, ok := l.MovementClasses[id]; ok {
		return d, nil
	}
	return nil, &sim.AssetError{Kind: "movement_class", Name: id.String()}
}

func (l *StaticLoader) LoadScript(name string) (*cob.Program, error) {
	if p, ok := l.Scripts[name]; ok {
		return p, nil
	}
	return nil, &sim.AssetError{Kind: "script", Name: name}
}

// BuildDefinitionTable resolves every named unit/weapon/feature/
// movement-class known to the loader into a *sim.DefinitionTable,
// failing fast on the first missing reference (spec §7 "refuse to
// start the game"): a unit naming a weapon or a script the loader does
// not have is reported as a *sim.AssetError. Movement-class references
// are not checked.
func BuildDefinitionTable(l *StaticLoader) (*sim.DefinitionTable, map[string]*cob.Program, error) {
	table := sim.NewDefinitionTable()
	for name := range l.Units {
		d, err := l.LoadUnitDefinition(name)
		if err != nil {
			return nil, nil, err
		}
		table.Units[name] = d
	}
	for name := range l.Weapons {
		d, err := l.LoadWeaponDefinition(name)
		if err != nil {
			return nil, nil, err
		}
		table.Weapons[name] = d
	}
	for name := range l.Features {
		d, err := l.LoadFeatureDefinition(name)
		if err != nil {
			return nil, nil, err
		}
		table.Features[name] = d
	}
	for id := range l.MovementClasses {
		d, err := l.LoadMovementClass(id)
		if err != nil {
			return nil, nil, err
		}
		table.MovementClasses[id] = d
	}
	scripts := make(map[string]*cob.Program, len(l.Scripts))
	for name := range l.Scripts {
		p, err := l.LoadScript(name)
		if err != nil {
			return nil, nil, err
		}
		scripts[name] = p
	}
	for _, d := range table.Units {
		for _, w := range d.WeaponNames {
			if _, ok := table.Weapons[w]; w != "" && !ok {
				return nil, nil, &sim.AssetError{Kind: "weapon", Name: w}
			}
		}
		if _, ok := scripts[d.ScriptName]; d.ScriptName != "" && !ok {
			return nil, nil, &sim.AssetError{Kind: "script", Name: d.ScriptName}
		}
	}
	return table, scripts, nil
}
