package sim

// OccupiedCellKind tags what, if anything, occupies a grid cell.
type OccupiedCellKind int

const (
	CellEmpty OccupiedCellKind = iota
	CellUnit
	CellFeature
	CellBuildingPassable
)

// OccupiedCell is a tagged union over the occupant; exhaustive
// switches are required everywhere it is inspected, per spec §9's
// "variant state machines" note.
type OccupiedCell struct {
	Kind       OccupiedCellKind
	Unit       UnitId
	Feature    FeatureId
	BuildingOf UnitId // owning building, when Kind == CellBuildingPassable
	Passable   bool   // whether the yard-map cell is currently open to movement
}

// OccupiedGrid mirrors the terrain footprint resolution and tracks
// exactly what occupies each cell, kept in sync with unit/feature
// positions at every tick boundary (spec §8 invariant 3).
type OccupiedGrid struct {
	cells *Grid[OccupiedCell]
}

func NewOccupiedGrid(width, height int) *OccupiedGrid {
	return &OccupiedGrid{cells: NewGrid[OccupiedCell](width, height)}
}

func (g *OccupiedGrid) Width() int  { return g.cells.Width() }
func (g *OccupiedGrid) Height() int { return g.cells.Height() }

func (g *OccupiedGrid) At(x, z int) (OccupiedCell, bool) {
	if !g.cells.InBounds(x, z) {
		return OccupiedCell{}, false
	}
	return g.cells.Get(x, z), true
}

func (g *OccupiedGrid) Clear(x, z int) {
	if g.cells.InBounds(x, z) {
		g.cells.Set(x, z, OccupiedCell{})
	}
}

func (g *OccupiedGrid) SetUnit(x, z int, id UnitId) {
	if g.cells.InBounds(x, z) {
		g.cells.Set(x, z, OccupiedCell{Kind: CellUnit, Unit: id})
	}
}

func (g *OccupiedGrid) SetFeature(x, z int, id FeatureId) {
	if g.cells.InBounds(x, z) {
		g.cells.Set(x, z, OccupiedCell{Kind: CellFeature, Feature: id})
	}
}

func (g *OccupiedGrid) SetBuildingPassable(x, z int, owner UnitId, passable bool) {
	if g.cells.InBounds(x, z) {
		g.cells.Set(x, z, OccupiedCell{Kind: CellBuildingPassable, BuildingOf: owner, Passable: passable})
	}
}

// IsFreeFor reports whether a unit could occupy (x, z): empty cells
// are free, as are building-passable cells when they are currently
// open (the yard-map "through a building's yardmap" rule in spec §4.4).
func (g *OccupiedGrid) IsFreeFor(x, z int) bool {
	cell, ok := g.At(x, z)
	if !ok {
		return false
	}
	switch cell.Kind {
	case CellEmpty:
		return true
	case CellBuildingPassable:
		return cell.Passable
	default:
		return false
	}
}

// PlaceFootprint marks every cell of rect as occupied by unit id,
// clearing any footprint previously occupied by that unit is the
// caller's responsibility (RepositionFootprint does both).
func (g *OccupiedGrid) PlaceFootprint(rect DiscreteRect, id UnitId) {
	rect.ForEachCell(func(x, z int) { g.SetUnit(x, z, id) })
}

func (g *OccupiedGrid) ClearFootprint(rect DiscreteRect) {
	rect.ForEachCell(func(x, z int) { g.Clear(x, z) })
}

// RepositionFootprint clears old, then places new, the atomic update
// the tick driver performs whenever a unit moves a whole cell.
func (g *OccupiedGrid) RepositionFootprint(old, new DiscreteRect, id UnitId) {
	g.ClearFootprint(old)
	g.PlaceFootprint(new, id)
}
