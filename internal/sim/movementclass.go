package sim

// MovementClassDefinition describes a named equivalence class of units
// that share walkability constraints (GLOSSARY).
type MovementClassDefinition struct {
	Name            string
	FootprintX      int
	FootprintZ      int
	MinWaterDepth   SimScalar
	MaxWaterDepth   SimScalar
	MaxSlope        SimScalar
	MaxWaterSlope   SimScalar
}

// WalkabilityGrid is the precomputed per-movement-class "can stand
// here" grid (spec.md pipeline table row "Movement-class walkability
// grid"): true means a unit's top-left footprint corner may occupy
// that cell, ignoring unit/feature occupancy, which OccupiedGrid tracks
// separately.
type WalkabilityGrid struct {
	ClassID MovementClassId
	cells   *Grid[bool]
}

func (w *WalkabilityGrid) Width() int  { return w.cells.Width() }
func (w *WalkabilityGrid) Height() int { return w.cells.Height() }

// IsWalkable reports whether the top-left corner (x, z) is walkable
// for this movement class.
func (w *WalkabilityGrid) IsWalkable(x, z int) bool {
	if !w.cells.InBounds(x, z) {
		return false
	}
	return w.cells.Get(x, z)
}

// BuildWalkabilityGrid computes the walkability grid for a movement
// class against immutable terrain, by testing every cell of the
// class's footprint against slope and water-depth tolerances. This
// runs once at load time (spec §3 "MapTerrain: immutable for the
// duration of a game").
func BuildWalkabilityGrid(terrain *MapTerrain, class MovementClassDefinition, classID MovementClassId) *WalkabilityGrid {
	w, h := terrain.TilesX(), terrain.TilesZ()
	cells := NewGrid[bool](w, h)
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			cells.Set(x, z, footprintIsWalkable(terrain, class, x, z))
		}
	}
	return &WalkabilityGrid{ClassID: classID, cells: cells}
}

func footprintIsWalkable(terrain *MapTerrain, class MovementClassDefinition, originX, originZ int) bool {
	fx := class.FootprintX
	if fx < 1 {
		fx = 1
	}
	fz := class.FootprintZ
	if fz < 1 {
		fz = 1
	}
	seaLevel := ScalarFromInt(int(terrain.SeaLevel()))
	for dz := 0; dz < fz; dz++ {
		for dx := 0; dx < fx; dx++ {
			x, z := originX+dx, originZ+dz
			attr, ok := terrain.TileAttributeAt(x, z)
			if !ok || attr.Impassable {
				return false
			}
			depth := seaLevel.Sub(ScalarFromInt(int(attr.Height)))
			if depth.GreaterThan(ScalarZero) {
				if depth.LessThan(class.MinWaterDepth) || depth.GreaterThan(class.MaxWaterDepth) {
					return false
				}
			} else if class.MinWaterDepth.GreaterThan(ScalarZero) {
				// movement class requires water but tile is dry
				return false
			}
		}
	}
	if fx > 1 || fz > 1 {
		if !slopeWithinTolerance(terrain, class, originX, originZ, fx, fz) {
			return false
		}
	}
	return true
}

func slopeWithinTolerance(terrain *MapTerrain, class MovementClassDefinition, x, z, fx, fz int) bool {
	minH := terrain.HeightAtTile(x, z)
	maxH := minH
	for dz := 0; dz < fz; dz++ {
		for dx := 0; dx < fx; dx++ {
			h := terrain.HeightAtTile(x+dx, z+dz)
			if h.LessThan(minH) {
				minH = h
			}
			if h.GreaterThan(maxH) {
				maxH = h
			}
		}
	}
	slope := maxH.Sub(minH)
	limit := class.MaxSlope
	if ScalarFromInt(int(terrain.SeaLevel())).GreaterThan(maxH) {
		limit = class.MaxWaterSlope
	}
	return slope.LessEqual(limit)
}
