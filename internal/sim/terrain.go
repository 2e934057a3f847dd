package sim

// TileAttribute flags describe per-tile blocking/feature state, laid
// over the heightmap. Immutable for the duration of a game once
// MapTerrain is loaded.
type TileAttribute struct {
	Height     uint8
	FeatureRef FeatureId
	HasFeature bool
	Impassable bool
}

// MapTerrain is the immutable terrain model: a heightmap sampled at
// the tile corners ((tilesX+1)x(tilesZ+1)), a tile-attribute grid, sea
// level, and a tile-graphic index grid (the last is renderer-facing
// only and carried as opaque ints).
type MapTerrain struct {
	heightMap     *Grid[uint8]
	tileAttrs     *Grid[TileAttribute]
	tileGraphics  *Grid[uint16]
	seaLevel      uint8
	tileWorldSize SimScalar // world units per tile edge
}

// NewMapTerrain builds a terrain model of the given tile dimensions.
// heightMap is sampled at corner resolution, i.e. (tilesX+1)x(tilesZ+1).
func NewMapTerrain(tilesX, tilesZ int, seaLevel uint8, tileWorldSize SimScalar) *MapTerrain {
	return &MapTerrain{
		heightMap:     NewGrid[uint8](tilesX+1, tilesZ+1),
		tileAttrs:     NewGrid[TileAttribute](tilesX, tilesZ),
		tileGraphics:  NewGrid[uint16](tilesX, tilesZ),
		seaLevel:      seaLevel,
		tileWorldSize: tileWorldSize,
	}
}

func (t *MapTerrain) TilesX() int { return t.tileAttrs.Width() }
func (t *MapTerrain) TilesZ() int { return t.tileAttrs.Height() }

func (t *MapTerrain) SetHeightCorner(x, z int, h uint8) {
	t.heightMap.Set(x, z, h)
}

func (t *MapTerrain) SetTileAttribute(x, z int, attr TileAttribute) {
	t.tileAttrs.Set(x, z, attr)
}

func (t *MapTerrain) SetTileGraphic(x, z int, idx uint16) {
	t.tileGraphics.Set(x, z, idx)
}

func (t *MapTerrain) TileAttributeAt(x, z int) (TileAttribute, bool) {
	if !t.tileAttrs.InBounds(x, z) {
		return TileAttribute{}, false
	}
	return t.tileAttrs.Get(x, z), true
}

// HeightAtTile returns the average of the four corner heights for
// tile (x, z), matching GroundHeight-style queries used by weapon
// aiming and the COB GroundHeight value id.
func (t *MapTerrain) HeightAtTile(x, z int) SimScalar {
	if !t.heightMap.InBounds(x, z+1) {
		x = clampInt(x, 0, t.heightMap.Width()-2)
		z = clampInt(z, 0, t.heightMap.Height()-2)
	}
	sum := int(t.heightMap.Get(x, z)) + int(t.heightMap.Get(x+1, z)) +
		int(t.heightMap.Get(x, z+1)) + int(t.heightMap.Get(x+1, z+1))
	// sum/4 scaled into Q16.16 is exactly sum<<(scalarFracBits-2), no
	// rounding needed since scalarOne is divisible by 4.
	return ScalarFromBits(int32(sum) << (scalarFracBits - 2))
}

// GroundHeightAt returns the terrain height at an arbitrary world
// position by snapping to the nearest tile index (see TileIndex), the adapter boundary
// the sim tick and the COB GroundHeight query both call through.
func (t *MapTerrain) GroundHeightAt(x, z SimScalar) SimScalar {
	tx := x.TileIndex(t.tileWorldSize)
	tz := z.TileIndex(t.tileWorldSize)
	return t.HeightAtTile(tx, tz)
}

// SeaLevel returns the configured sea level height.
func (t *MapTerrain) SeaLevel() uint8 { return t.seaLevel }

// IsImpassable reports whether a bare tile (ignoring units,
// features, and movement-class constraints) is impassable terrain.
func (t *MapTerrain) IsImpassable(x, z int) bool {
	attr, ok := t.TileAttributeAt(x, z)
	if !ok {
		return true
	}
	return attr.Impassable
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
