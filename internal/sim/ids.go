package sim

import (
	"encoding/json"
	"fmt"
)

// UnitId, ProjectileId, FeatureId, PlayerId, MovementClassId, and
// PathTaskId are opaque identifiers: each wraps a backing integer with
// no implicit conversion to that integer or to any other id type. The
// original engine expresses this with a tagged template
// (OpaqueId<T, Tag>); Go has no template-over-tag, so each id is its
// own named struct generated from the same shape.

type UnitId struct{ v uint32 }
type ProjectileId struct{ v uint32 }
type FeatureId struct{ v uint32 }
type PlayerId struct{ v uint32 }
type MovementClassId struct{ v uint32 }
type PathTaskId struct{ v uint32 }

func (id UnitId) String() string        { return fmt.Sprintf("Unit(%d)", id.v) }
func (id ProjectileId) String() string  { return fmt.Sprintf("Projectile(%d)", id.v) }
func (id FeatureId) String() string     { return fmt.Sprintf("Feature(%d)", id.v) }
func (id PlayerId) String() string      { return fmt.Sprintf("Player(%d)", id.v) }
func (id MovementClassId) String() string { return fmt.Sprintf("MovementClass(%d)", id.v) }
func (id PathTaskId) String() string    { return fmt.Sprintf("PathTask(%d)", id.v) }

// MarshalJSON/UnmarshalJSON expose the backing integer directly so
// these opaque ids survive over the wire (network adapter) without
// leaking their internal field name.
func (id UnitId) MarshalJSON() ([]byte, error) { return json.Marshal(id.v) }
func (id *UnitId) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &id.v) }

func (id ProjectileId) MarshalJSON() ([]byte, error) { return json.Marshal(id.v) }
func (id *ProjectileId) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &id.v) }

func (id FeatureId) MarshalJSON() ([]byte, error) { return json.Marshal(id.v) }
func (id *FeatureId) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &id.v) }

func (id PlayerId) MarshalJSON() ([]byte, error) { return json.Marshal(id.v) }
func (id *PlayerId) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &id.v) }

// PlayerIdFromSlot builds the PlayerId for one of the ten fixed player
// slots (spec §3 "Players: fixed-size array (10 slots)").
func PlayerIdFromSlot(slot int) PlayerId { return PlayerId{v: uint32(slot)} }
func (id PlayerId) Slot() int            { return int(id.v) }

const MaxPlayers = 10

// idAllocator hands out monotonically increasing ids and never reuses
// one within a game, satisfying invariant 4 in spec §8.
type idAllocator struct {
	next uint32
}

func (a *idAllocator) allocate() uint32 {
	a.next++
	return a.next
}

type unitIdAllocator struct{ a idAllocator }

func (u *unitIdAllocator) Next() UnitId { return UnitId{v: u.a.allocate()} }

type projectileIdAllocator struct{ a idAllocator }

func (p *projectileIdAllocator) Next() ProjectileId { return ProjectileId{v: p.a.allocate()} }

type featureIdAllocator struct{ a idAllocator }

func (f *featureIdAllocator) Next() FeatureId { return FeatureId{v: f.a.allocate()} }

type pathTaskIdAllocator struct{ a idAllocator }

func (p *pathTaskIdAllocator) Next() PathTaskId { return PathTaskId{v: p.a.allocate()} }
