package sim

import (
	"context"
	"errors"
	"math"
)

// ErrNoPath is returned when A* exhausts its open set without reaching
// the goal. Per spec §7 this is a transient error: callers treat it as
// "no move possible" and the unit enters Idle, never aborting the
// simulation.
var ErrNoPath = errors.New("sim: no path found")

// PathCost is (OctileDistance, turn_count) compared lexicographically:
// OctileDistance is converted to a real value only for comparison,
// turn_count breaks ties (spec §4.4).
type PathCost struct {
	Straight int
	Diagonal int
	Turns    int
}

func (c PathCost) value() float64 {
	return float64(c.Straight) + float64(c.Diagonal)*math.Sqrt2
}

// Less reports whether c is strictly cheaper than o.
func (c PathCost) Less(o PathCost) bool {
	cv, ov := c.value(), o.value()
	if cv != ov {
		return cv < ov
	}
	return c.Turns < o.Turns
}

func (c PathCost) add(o PathCost) PathCost {
	return PathCost{Straight: c.Straight + o.Straight, Diagonal: c.Diagonal + o.Diagonal, Turns: c.Turns + o.Turns}
}

// PathGoal is a predicate the pathfinder can test a cell against, plus
// a heuristic estimate of remaining octile distance to it.
type PathGoal interface {
	IsGoal(x, z int) bool
	Heuristic(x, z int) PathCost
}

// PointGoal matches a single cell exactly.
type PointGoal struct{ X, Z int }

func (g PointGoal) IsGoal(x, z int) bool { return x == g.X && z == g.Z }

func (g PointGoal) Heuristic(x, z int) PathCost { return octileHeuristic(x, z, g.X, g.Z) }

// RectPerimeterGoal matches any cell one cell out from rect's
// perimeter.
type RectPerimeterGoal struct{ Rect DiscreteRect }

func (g RectPerimeterGoal) IsGoal(x, z int) bool { return g.Rect.IsOnPerimeter(x, z) }

func (g RectPerimeterGoal) Heuristic(x, z int) PathCost {
	// nearest point on the rect, clamped, is the octile-distance target.
	cx := clampInt(x, g.Rect.X, g.Rect.X+g.Rect.Width-1)
	cz := clampInt(z, g.Rect.Y, g.Rect.Y+g.Rect.Height-1)
	return octileHeuristic(x, z, cx, cz)
}

func octileHeuristic(x, z, gx, gz int) PathCost {
	dx := abs(gx - x)
	dz := abs(gz - z)
	diag := dx
	straight := dz - dx
	if dz < dx {
		diag = dz
		straight = dx - dz
	}
	turns := 0
	if straight != 0 && diag != 0 {
		turns = 1
	}
	return PathCost{Straight: straight, Diagonal: diag, Turns: turns}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Walkable reports, for a candidate unit footprint at (x, z), whether
// every footprint cell passes the movement class's precomputed
// walkability test and is currently free (empty, or passable through a
// building's yard map) in the occupied grid.
type Walkable interface {
	CanOccupy(x, z int) bool
}

type walkabilityAndOccupancy struct {
	walk *WalkabilityGrid
	occ  *OccupiedGrid
	fx   int
	fz   int
}

func (w walkabilityAndOccupancy) CanOccupy(x, z int) bool {
	for dz := 0; dz < w.fz; dz++ {
		for dx := 0; dx < w.fx; dx++ {
			cx, cz := x+dx, z+dz
			if !w.walk.IsWalkable(cx, cz) {
				return false
			}
			if !w.occ.IsFreeFor(cx, cz) {
				return false
			}
		}
	}
	return true
}

// NewFootprintWalkable builds the composite Walkable used to run A*
// for a unit of the given footprint size.
func NewFootprintWalkable(walk *WalkabilityGrid, occ *OccupiedGrid, footprintX, footprintZ int) Walkable {
	if footprintX < 1 {
		footprintX = 1
	}
	if footprintZ < 1 {
		footprintZ = 1
	}
	return walkabilityAndOccupancy{walk: walk, occ: occ, fx: footprintX, fz: footprintZ}
}

var neighbourOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func isDiagonal(i int) bool { return i >= 4 }

type cellKey struct{ x, z int }

type pathNode struct {
	x, z     int
	g        PathCost
	f        float64 // g.value() + h.value(), used only to order the heap
	fTurns   int
	dirIndex int // neighbour index used to reach this node, -1 for start
	cameFrom *pathNode
	closed   bool
	index    int // position in the heap, -1 when not present
}

// minHeap is a binary min-heap over *pathNode ordered by (f, fTurns),
// mirroring the priority queue the original engine hand-rolls in
// MinHeap.h (SPEC_FULL §10) rather than reaching for container/heap's
// interface-based indirection for a type this hot.
type minHeap struct {
	items []*pathNode
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.fTurns < b.fTurns
}

func (h *minHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *minHeap) push(n *pathNode) {
	n.index = len(h.items)
	h.items = append(h.items, n)
	h.up(n.index)
}

func (h *minHeap) pop() *pathNode {
	top := h.items[0]
	last := len(h.items) - 1
	h.swap(0, last)
	h.items[last].index = -1
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.down(0)
	}
	top.index = -1
	return top
}

func (h *minHeap) fix(i int) {
	if !h.up(i) {
		h.down(i)
	}
}

func (h *minHeap) up(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (h *minHeap) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

// FindPath runs A* from start to any cell satisfying goal, returning
// the simplified cell sequence. Accepts a context so callers may run
// it from a worker goroutine (spec §9 "pathfinding may be computed on
// a worker thread"); results must still only be applied to the
// simulation at a tick boundary by the caller.
func FindPath(ctx context.Context, walk Walkable, width, height, startX, startZ int, goal PathGoal) ([][2]int, error) {
	if goal.IsGoal(startX, startZ) {
		return [][2]int{{startX, startZ}}, nil
	}

	open := &minHeap{}
	nodes := make(map[cellKey]*pathNode)

	startNode := &pathNode{x: startX, z: startZ, dirIndex: -1}
	h0 := goal.Heuristic(startX, startZ)
	startNode.f = h0.value()
	startNode.fTurns = h0.Turns
	nodes[cellKey{startX, startZ}] = startNode
	open.push(startNode)

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := open.pop()
		if current.closed {
			continue
		}
		current.closed = true

		if goal.IsGoal(current.x, current.z) {
			return simplifyPath(reconstructPath(current, nodes)), nil
		}

		roughCurrent := isRoughTerrain(walk, current.x, current.z)

		for i, off := range neighbourOffsets {
			nx, nz := current.x+off[0], current.z+off[1]
			if nx < 0 || nz < 0 || nx >= width || nz >= height {
				continue
			}
			if !walk.CanOccupy(nx, nz) {
				continue
			}
			if isDiagonal(i) {
				// disallow cutting a diagonal corner between two blocked
				// orthogonal cells
				if !walk.CanOccupy(current.x+off[0], current.z) || !walk.CanOccupy(current.x, current.z+off[1]) {
					continue
				}
			}

			stepCost := PathCost{Straight: 1}
			if isDiagonal(i) {
				stepCost = PathCost{Diagonal: 1}
			}
			if current.dirIndex >= 0 && current.dirIndex != i {
				stepCost.Turns = 1
			}
			rough := roughCurrent || isRoughTerrain(walk, nx, nz)
			if rough {
				stepCost.Straight *= RoughTerrainTax
				stepCost.Diagonal *= RoughTerrainTax
			}

			tentativeG := current.g.add(stepCost)

			key := cellKey{nx, nz}
			neighbour, exists := nodes[key]
			if !exists {
				neighbour = &pathNode{x: nx, z: nz, index: -1}
				nodes[key] = neighbour
			} else if neighbour.closed {
				continue
			}

			if exists && !tentativeG.Less(neighbour.g) {
				continue
			}

			neighbour.g = tentativeG
			neighbour.dirIndex = i
			neighbour.cameFrom = current
			h := goal.Heuristic(nx, nz)
			total := tentativeG.add(h)
			neighbour.f = total.value()
			neighbour.fTurns = total.Turns

			if neighbour.index < 0 {
				open.push(neighbour)
			} else {
				open.fix(neighbour.index)
			}
		}
	}

	return nil, ErrNoPath
}

func isRoughTerrain(walk Walkable, x, z int) bool {
	for _, off := range neighbourOffsets[:4] {
		if !walk.CanOccupy(x+off[0], z+off[1]) {
			return true
		}
	}
	return false
}

func reconstructPath(goal *pathNode, nodes map[cellKey]*pathNode) [][2]int {
	var rev [][2]int
	for n := goal; n != nil; n = n.cameFrom {
		rev = append(rev, [2]int{n.x, n.z})
	}
	out := make([][2]int, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// simplifyPath collapses consecutive segments with identical direction
// vectors into single endpoints (spec §4.4 "Path simplification").
func simplifyPath(path [][2]int) [][2]int {
	if len(path) <= 2 {
		return path
	}
	out := make([][2]int, 0, len(path))
	out = append(out, path[0])
	prevDir := [2]int{path[1][0] - path[0][0], path[1][1] - path[0][1]}
	for i := 1; i < len(path)-1; i++ {
		dir := [2]int{path[i+1][0] - path[i][0], path[i+1][1] - path[i][1]}
		if dir != prevDir {
			out = append(out, path[i])
			prevDir = dir
		}
	}
	out = append(out, path[len(path)-1])
	return out
}
