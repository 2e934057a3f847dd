package sim

import "context"

// pendingPathRequest tracks an outstanding asynchronous path
// computation keyed by PathTaskId, so that when the result arrives the
// engine can verify the requesting unit still wants it (spec §9
// "Determinism under concurrent-looking APIs") before applying it —
// and drop it otherwise, e.g. because the unit received a different
// move order in the meantime (spec §5 "Cancellation").
type pendingPathRequest struct {
	unit UnitId
}

// pathResult is what a path worker goroutine reports back once it
// completes; it is only ever consumed by the tick driver at a tick
// boundary, never applied from the worker goroutine itself.
type pathResult struct {
	task PathTaskId
	unit UnitId
	path [][2]int
	err  error
}

// RequestPath starts an asynchronous A* search for unit against the
// current walkability/occupancy snapshot, returning a PathTaskId the
// unit stores in its MovingState. The search itself runs on its own
// goroutine; the result is only ever applied by Tick's call to
// ApplyPathResult at a tick boundary, never from the worker goroutine,
// and only ever flows through the Simulation's own internal channel —
// callers outside this package never see a pathResult value directly.
func (s *Simulation) RequestPath(unit *UnitState, def *UnitDefinition, goal PathGoal) PathTaskId {
	taskID := s.pathTaskIDs.Next()
	s.pendingPaths[taskID.v] = pendingPathRequest{unit: unit.ID}

	walk := s.Walkability[def.MovementClass]
	occWalkable := NewFootprintWalkable(walk, s.Occupied, def.FootprintX, def.FootprintZ)
	width, height := s.Terrain.TilesX(), s.Terrain.TilesZ()
	startX := unit.Position.X.TileIndex(s.tileWorldSize)
	startZ := unit.Position.Z.TileIndex(s.tileWorldSize)

	results := s.pathResultsCh
	go func() {
		path, err := FindPath(context.Background(), occWalkable, width, height, startX, startZ, goal)
		results <- pathResult{task: taskID, unit: unit.ID, path: path, err: err}
	}()

	return taskID
}

// ApplyPathResult applies a completed path search to the simulation,
// but only if the requesting unit is still in a Moving state waiting
// on exactly this PathTaskId — otherwise the result is stale (the unit
// received a new order meanwhile) and is dropped, per spec §5/§9.
func (s *Simulation) ApplyPathResult(r pathResult) {
	delete(s.pendingPaths, r.task.v)

	u, ok := s.Units.Get(r.unit)
	if !ok || u.LifeState == Dead {
		return
	}
	if u.BehaviourState.Kind != BehaviourMoving {
		return
	}
	moving := &u.BehaviourState.Moving
	if moving.PathTask == nil || moving.PathTask.v != r.task.v {
		return
	}
	if r.err != nil {
		// Transient error (spec §7): no move possible, fall back to Idle.
		u.BehaviourState = IdleBehaviour()
		return
	}
	moving.Path = r.path
	moving.PathIndex = 0
}
