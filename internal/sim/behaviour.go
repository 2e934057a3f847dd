package sim

// tickBehaviours advances every unit's behaviour state machine by one
// tick (spec §4.3 step 4). Each branch is an exhaustive switch over
// BehaviourKind per spec §9's variant-state-machine note.
func (s *Simulation) tickBehaviours(tickDt SimScalar) {
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead {
			return
		}
		switch u.BehaviourState.Kind {
		case BehaviourIdle:
			// no-op
		case BehaviourMoving:
			s.tickMoving(u, tickDt)
		case BehaviourBuilding:
			s.tickBuilding(u, tickDt)
		case BehaviourCreatingUnit:
			s.tickCreatingUnit(u)
		case BehaviourGuarding:
			// Guarding defers movement to a future escort behaviour; no
			// positional change happens here, matching spec's minimal
			// description of the variant.
		case BehaviourReclaiming:
			s.tickReclaiming(u, tickDt)
		}
	})
}

func (s *Simulation) tickMoving(u *UnitState, tickDt SimScalar) {
	def := s.Definitions.MustUnit(u.UnitType)
	moving := &u.BehaviourState.Moving

	if moving.PathTask == nil && moving.Path == nil {
		goal := PointGoal{
			X: moving.Destination.X.TileIndex(s.tileWorldSize),
			Z: moving.Destination.Z.TileIndex(s.tileWorldSize),
		}
		taskID := s.RequestPath(u, def, goal)
		moving.PathTask = &taskID
		return
	}
	if moving.Path == nil {
		// still waiting on the async result
		return
	}

	target := moving.Destination
	if moving.PathIndex < len(moving.Path) {
		wp := moving.Path[moving.PathIndex]
		target = SimVector{
			X: ScalarFromInt(wp[0]).Mul(s.tileWorldSize),
			Y: u.Position.Y,
			Z: ScalarFromInt(wp[1]).Mul(s.tileWorldSize),
		}
	}

	desiredHeading := u.Position.HeadingTo(target)
	maxTurn := scaleAngleByDt(def.TurnRate, tickDt)
	u.Rotation = TurnTowards(u.Rotation, desiredHeading, maxTurn)

	if AngleBetween(u.Rotation, desiredHeading) == 0 {
		u.TargetSpeed = def.MaxVelocity
	} else {
		u.TargetSpeed = ScalarZero
	}

	if u.CurrentSpeed.LessThan(u.TargetSpeed) {
		u.CurrentSpeed = ScalarMin(u.TargetSpeed, u.CurrentSpeed.Add(def.Acceleration.Mul(tickDt)))
	} else if u.CurrentSpeed.GreaterThan(u.TargetSpeed) {
		u.CurrentSpeed = ScalarMax(u.TargetSpeed, u.CurrentSpeed.Sub(def.BrakeRate.Mul(tickDt)))
	}

	dir := FromHeading(u.Rotation)
	step := dir.Scale(u.CurrentSpeed.Mul(tickDt))
	newPos := u.Position.Add(step)

	footprintBefore := u.Footprint(def, s.tileWorldSize)
	u.Position = newPos
	footprintAfter := u.Footprint(def, s.tileWorldSize)
	if footprintAfter != footprintBefore {
		if footprintWalkable(s, def, footprintAfter) {
			s.Occupied.RepositionFootprint(footprintBefore, footprintAfter, u.ID)
			u.InCollision = false
		} else {
			// blocked: stall in place and flag the collision (spec §4.3
			// "check for new collision (mark in_collision and stall if so)").
			u.Position = u.Position.Sub(step)
			u.InCollision = true
			u.CurrentSpeed = ScalarZero
			return
		}
	}

	if moving.PathIndex < len(moving.Path) {
		if u.Position.DistanceXZ(target).LessEqual(def.ArrivalRadius) {
			moving.PathIndex++
		}
	}
	if moving.PathIndex >= len(moving.Path) && u.Position.DistanceXZ(moving.Destination).LessEqual(def.ArrivalRadius) {
		u.BehaviourState = IdleBehaviour()
		u.CurrentSpeed = ScalarZero
	}
}

func footprintWalkable(s *Simulation, def *UnitDefinition, rect DiscreteRect) bool {
	walk := s.Walkability[def.MovementClass]
	if walk == nil {
		return true
	}
	w := NewFootprintWalkable(walk, s.Occupied, def.FootprintX, def.FootprintZ)
	return w.CanOccupy(rect.X, rect.Y)
}

// scaleAngleByDt scales a per-second turn rate by the tick's fraction
// of a second via a pure fixed-point multiply-and-shift, staying
// entirely in SimScalar/SimAngle's integer representations with no
// float64 round-trip.
func scaleAngleByDt(perSecond SimAngle, tickDt SimScalar) SimAngle {
	scaled := ScalarFromInt(int(perSecond)).Mul(tickDt)
	return SimAngle(uint16(scaled.bits >> scalarFracBits))
}

func (s *Simulation) tickBuilding(u *UnitState, tickDt SimScalar) {
	building := u.BehaviourState.Building
	target, ok := s.Units.Get(building.Target)
	if !ok || target.LifeState == Dead {
		u.BehaviourState = IdleBehaviour()
		return
	}
	if u.Position.DistanceXZ(target.Position).GreaterThan(buildRange) {
		return
	}
	def := s.Definitions.MustUnit(target.UnitType)
	buildTime := def.Cost.Time
	if buildTime.IsZero() {
		target.BuildTimeCompleted = ScalarOne
	} else {
		increment := tickDt.Div(buildTime)
		target.BuildTimeCompleted = ScalarMin(ScalarOne, target.BuildTimeCompleted.Add(increment))
	}
	if target.BuildTimeCompleted.Equal(ScalarOne) {
		target.InBuildStance = false
		nextType, hasNext := u.PopBuild()
		if hasNext {
			s.SpawnUnit(nextType, u.Owner, u.Position)
		}
		u.BehaviourState = IdleBehaviour()
	}
}

var buildRange = ScalarFromFloat64(8)

func (s *Simulation) tickCreatingUnit(u *UnitState) {
	creating := &u.BehaviourState.CreatingUnit
	switch creating.Status {
	case CreationPending:
		// waiting for a builder to claim this order; no-op until a
		// PlayerUnitCommand or a builder's tick moves it to Done/Failed.
	case CreationDone, CreationFailed:
		u.BehaviourState = IdleBehaviour()
	}
}

func (s *Simulation) tickReclaiming(u *UnitState, tickDt SimScalar) {
	target := u.BehaviourState.Reclaiming.TargetFeature
	feat, ok := s.Features.Get(target)
	if !ok {
		u.BehaviourState = IdleBehaviour()
		return
	}
	if u.Position.DistanceXZ(feat.Position).GreaterThan(buildRange) {
		return
	}
	feat.Health -= tickDt.Mul(ScalarFromInt(50)).Round()
	if feat.Health <= 0 {
		s.Features.Remove(target)
		u.BehaviourState = IdleBehaviour()
	}
}
