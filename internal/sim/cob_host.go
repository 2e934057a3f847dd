package sim

import "tacsim/internal/cob"

// unitHost adapts a single UnitState (plus the read-only context it
// needs for engine queries) to the cob.Host interface, so the script
// VM package never imports sim's types directly (spec §9 "bundle them
// into a single SimulationContext explicitly threaded through the tick
// function").
type unitHost struct {
	unit *UnitState
	def  *UnitDefinition
	sim  *Simulation
}

var _ cob.Host = (*unitHost)(nil)

func (h *unitHost) PieceIndex(name string) (int, bool) {
	for i, p := range h.def.Model.Pieces {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

func axisIndex(axis int) Axis { return Axis(axis) }

func (h *unitHost) SetMove(piece, axis int, target, speed int32) {
	h.unit.Pieces[piece].MoveOp[axisIndex(axis)] = PendingOp{
		Kind: OpMove, Target: ScalarFromBits(target), Speed: ScalarFromBits(speed),
	}
}

func (h *unitHost) SetMoveNow(piece, axis int, target int32) {
	h.setOffsetAxis(piece, axis, ScalarFromBits(target))
	h.unit.Pieces[piece].MoveOp[axisIndex(axis)] = PendingOp{}
}

func (h *unitHost) SetTurn(piece, axis int, target, speed int32) {
	h.unit.Pieces[piece].TurnOp[axisIndex(axis)] = PendingOp{
		Kind: OpTurn, TargetAngle: SimAngle(uint16(target)), Speed: ScalarFromBits(speed),
	}
}

func (h *unitHost) SetTurnNow(piece, axis int, target int32) {
	h.setRotationAxis(piece, axis, SimAngle(uint16(target)))
	h.unit.Pieces[piece].TurnOp[axisIndex(axis)] = PendingOp{}
}

func (h *unitHost) SetSpin(piece, axis int, targetSpeed, acceleration int32) {
	op := &h.unit.Pieces[piece].TurnOp[axisIndex(axis)]
	current := op.Speed
	if op.Kind != OpSpin {
		current = ScalarZero
	}
	*op = PendingOp{Kind: OpSpin, Speed: current, SpinTarget: ScalarFromBits(targetSpeed), Acceleration: ScalarFromBits(acceleration)}
}

func (h *unitHost) SetStopSpin(piece, axis int, deceleration int32) {
	op := &h.unit.Pieces[piece].TurnOp[axisIndex(axis)]
	current := op.Speed
	*op = PendingOp{Kind: OpStopSpin, Speed: current, Acceleration: ScalarFromBits(deceleration)}
}

func (h *unitHost) HasPendingMove(piece, axis int) bool {
	return h.unit.Pieces[piece].MoveOp[axisIndex(axis)].Kind != OpNone
}

func (h *unitHost) HasPendingTurn(piece, axis int) bool {
	return h.unit.Pieces[piece].TurnOp[axisIndex(axis)].Kind != OpNone
}

func (h *unitHost) SetShow(piece int, show bool) { h.unit.Pieces[piece].Hidden = !show }
func (h *unitHost) SetShade(piece int, shade bool) { h.unit.Pieces[piece].Shaded = shade }

func (h *unitHost) EmitSfx(piece int, id int32) {
	if h.sim.Callbacks.OnSound != nil {
		h.sim.Callbacks.OnSound(int(id), h.pieceWorldPosition(piece))
	}
}

func (h *unitHost) Explode(piece int, mask int32) {
	pos := h.pieceWorldPosition(piece)
	if h.sim.Callbacks.OnPieceExplosion != nil {
		h.sim.Callbacks.OnPieceExplosion(pos, VectorZero, int(mask))
	}
}

func (h *unitHost) pieceWorldPosition(piece int) SimVector {
	if piece < 0 || piece >= len(h.unit.Pieces) {
		return h.unit.Position
	}
	return h.unit.Position.Add(h.unit.Pieces[piece].Offset)
}

func (h *unitHost) setOffsetAxis(piece, axis int, v SimScalar) {
	p := &h.unit.Pieces[piece]
	switch axisIndex(axis) {
	case AxisX:
		p.Offset.X = v
	case AxisY:
		p.Offset.Y = v
	case AxisZ:
		p.Offset.Z = v
	}
}

func (h *unitHost) setRotationAxis(piece, axis int, v SimAngle) {
	p := &h.unit.Pieces[piece]
	switch axisIndex(axis) {
	case AxisX:
		p.RotX = v
	case AxisY:
		p.RotY = v
	case AxisZ:
		p.RotZ = v
	}
}

// GetValue implements the CobValueId engine-query surface (SPEC_FULL
// §10). Unsupported ids return 0 rather than erroring, matching the
// original engine's "documented subset" wording — an unsupported id is
// a content authoring mistake, not a VM fault.
func (h *unitHost) GetValue(id cob.ValueID, args []int32) int32 {
	switch id {
	case cob.ValueActivation:
		return boolToInt(h.unit.Activated)
	case cob.ValueHealth:
		return int32(h.unit.HitPoints * 100 / maxInt(h.unit.MaxDamage, 1))
	case cob.ValueInBuildStance:
		return boolToInt(h.unit.InBuildStance)
	case cob.ValueBuildPercentLeft:
		return int32(ScalarOne.Sub(h.unit.BuildTimeCompleted).Mul(ScalarFromInt(100)).Round())
	case cob.ValueYardOpen:
		return boolToInt(h.unit.YardOpen)
	case cob.ValueUnitY:
		return h.unit.Position.Y.Bits()
	case cob.ValueGroundHeight:
		return h.sim.Terrain.GroundHeightAt(h.unit.Position.X, h.unit.Position.Z).Bits()
	case cob.ValueHypot:
		if len(args) >= 2 {
			return Hypot(ScalarFromBits(args[0]), ScalarFromBits(args[1])).Bits()
		}
	case cob.ValueAtan:
		if len(args) >= 2 {
			return int32(Atan2(ScalarFromBits(args[0]), ScalarFromBits(args[1])))
		}
	}
	return 0
}

func (h *unitHost) SetValue(id cob.ValueID, v int32) {
	switch id {
	case cob.ValueActivation:
		h.unit.Activated = v != 0
	case cob.ValueInBuildStance:
		h.unit.InBuildStance = v != 0
	case cob.ValueYardOpen:
		h.unit.YardOpen = v != 0
	}
}

func (h *unitHost) Rand(lo, hi int32) int32 {
	return h.sim.Rand.RangeI32(lo, hi)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
