package sim

// tickPieces advances every unit's mesh piece animation state by one
// tick (spec §4.3 step 3): each piece's MoveOp/TurnOp per axis is
// integrated toward its target at the op's speed/acceleration, and
// Spin ops rotate indefinitely until a StopSpin op decelerates them to
// rest. This runs before behaviour/weapons so COB-issued piece
// commands take effect the same tick they're issued.
func (s *Simulation) tickPieces(tickDt SimScalar) {
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead {
			return
		}
		for i := range u.Pieces {
			piece := &u.Pieces[i]
			piece.PreviousOffset = piece.Offset
			piece.PrevRotX, piece.PrevRotY, piece.PrevRotZ = piece.RotX, piece.RotY, piece.RotZ

			tickAxisMove(&piece.Offset.X, &piece.MoveOp[AxisX], tickDt)
			tickAxisMove(&piece.Offset.Y, &piece.MoveOp[AxisY], tickDt)
			tickAxisMove(&piece.Offset.Z, &piece.MoveOp[AxisZ], tickDt)

			tickAxisTurn(&piece.RotX, &piece.TurnOp[AxisX], tickDt)
			tickAxisTurn(&piece.RotY, &piece.TurnOp[AxisY], tickDt)
			tickAxisTurn(&piece.RotZ, &piece.TurnOp[AxisZ], tickDt)
		}
	})
}

// tickAxisMove advances one translation axis toward op's target at
// op.Speed, per the MOVE instruction's linear-ramp semantics (spec
// §4.2). MoveNow is modelled as an op whose target is reached
// instantly by the caller setting *cur directly, so only the ramped
// case needs integrating here.
func tickAxisMove(cur *SimScalar, op *PendingOp, tickDt SimScalar) {
	if op.Kind != OpMove {
		return
	}
	step := op.Speed.Mul(tickDt)
	if cur.LessThan(op.Target) {
		*cur = ScalarMin(op.Target, cur.Add(step))
	} else {
		*cur = ScalarMax(op.Target, cur.Sub(step))
	}
	if cur.Equal(op.Target) {
		op.Kind = OpNone
	}
}

// tickAxisTurn advances one rotation axis, handling both the ramped
// TURN op (toward TargetAngle at op.Speed) and the indefinite SPIN op
// (toward SpinTarget angular speed, then rotating at that speed
// forever until StopSpin decelerates it back to zero, spec §4.2).
func tickAxisTurn(cur *SimAngle, op *PendingOp, tickDt SimScalar) {
	switch op.Kind {
	case OpTurn:
		maxStep := scaleAngleByDt(SimAngle(uint16(op.Speed.Round())), tickDt)
		*cur = TurnTowards(*cur, op.TargetAngle, maxStep)
		if *cur == op.TargetAngle {
			op.Kind = OpNone
		}
	case OpSpin:
		if op.Speed.LessThan(op.SpinTarget) {
			op.Speed = ScalarMin(op.SpinTarget, op.Speed.Add(op.Acceleration.Mul(tickDt)))
		}
		*cur += scaleAngleByDt(SimAngle(uint16(op.Speed.Round())), tickDt)
	case OpStopSpin:
		if op.Speed.GreaterThan(ScalarZero) {
			op.Speed = ScalarMax(ScalarZero, op.Speed.Sub(op.Acceleration.Mul(tickDt)))
			*cur += scaleAngleByDt(SimAngle(uint16(op.Speed.Round())), tickDt)
		} else {
			op.Kind = OpNone
		}
	}
}
