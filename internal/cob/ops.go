package cob

// Host is the narrow view of unit state and engine callbacks the VM
// needs in order to execute piece operations and engine queries
// (spec §4.2). The sim package's unit tick implements this against a
// concrete *sim.UnitState without cob importing sim, keeping the VM
// package dependency-free of the rest of the world model.
type Host interface {
	// PieceIndex resolves a piece name to its index, or ok=false if the
	// unit model has no such piece (spec §7 "out-of-range piece indices
	// are reported as script errors").
	PieceIndex(name string) (int, bool)

	SetMove(piece, axis int, target, speed int32)
	SetMoveNow(piece, axis int, target int32)
	SetTurn(piece, axis int, target, speed int32)
	SetTurnNow(piece, axis int, target int32)
	SetSpin(piece, axis int, targetSpeed, acceleration int32)
	SetStopSpin(piece, axis int, deceleration int32)

	HasPendingMove(piece, axis int) bool
	HasPendingTurn(piece, axis int) bool

	SetShow(piece int, show bool)
	SetShade(piece int, shade bool)

	EmitSfx(piece int, id int32)
	Explode(piece int, mask int32)

	GetValue(id ValueID, args []int32) int32
	SetValue(id ValueID, v int32)

	Rand(lo, hi int32) int32
}

func (e *Environment) dispatchPieceOp(th *Thread, host Host, op Opcode, args []int32) error {
	pieceIdx := int(args[0])
	axis := 0
	switch op {
	case OpMove, OpMoveNow, OpTurn, OpTurnNow, OpSpin, OpStopSpin:
		axis = int(args[1])
	}
	if pieceIdx < 0 || pieceIdx >= len(e.Program.PieceNames) {
		return &ScriptError{ThreadID: th.ID, IP: th.IP, Reason: "piece index out of range"}
	}

	switch op {
	case OpMove:
		host.SetMove(pieceIdx, axis, args[2], args[3])
	case OpMoveNow:
		host.SetMoveNow(pieceIdx, axis, args[2])
	case OpTurn:
		host.SetTurn(pieceIdx, axis, args[2], args[3])
	case OpTurnNow:
		host.SetTurnNow(pieceIdx, axis, args[2])
	case OpSpin:
		host.SetSpin(pieceIdx, axis, args[2], args[3])
	case OpStopSpin:
		host.SetStopSpin(pieceIdx, axis, args[2])
	case OpShow:
		host.SetShow(pieceIdx, true)
	case OpHide:
		host.SetShow(pieceIdx, false)
	case OpShade:
		host.SetShade(pieceIdx, true)
	case OpDontShade:
		host.SetShade(pieceIdx, false)
	case OpEmitSfx:
		host.EmitSfx(pieceIdx, args[1])
	case OpExplode:
		host.Explode(pieceIdx, args[1])
	}
	return nil
}
