package cob

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeHost is a minimal cob.Host for tests: it tracks how many ticks
// remain on a pending turn per (piece, axis) and the values SET_VALUE
// has written, with Advance simulating the piece tick that would
// otherwise resolve a pending turn over time.
type fakeHost struct {
	pieces        []string
	turnRemaining map[[2]int]int32
	values        map[ValueID]int32
}

func newFakeHost(pieces ...string) *fakeHost {
	return &fakeHost{
		pieces:        pieces,
		turnRemaining: map[[2]int]int32{},
		values:        map[ValueID]int32{},
	}
}

func (h *fakeHost) PieceIndex(name string) (int, bool) {
	for i, p := range h.pieces {
		if p == name {
			return i, true
		}
	}
	return 0, false
}

func (h *fakeHost) SetMove(piece, axis int, target, speed int32)    {}
func (h *fakeHost) SetMoveNow(piece, axis int, target int32)        {}
func (h *fakeHost) SetSpin(piece, axis int, target, accel int32)    {}
func (h *fakeHost) SetStopSpin(piece, axis int, decel int32)        {}
func (h *fakeHost) SetShow(piece int, show bool)                    {}
func (h *fakeHost) SetShade(piece int, shade bool)                  {}
func (h *fakeHost) EmitSfx(piece int, id int32)                     {}
func (h *fakeHost) Explode(piece int, mask int32)                   {}
func (h *fakeHost) HasPendingMove(piece, axis int) bool             { return false }
func (h *fakeHost) Rand(lo, hi int32) int32                         { return lo }

func (h *fakeHost) SetTurn(piece, axis int, target, speed int32) {
	ticks := (target + speed - 1) / speed
	h.turnRemaining[[2]int{piece, axis}] = ticks
}

func (h *fakeHost) SetTurnNow(piece, axis int, target int32) {
	h.turnRemaining[[2]int{piece, axis}] = 0
}

func (h *fakeHost) HasPendingTurn(piece, axis int) bool {
	return h.turnRemaining[[2]int{piece, axis}] > 0
}

func (h *fakeHost) GetValue(id ValueID, args []int32) int32 { return h.values[id] }
func (h *fakeHost) SetValue(id ValueID, v int32)            { h.values[id] = v }

// Advance simulates one tick's worth of piece movement, resolving
// pending turns the way internal/sim's piece tick would.
func (h *fakeHost) Advance() {
	for k, remaining := range h.turnRemaining {
		if remaining > 0 {
			h.turnRemaining[k] = remaining - 1
		}
	}
}

// buildTurnSleepProgram assembles a single "Create" script equivalent
// to: TURN yaw yaxis TO 32768 SPEED 4096; WAIT-FOR-TURN yaw yaxis;
// SLEEP 500; SET activation TO 1; RETURN.
func buildTurnSleepProgram() *Program {
	return &Program{
		PieceNames: []string{"yaw"},
		Functions: []FunctionInfo{
			{Name: "Create", Entry: 0},
		},
		Instructions: []Instruction{
			{Op: OpTurn, Args: []int32{0, 0, 32768, 4096}},
			{Op: OpWaitForTurn, Args: []int32{0, 0}},
			{Op: OpSleep, Args: []int32{500}},
			{Op: OpSetValue, Args: []int32{int32(ValueActivation), 1}},
			{Op: OpReturn},
		},
	}
}

func TestScenario3SleepAndWaitForTurnCompose(t *testing.T) {
	Convey("Given a script that turns a piece, waits for the turn, then sleeps", t, func() {
		program := buildTurnSleepProgram()
		env := NewEnvironment(program)
		host := newFakeHost("yaw")

		th := env.StartThread(host, 0, "Create", nil)
		So(th, ShouldNotBeNil)

		Convey("it suspends on WAIT_FOR_TURN immediately after issuing the turn", func() {
			So(th.Wait.Kind, ShouldEqual, WaitForTurn)
			So(host.HasPendingTurn(0, 0), ShouldBeTrue)
		})

		Convey("the turn resolves in exactly ceil(32768/4096) = 8 ticks, then it sleeps exactly 15 ticks, then sets activation", func() {
			var tick int64
			for tick = 1; host.HasPendingTurn(0, 0); tick++ {
				host.Advance()
				env.Tick(host, tick)
			}
			So(tick, ShouldEqual, 9) // loop runs ticks 1..8, exits with tick==9

			So(th.Wait.Kind, ShouldEqual, WaitSleep)
			So(th.Wait.WakeAt, ShouldEqual, 8+15)

			for ; tick < th.Wait.WakeAt; tick++ {
				env.Tick(host, tick)
				So(host.values[ValueActivation], ShouldEqual, 0)
			}
			env.Tick(host, th.Wait.WakeAt)

			So(host.values[ValueActivation], ShouldEqual, int32(1))
			So(th.Dead, ShouldBeTrue)
			So(tick, ShouldEqual, 23)
		})
	})
}

func TestEnvironmentTickRemovesDeadThreads(t *testing.T) {
	Convey("Given an environment whose thread runs to completion", t, func() {
		program := &Program{
			Functions:    []FunctionInfo{{Name: "Create", Entry: 0}},
			Instructions: []Instruction{{Op: OpReturn}},
		}
		env := NewEnvironment(program)
		host := newFakeHost()

		env.StartThread(host, 0, "Create", nil)
		env.Tick(host, 1)
		So(env.Threads, ShouldBeEmpty)
	})
}

func TestSignalKillsMatchingThreadsExceptExempt(t *testing.T) {
	Convey("Given two threads waiting with overlapping signal masks", t, func() {
		program := &Program{
			Functions: []FunctionInfo{{Name: "Loop", Entry: 0}},
			Instructions: []Instruction{
				{Op: OpSetSignalMask, Args: []int32{0x1}},
				{Op: OpSleep, Args: []int32{100000}},
			},
		}
		env := NewEnvironment(program)
		host := newFakeHost()

		a := env.StartThread(host, 0, "Loop", nil)
		b := env.StartThread(host, 0, "Loop", nil)

		env.Signal(a, 0x1)

		So(a.Dead, ShouldBeFalse)
		So(b.Dead, ShouldBeTrue)
	})
}
