package cob

// Environment is one unit's script VM state: the shared static
// variable bank and the set of cooperative threads currently running
// against one immutable Program (spec §3 "cob_environment:
// ScriptEnvironment").
type Environment struct {
	Program *Program
	Statics []int32
	Threads []*Thread

	nextThreadID int
}

// NewEnvironment allocates an Environment for one unit against the
// given immutable program.
func NewEnvironment(program *Program) *Environment {
	return &Environment{
		Program: program,
		Statics: make([]int32, program.StaticVarCount),
	}
}

// StartThread creates a new thread at the named function's entry
// point and runs it immediately up to its first suspension, within
// the calling tick (spec §4.2: "When a thread starts another via
// START_SCRIPT, the new thread runs in the same tick up to its first
// suspension"). It returns nil, and runs nothing, if the function name
// is not defined. Besides a script's own START_SCRIPT, the sim package
// calls it with conventional entry-point names (Create, AimPrimary,
// FirePrimary, ...) that a program need not define, so a nil return
// is an ordinary outcome for those callers.
func (e *Environment) StartThread(host Host, now int64, funcName string, args []int32) *Thread {
	fn, ok := e.Program.FunctionByName(funcName)
	if !ok {
		return nil
	}
	t := newThread(e.nextThreadID, fn.Entry, args)
	e.nextThreadID++
	e.Threads = append(e.Threads, t)
	e.runThread(t, host, now, ScriptQuantum)
	return t
}

// ScriptQuantum bounds how many instructions a thread executes within
// one call to runThread before being preempted (spec §4.2 rule d).
// Declared here (not imported from the sim package's config) to keep
// cob free of any dependency on sim.
const ScriptQuantum = 4000

// Tick advances every runnable thread of the environment by one
// simulation tick, in insertion order (spec §5 "Script thread order
// within a unit is insertion order"), and removes threads that have
// terminated or been killed by a signal.
func (e *Environment) Tick(host Host, now int64) []error {
	var errs []error
	for _, t := range e.Threads {
		if !t.Runnable(host, now) {
			continue
		}
		if err := e.runThread(t, host, now, ScriptQuantum); err != nil {
			errs = append(errs, err)
		}
	}
	live := e.Threads[:0]
	for _, t := range e.Threads {
		if !t.Dead {
			live = append(live, t)
		}
	}
	e.Threads = live
	return errs
}

// runThread executes instructions for t until it suspends, returns,
// errors, or exhausts its budget (preempted, resumes next call at the
// same IP).
func (e *Environment) runThread(t *Thread, host Host, now int64, budget int) error {
	for steps := 0; steps < budget; steps++ {
		if t.Dead {
			return nil
		}
		if int(t.IP) >= len(e.Program.Instructions) {
			t.Dead = true
			return nil
		}
		instr := e.Program.Instructions[t.IP]
		suspend, terminate, err := e.execute(t, host, now, instr)
		if err != nil {
			t.Dead = true
			return err
		}
		if terminate {
			t.Dead = true
			return nil
		}
		if suspend {
			return nil
		}
	}
	// quantum exhausted: resume next tick at the same IP (already
	// advanced past any already-committed instruction inside execute).
	return nil
}

// Signal kills every thread of this environment other than exempt
// whose SignalMask intersects mask (spec §4.2 SIGNAL semantics).
func (e *Environment) Signal(exempt *Thread, mask int32) {
	for _, t := range e.Threads {
		if t == exempt || t.Dead {
			continue
		}
		if t.SignalMask&mask != 0 {
			t.Dead = true
			t.Wait = Wait{Kind: WaitTerminated}
		}
	}
}

// KillAll terminates every thread immediately, the cancellation a unit
// transitioning to Dead performs at its next VM step (spec §5).
func (e *Environment) KillAll() {
	for _, t := range e.Threads {
		t.Dead = true
	}
	e.Threads = nil
}
