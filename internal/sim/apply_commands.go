package sim

// applyCommands consumes one tick's worth of per-player commands
// (already popped from the Lockstep buffer by the caller) and mutates
// unit/game state accordingly — spec §4.3 step 1, the only place
// PlayerCommand values take effect.
func (s *Simulation) applyCommands(batches []PlayerCommands) {
	for _, batch := range batches {
		for _, cmd := range batch.Commands {
			s.applyCommand(batch.Player, cmd)
		}
	}
}

func (s *Simulation) applyCommand(player PlayerId, cmd PlayerCommand) {
	switch cmd.Kind {
	case CmdPlayerUnit:
		s.applyUnitCommand(player, cmd.Unit)
	case CmdPauseGame, CmdUnpauseGame:
		// Pause state lives outside the deterministic core (spec.md
		// Non-goals: "pause/rewind/replay UI"); the host is expected to
		// simply stop calling Tick while paused.
	}
}

func (s *Simulation) applyUnitCommand(player PlayerId, cmd PlayerUnitCommand) {
	u, ok := s.Units.Get(cmd.Unit)
	if !ok || u.LifeState == Dead || u.Owner != player {
		return
	}

	switch cmd.Kind {
	case CmdIssueOrder:
		s.applyOrder(u, cmd.Order, cmd.IssueKind)
	case CmdStop:
		u.BehaviourState = IdleBehaviour()
		u.TargetSpeed = ScalarZero
	case CmdSetFireOrders:
		u.FireOrders = cmd.FireOrders
	case CmdSetOnOff:
		u.Activated = cmd.On
	}
}

func (s *Simulation) applyOrder(u *UnitState, order UnitOrder, issue IssueKind) {
	switch order.Kind {
	case OrderMove:
		u.BehaviourState = BehaviourState{
			Kind: BehaviourMoving,
			Moving: MovingState{
				Destination: order.Destination,
			},
		}
	case OrderBuild:
		u.EnqueueBuild(order.BuildType, 1)
		if u.BehaviourState.Kind != BehaviourBuilding {
			u.InBuildStance = true
		}
	case OrderGuard:
		u.BehaviourState = BehaviourState{Kind: BehaviourGuarding, GuardTarget: order.GuardTarget}
	case OrderReclaim:
		u.BehaviourState = BehaviourState{
			Kind:       BehaviourReclaiming,
			Reclaiming: ReclaimingState{TargetFeature: order.ReclaimTarget},
		}
	case OrderStop:
		u.BehaviourState = IdleBehaviour()
	}
}
