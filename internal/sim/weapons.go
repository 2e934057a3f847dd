package sim

import "fmt"

// tickWeapons advances every unit's weapon aim/fire state machine by
// one tick (spec §4.3 step 5): acquire a target under the unit's
// FireOrders, track it, and fire once in range and reloaded.
func (s *Simulation) tickWeapons(tickDt SimScalar) {
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead || u.FireOrders == HoldFire {
			return
		}
		for i, w := range u.Weapons {
			if w == nil {
				continue
			}
			s.tickWeapon(u, w, i)
		}
	})
}

func (s *Simulation) tickWeapon(u *UnitState, w *UnitWeapon, slot int) {
	wdef := s.Definitions.MustWeapon(w.WeaponName)

	if w.Target == nil && !w.ExplicitTarget {
		if u.FireOrders != FireAtWill {
			return
		}
		target := s.acquireTarget(u, wdef)
		if target == nil {
			return
		}
		w.Target = target
	}

	targetUnit, ok := s.Units.Get(*w.Target)
	if !ok || targetUnit.LifeState == Dead {
		w.Target = nil
		w.ExplicitTarget = false
		w.State = WeaponIdle
		return
	}
	w.TargetPos = targetUnit.Position

	dist := u.Position.DistanceXZ(w.TargetPos)
	if dist.GreaterThan(wdef.MaxRange) {
		w.State = WeaponAiming
		return
	}

	aim := u.Position.HeadingTo(w.TargetPos)
	if !s.aimWeapon(u, wdef, slot, aim) {
		w.State = WeaponAiming
		return
	}

	if s.Time < w.ReadyTime {
		return
	}

	w.State = WeaponFiring
	s.fireWeapon(u, w, wdef, slot)

	if w.BurstRemaining > 0 {
		w.BurstRemaining--
		w.ReadyTime = s.Time.Add(int64(wdef.BurstInterval))
	}
	if w.BurstRemaining <= 0 {
		w.BurstRemaining = wdef.BurstSize - 1
		w.ReadyTime = s.Time.Add(int64(wdef.ReloadTime))
	}
}

// aimWeapon drives the weapon's turret piece toward aim via its
// AimPrimary/Aim<N> script thread and reports whether the turret has
// finished turning onto it (spec §4.3 step 5: "request aim via script
// callback AimPrimary/Aim... which drives piece TurnOps; when script
// reports 'on target', set state to Fire"). A unit with no script
// environment, or whose model has no matching turret piece, has no
// script-driven aim surface and falls back to comparing body rotation
// against aim directly.
func (s *Simulation) aimWeapon(u *UnitState, wdef *WeaponDefinition, slot int, aim SimAngle) bool {
	if u.CobEnvironment == nil {
		return AngleBetween(u.Rotation, aim) <= wdef.Tolerance
	}
	def := s.Definitions.MustUnit(u.UnitType)
	host := &unitHost{unit: u, def: def, sim: s}
	piece, ok := host.PieceIndex(weaponPieceName(slot))
	if !ok {
		return AngleBetween(u.Rotation, aim) <= wdef.Tolerance
	}

	const axis = int(AxisY)
	relative := SimAngle(signedDelta(u.Rotation, aim))
	onTarget := AngleBetween(u.Pieces[piece].RotY, relative) <= wdef.Tolerance
	if !host.HasPendingTurn(piece, axis) && !onTarget {
		aimFn, _ := weaponFuncNames(slot)
		u.CobEnvironment.StartThread(host, int64(s.Time), aimFn, []int32{int32(relative)})
	}
	return onTarget && !host.HasPendingTurn(piece, axis)
}

// weaponFuncNames returns the script entry points a weapon slot's aim
// and fire callbacks are named at (spec §4.3 step 5): the first
// weapon uses "AimPrimary"/"FirePrimary", additional slots use
// "Aim2"/"Fire2" and up.
func weaponFuncNames(slot int) (aim, fire string) {
	if slot == 0 {
		return "AimPrimary", "FirePrimary"
	}
	n := slot + 1
	return fmt.Sprintf("Aim%d", n), fmt.Sprintf("Fire%d", n)
}

// weaponPieceName is the conventional turret piece a weapon slot's aim
// script drives: "turret" for the first weapon, "turret2"/"turret3"
// and up for additional slots.
func weaponPieceName(slot int) string {
	if slot == 0 {
		return "turret"
	}
	return fmt.Sprintf("turret%d", slot+1)
}

// acquireTarget picks the nearest live enemy unit within range, the
// simplest FireAtWill policy spec §4.3 leaves unspecified beyond
// "auto-acquire" (a later richer targeting policy is an open
// extension, not a correctness requirement here).
func (s *Simulation) acquireTarget(u *UnitState, wdef *WeaponDefinition) *UnitId {
	var best *UnitId
	var bestDist SimScalar
	s.Units.Each(func(candidate *UnitState) {
		if candidate.LifeState == Dead || candidate.Owner == u.Owner {
			return
		}
		d := u.Position.DistanceXZ(candidate.Position)
		if d.GreaterThan(wdef.MaxRange) {
			return
		}
		if best == nil || d.LessThan(bestDist) {
			id := candidate.ID
			best = &id
			bestDist = d
		}
	})
	return best
}

func (s *Simulation) fireWeapon(u *UnitState, w *UnitWeapon, wdef *WeaponDefinition, slot int) {
	dir := u.Position.HeadingTo(w.TargetPos)
	velocity := FromHeading(dir).Scale(wdef.Velocity)

	life := wdef.ProjectileLife
	dieOn := s.Time.Add(int64(life))

	proj := Projectile{
		WeaponType:   w.WeaponName,
		Owner:        u.Owner,
		Position:     u.Position,
		PreviousPosition: u.Position,
		Origin:       u.Position,
		Velocity:     velocity,
		Gravity:      wdef.Gravity,
		Damage:       wdef.Damage,
		DamageRadius: wdef.DamageRadius,
		DieOnFrame:   &dieOn,
	}
	s.SpawnProjectile(proj)

	if u.CobEnvironment != nil {
		def := s.Definitions.MustUnit(u.UnitType)
		host := &unitHost{unit: u, def: def, sim: s}
		_, fireFn := weaponFuncNames(slot)
		u.CobEnvironment.StartThread(host, int64(s.Time), fireFn, nil)
	}

	if s.Callbacks.OnSound != nil {
		s.Callbacks.OnSound(0, u.Position)
	}
}
