package sim

// gravityAccel is the downward acceleration ballistic projectiles feel,
// expressed in world units per second^2 (scaled by tickDt each tick).
var gravityAccel = ScalarFromFloat64(0.5)

// tickProjectiles integrates every live projectile, applies expiry and
// impact, and deals radial damage (spec §4.3 step 6).
func (s *Simulation) tickProjectiles(tickDt SimScalar) {
	var toRemove []ProjectileId

	s.Projectiles.Each(func(p *Projectile) {
		if p.IsDead {
			return
		}

		if p.DieOnFrame != nil && s.Time >= *p.DieOnFrame {
			s.explode(p)
			toRemove = append(toRemove, p.ID)
			return
		}

		p.PreviousPosition = p.Position
		if p.Gravity {
			p.Velocity.Y = p.Velocity.Y.Sub(gravityAccel.Mul(tickDt))
		}
		p.Position = p.Position.Add(p.Velocity.Scale(tickDt))

		groundHeight := s.Terrain.GroundHeightAt(p.Position.X, p.Position.Z)
		if p.Position.Y.LessEqual(groundHeight) {
			p.Position.Y = groundHeight
			s.explode(p)
			toRemove = append(toRemove, p.ID)
			return
		}

		if hit := s.findCollision(p); hit != nil {
			s.applyRadialDamage(p, p.Position)
			toRemove = append(toRemove, p.ID)
		}
	})

	for _, id := range toRemove {
		s.Projectiles.Remove(id)
	}
}

func (s *Simulation) explode(p *Projectile) {
	s.applyRadialDamage(p, p.Position)
	if s.Callbacks.OnExplosion != nil {
		s.Callbacks.OnExplosion("", "", p.Position)
	}
}

// findCollision returns the first live enemy unit whose position is
// within the projectile's effective hit radius of p, or nil.
func (s *Simulation) findCollision(p *Projectile) *UnitState {
	var hit *UnitState
	s.Units.Each(func(u *UnitState) {
		if hit != nil || u.LifeState == Dead || u.Owner == p.Owner {
			return
		}
		if u.Position.DistanceXZ(p.Position).LessEqual(hitRadius) {
			hit = u
		}
	})
	return hit
}

var hitRadius = ScalarFromFloat64(2)

// applyRadialDamage deals a projectile's damage to every live unit
// within DamageRadius of center, scaled linearly from full damage at
// the center to zero at the radius (spec §4.3 step 6).
func (s *Simulation) applyRadialDamage(p *Projectile, center SimVector) {
	if p.DamageRadius.IsZero() {
		return
	}
	s.Units.Each(func(u *UnitState) {
		if u.LifeState == Dead {
			return
		}
		dist := u.Position.DistanceXZ(center)
		if dist.GreaterThan(p.DamageRadius) {
			return
		}
		full := p.DamageFor(u.UnitType)
		falloff := p.DamageRadius.Sub(dist).Div(p.DamageRadius)
		dmg := ScalarFromInt(full).Mul(falloff).Round()
		u.HitPoints -= dmg
		if u.HitPoints <= 0 {
			s.killUnit(u)
		}
	})
}

// killUnit transitions a unit to Dead, cancels its script threads, and
// frees its footprint; its UnitId is never reused (spec §8 invariant 4).
func (s *Simulation) killUnit(u *UnitState) {
	u.LifeState = Dead
	u.HitPoints = 0
	if u.CobEnvironment != nil {
		u.CobEnvironment.KillAll()
	}
	def := s.Definitions.MustUnit(u.UnitType)
	s.Occupied.ClearFootprint(u.Footprint(def, s.tileWorldSize))
}
