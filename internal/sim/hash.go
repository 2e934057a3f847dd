package sim

// GameHash is a 32-bit fingerprint used for desync detection, chosen
// for cheapness and order-independence within containers whose
// iteration order may not be observably stable (spec §4.6). It is not
// a cryptographic digest.
type GameHash uint32

func (h GameHash) Plus(o GameHash) GameHash { return h + o }

// Hashable is the method form of a hash; no sim type implements it.
// Every sim type, including variants (tag folded in) and strings
// (bytes summed), instead gets a free function below, since Go has no
// function overloading and the original's computeHashOf family is
// dispatched by argument type rather than an interface method.
type Hashable interface {
	SimHash() GameHash
}

func hashBool(b bool) GameHash {
	if b {
		return 1
	}
	return 0
}

func hashInt(i int) GameHash { return GameHash(uint32(int32(i))) }

func hashInt64(i int64) GameHash { return GameHash(uint32(i)) }

func hashString(s string) GameHash {
	var sum uint32
	for i := 0; i < len(s); i++ {
		sum += uint32(s[i])
	}
	return GameHash(sum)
}

func hashScalar(s SimScalar) GameHash { return GameHash(uint32(s.Bits())) }

func hashAngle(a SimAngle) GameHash { return GameHash(uint32(a)) }

func hashVector(v SimVector) GameHash {
	return combine(hashScalar(v.X), hashScalar(v.Y), hashScalar(v.Z))
}

func hashUnitID(id UnitId) GameHash       { return GameHash(id.v) }
func hashProjectileID(id ProjectileId) GameHash { return GameHash(id.v) }
func hashFeatureID(id FeatureId) GameHash { return GameHash(id.v) }
func hashPlayerID(id PlayerId) GameHash   { return GameHash(id.v) }

// hashVariant folds the tag index into the active payload's hash,
// satisfying the law hash(V(i, x)) == i + hash(x) (spec §8).
func hashVariant(index int, payload GameHash) GameHash {
	return GameHash(uint32(index)) + payload
}

// combine sums hashes modulo 2^32 (wraparound is implicit in the
// uint32 addition), matching spec §4.6's combine(a, b, ...).
func combine(hs ...GameHash) GameHash {
	var sum GameHash
	for _, h := range hs {
		sum += h
	}
	return sum
}

func hashUnitMeshState(m UnitMeshState) GameHash {
	return combine(
		hashVector(m.Offset),
		hashAngle(m.RotX), hashAngle(m.RotY), hashAngle(m.RotZ),
		hashBool(m.Hidden), hashBool(m.Shaded),
	)
}

func hashBehaviourState(b BehaviourState) GameHash {
	switch b.Kind {
	case BehaviourIdle:
		return hashVariant(int(b.Kind), 0)
	case BehaviourMoving:
		idx := 0
		if b.Moving.PathTask != nil {
			idx = int(b.Moving.PathTask.v)
		}
		return hashVariant(int(b.Kind), combine(hashVector(b.Moving.Destination), GameHash(uint32(idx))))
	case BehaviourBuilding:
		return hashVariant(int(b.Kind), hashUnitID(b.Building.Target))
	case BehaviourCreatingUnit:
		return hashVariant(int(b.Kind), combine(hashString(b.CreatingUnit.UnitType), GameHash(uint32(b.CreatingUnit.Status))))
	case BehaviourGuarding:
		return hashVariant(int(b.Kind), hashUnitID(b.GuardTarget))
	case BehaviourReclaiming:
		return hashVariant(int(b.Kind), hashFeatureID(b.Reclaiming.TargetFeature))
	}
	return hashVariant(int(b.Kind), 0)
}

func hashUnit(u *UnitState) GameHash {
	return combine(
		hashString(u.UnitType),
		hashVector(u.Position),
		hashPlayerID(u.Owner),
		hashAngle(u.Rotation),
		hashAngle(u.TurnRate),
		hashScalar(u.CurrentSpeed),
		hashAngle(u.TargetAngle),
		hashScalar(u.TargetSpeed),
		hashInt(u.HitPoints),
		GameHash(uint32(u.LifeState)),
		hashBehaviourState(u.BehaviourState),
		hashBool(u.InBuildStance),
		hashBool(u.YardOpen),
		hashBool(u.InCollision),
		GameHash(uint32(u.FireOrders)),
		hashScalar(u.BuildTimeCompleted),
		hashBool(u.Activated),
		hashBool(u.IsSufficientlyPowered),
		hashScalar(u.EnergyMake),
		hashScalar(u.MetalMake),
		hashScalar(u.EnergyUse),
		hashScalar(u.MetalUse),
	)
}

func hashProjectile(p *Projectile) GameHash {
	h := combine(
		hashPlayerID(p.Owner),
		hashVector(p.Position),
		hashVector(p.Origin),
		hashVector(p.Velocity),
		hashScalar(p.DamageRadius),
		hashBool(p.IsDead),
	)
	for _, d := range p.Damage {
		h += hashInt(d)
	}
	return h
}

func hashPlayer(p *GamePlayerInfo) GameHash {
	return combine(
		GameHash(uint32(p.Status)),
		hashString(p.Side),
		hashInt(p.Color),
		hashScalar(p.Metal), hashScalar(p.MaxMetal),
		hashScalar(p.Energy), hashScalar(p.MaxEnergy),
		hashBool(p.MetalStalled), hashBool(p.EnergyStalled),
		hashScalar(p.DesiredMetalConsumptionBuffer), hashScalar(p.DesiredEnergyConsumptionBuffer),
		hashScalar(p.PreviousDesiredMetalConsumptionBuffer), hashScalar(p.PreviousDesiredEnergyConsumptionBuffer),
		hashScalar(p.ActualMetalConsumptionBuffer), hashScalar(p.ActualEnergyConsumptionBuffer),
		hashScalar(p.MetalProductionBuffer), hashScalar(p.EnergyProductionBuffer),
	)
}

// ComputeHash fingerprints the whole simulation state: time, players,
// units, and projectiles (spec §4.6). Dense maps are iterated in
// stable insertion order (spec §5), but the hash combinator itself
// sums over elements, so it would agree across peers even if the
// iteration order ever diverged for a container that does not
// guarantee one.
func ComputeHash(s *Simulation) GameHash {
	var playersHash GameHash
	for i := range s.Players {
		playersHash += hashPlayer(&s.Players[i])
	}

	var unitsHash GameHash
	s.Units.Each(func(u *UnitState) { unitsHash += hashUnit(u) })

	var projHash GameHash
	s.Projectiles.Each(func(p *Projectile) { projHash += hashProjectile(p) })

	return combine(hashInt64(int64(s.Time)), playersHash, unitsHash, projHash)
}
