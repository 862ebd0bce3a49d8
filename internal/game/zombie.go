package game

import (
	"math"
)

// Zombie is a live zombie instance. The engine owns the collection;
// behavior code mutates fields but never appends or removes directly.
type Zombie struct {
	ID        int64
	Type      ZombieType
	X, Y      float64
	Health    float64
	MaxHealth float64
	Speed     float64
	Damage    float64
	Radius    float64
	Score     int
	Wave      int
	Stage     int // king only

	// TargetBunker forces the zombie onto the bunker regardless of
	// player proximity (set by the cage walker's command pulse)
	TargetBunker bool

	AttackTimer float64
	KnockbackVX float64
	KnockbackVY float64

	// Status effects from weapon specials
	BurnTimer   float64
	FreezeTimer float64

	// Per-type special state
	SpecialTimer float64 // pulse / slam / summon / brood, depending on type
	RoarTimer    float64 // king only
	LeapTimer    float64
	Leaping      bool
	LeapVX       float64
	LeapVY       float64
	LeapDestX    float64
	LeapDestY    float64
	Buffed       bool // screamer speed buff applied (permanent)

	brood    []*Zombie // horde mother's live children
	credited bool      // kill already scored (guards double counting)
}

// Contact attack tuning. Wall hits land twice as hard because walls
// are meant to buy seconds, not stall a wave forever.
const (
	zombieAttackRangePlayer = 40.0
	zombieAttackRangeBunker = 100.0
	zombieAttackRangeWall   = 60.0
	zombieAttackCDPlayer    = 1.0
	zombieAttackCDBunker    = 1.5
	zombieAttackCDWall      = 0.5
	zombieWallDamageFactor  = 2.0
	bunkerFallbackDist      = 400.0
	wallDetectRange         = 200.0
)

// EffectiveSpeed returns movement speed after status effects
func (z *Zombie) EffectiveSpeed() float64 {
	if z.FreezeTimer > 0 {
		return z.Speed * freezeFactor
	}
	return z.Speed
}

// updateZombies runs one behavior step for every zombie. New zombies
// spawned by necromancers or the horde mother are appended to the
// engine slice and start acting next tick; dead zombies are reaped in
// reapZombies afterwards.
func (e *Engine) updateZombies(dt float64) {
	for _, z := range e.zombies {
		if z.Health <= 0 {
			continue
		}
		e.tickStatusEffects(z, dt)
		if z.Health <= 0 {
			continue // burn tick finished it
		}
		e.runSpecial(z, dt)
		e.moveZombie(z, dt)
		e.zombieAttacks(z, dt)
	}
	e.reapZombies()
}

// tickStatusEffects applies burn damage and decays freeze
func (e *Engine) tickStatusEffects(z *Zombie, dt float64) {
	if z.BurnTimer > 0 {
		z.BurnTimer -= dt
		z.Health -= burnDPS * dt
		if z.Health <= 0 {
			e.creditKill(nil, z)
		}
	}
	if z.FreezeTimer > 0 {
		z.FreezeTimer -= dt
	}
}

// runSpecial dispatches the per-type special behavior
func (e *Engine) runSpecial(z *Zombie, dt float64) {
	switch z.Type {
	case ZombieRadioactive:
		// Passive aura, no timer: damage every player standing in it
		for _, p := range e.players {
			if p.Dead || p.IsTraitor {
				continue
			}
			if dist(z.X, z.Y, p.X, p.Y) <= radiationRadius {
				e.damagePlayer(p, radiationDPS*dt, z)
			}
		}

	case ZombieScreamer:
		if z.Buffed {
			return
		}
		for _, p := range e.players {
			if p.Dead || p.IsTraitor {
				continue
			}
			if dist(z.X, z.Y, p.X, p.Y) <= screamTriggerRange {
				e.scream(z)
				break
			}
		}

	case ZombieLeaper:
		e.runLeaper(z, dt)

	case ZombieCageWalker:
		z.SpecialTimer -= dt
		if z.SpecialTimer <= 0 {
			z.SpecialTimer = commandPulseInterval
			e.commandPulse(z)
		}

	case ZombieKing:
		z.SpecialTimer -= dt
		if z.SpecialTimer <= 0 {
			z.SpecialTimer = kingSlamInterval
			e.kingSlam(z)
		}
		z.RoarTimer -= dt
		if z.RoarTimer <= 0 {
			z.RoarTimer = kingRoarInterval
			e.kingRoar(z)
		}

	case ZombieNecromancer:
		z.SpecialTimer -= dt
		if z.SpecialTimer <= 0 {
			z.SpecialTimer = summonInterval
			e.summonMinion(z)
		}

	case ZombieHordeMother:
		z.SpecialTimer -= dt
		if z.SpecialTimer <= 0 {
			z.SpecialTimer = broodInterval
			e.spawnBroodChild(z)
		}
	}
}

// scream permanently buffs every zombie in the blast and pulls them
// off the bunker so they hunt players again, overriding any standing
// cage walker command
func (e *Engine) scream(s *Zombie) {
	s.Buffed = true
	for _, z := range e.zombies {
		if z.Health <= 0 {
			continue
		}
		if dist(s.X, s.Y, z.X, z.Y) > screamRadius {
			continue
		}
		z.TargetBunker = false
		if !z.Buffed {
			z.Speed *= screamSpeedFactor
			z.Buffed = true
		}
	}
	e.eventLog.EmitSimple(EventTypeScream, uint64(e.tickCount), s.Type.String(),
		ZombiePayload{ZombieID: s.ID, Type: s.Type.String(), X: s.X, Y: s.Y})
}

// commandPulse flips every regular zombie onto the bunker
func (e *Engine) commandPulse(c *Zombie) {
	for _, z := range e.zombies {
		if z == c || z.Health <= 0 || z.Type.IsBoss() {
			continue
		}
		z.TargetBunker = true
	}
}

// kingSlam is an AoE stomp: half the king's damage, falloff with
// distance, heavy knockback
func (e *Engine) kingSlam(k *Zombie) {
	radius := 150.0 + 20.0*float64(k.Stage)
	for _, p := range e.players {
		if p.Dead || p.IsTraitor {
			continue
		}
		d := dist(k.X, k.Y, p.X, p.Y)
		if d > radius {
			continue
		}
		dmg := (k.Damage / 2) * (1 - d/radius)
		e.damagePlayer(p, dmg, k)
	}
	e.spawnBurst(k.X, k.Y, 18, "#8d6e63")
}

// kingRoar shoves every nearby player away without dealing damage
func (e *Engine) kingRoar(k *Zombie) {
	for _, p := range e.players {
		if p.Dead {
			continue
		}
		d := dist(k.X, k.Y, p.X, p.Y)
		if d > kingRoarRadius || d == 0 {
			continue
		}
		f := kingRoarForce * (1 - d/kingRoarRadius)
		p.X += (p.X - k.X) / d * f
		p.Y += (p.Y - k.Y) / d * f
		e.clampToWorld(&p.X, &p.Y)
	}
}

// summonMinion raises a half-health normal zombie next to the
// necromancer, respecting the global zombie ceiling
func (e *Engine) summonMinion(n *Zombie) {
	if e.aliveZombieCount() >= e.limits.MaxZombies {
		return
	}
	angle := e.rng.Float64() * 2 * math.Pi
	x := n.X + math.Cos(angle)*60
	y := n.Y + math.Sin(angle)*60
	m := e.newZombieAt(ZombieNormal, x, y, n.Wave, 0)
	m.Health = m.MaxHealth / 2
	e.zombies = append(e.zombies, m)
}

// spawnBroodChild adds a crawler child if the mother's live brood is
// under its cap and the world ceiling allows it
func (e *Engine) spawnBroodChild(m *Zombie) {
	n := 0
	for _, c := range m.brood {
		if c.Health > 0 {
			m.brood[n] = c
			n++
		}
	}
	m.brood = m.brood[:n]

	if len(m.brood) >= broodMaxAlive || e.aliveZombieCount() >= e.limits.MaxZombies {
		return
	}

	angle := e.rng.Float64() * 2 * math.Pi
	x := m.X + math.Cos(angle)*70
	y := m.Y + math.Sin(angle)*70
	c := e.newZombieAt(ZombieCrawler, x, y, m.Wave, 0)
	c.Health = c.MaxHealth * broodHealthFrac
	c.MaxHealth = c.Health
	m.brood = append(m.brood, c)
	e.zombies = append(e.zombies, c)
}

// runLeaper handles the leap state machine: pick a landing spot near
// the target, fly there ballistically, deal landing damage
func (e *Engine) runLeaper(z *Zombie, dt float64) {
	if z.Leaping {
		z.X += z.LeapVX * dt
		z.Y += z.LeapVY * dt
		if dist(z.X, z.Y, z.LeapDestX, z.LeapDestY) <= leapLandRadius {
			z.Leaping = false
			z.LeapTimer = leapCooldown
			for _, p := range e.players {
				if p.Dead || p.IsTraitor {
					continue
				}
				if dist(z.X, z.Y, p.X, p.Y) <= z.Radius+30 {
					e.damagePlayer(p, z.Damage, z)
				}
			}
		}
		return
	}

	z.LeapTimer -= dt
	if z.LeapTimer > 0 {
		return
	}

	target := e.nearestLivePlayer(z.X, z.Y)
	if target == nil {
		return
	}
	d := dist(z.X, z.Y, target.X, target.Y)
	if d < leapMinDist || d > leapRange {
		return
	}

	// Sample the landing point once so mid-air dodging works
	z.LeapDestX = target.X
	z.LeapDestY = target.Y
	z.Leaping = true
	dx, dy := z.LeapDestX-z.X, z.LeapDestY-z.Y
	n := math.Hypot(dx, dy)
	z.LeapVX = dx / n * leapSpeed
	z.LeapVY = dy / n * leapSpeed
}

// moveZombie resolves the target and walks straight at it, applying
// knockback velocity with framerate-independent decay
func (e *Engine) moveZombie(z *Zombie, dt float64) {
	if z.Leaping {
		return // leap owns movement this tick
	}

	tx, ty := e.zombieTarget(z)
	dx, dy := tx-z.X, ty-z.Y
	d := math.Hypot(dx, dy)
	if d > 1 {
		spd := z.EffectiveSpeed()
		z.X += dx / d * spd * dt
		z.Y += dy / d * spd * dt
	}

	// Knockback decays by 10% per 60Hz frame regardless of tick rate
	z.X += z.KnockbackVX * dt
	z.Y += z.KnockbackVY * dt
	decay := math.Pow(0.9, 60*dt)
	z.KnockbackVX *= decay
	z.KnockbackVY *= decay

	e.clampToWorld(&z.X, &z.Y)
}

// zombieTarget picks the point the zombie walks toward:
//  1. commanded zombies go for the bunker
//  2. otherwise the nearest living non-traitor player
//  3. if no player is within reach, fall back to the bunker
//  4. a wall directly in the way overrides everything
func (e *Engine) zombieTarget(z *Zombie) (float64, float64) {
	tx, ty := e.bunker.X, e.bunker.Y

	if !z.TargetBunker {
		if p := e.nearestLivePlayer(z.X, z.Y); p != nil {
			if dist(z.X, z.Y, p.X, p.Y) <= bunkerFallbackDist {
				tx, ty = p.X, p.Y
			}
		}
	}

	if w := e.wallInPath(z, tx, ty); w != nil {
		return w.X, w.Y
	}
	return tx, ty
}

// wallInPath returns a close wall roughly between the zombie and its
// target, if any. Walls are obstacles, not pathfinding: zombies chew
// through rather than walk around.
func (e *Engine) wallInPath(z *Zombie, tx, ty float64) *Wall {
	var best *Wall
	bestD := wallDetectRange
	for _, w := range e.walls {
		d := dist(z.X, z.Y, w.X, w.Y)
		if d >= bestD {
			continue
		}
		// In the way means the wall sits in the target's general direction
		if (w.X-z.X)*(tx-z.X)+(w.Y-z.Y)*(ty-z.Y) > 0 {
			best = w
			bestD = d
		}
	}
	return best
}

// zombieAttacks lands contact hits on whatever is in range. One
// cooldown per zombie; the shortest range wins when several overlap.
func (e *Engine) zombieAttacks(z *Zombie, dt float64) {
	z.AttackTimer -= dt
	if z.AttackTimer > 0 {
		return
	}

	// Walls first: they physically block the path
	for _, w := range e.walls {
		if dist(z.X, z.Y, w.X, w.Y) <= zombieAttackRangeWall+z.Radius {
			w.Health -= z.Damage * zombieWallDamageFactor
			z.AttackTimer = zombieAttackCDWall
			return
		}
	}

	for _, p := range e.players {
		if p.Dead || p.IsTraitor {
			continue
		}
		if dist(z.X, z.Y, p.X, p.Y) <= zombieAttackRangePlayer+z.Radius {
			e.damagePlayer(p, z.Damage, z)
			z.AttackTimer = zombieAttackCDPlayer
			return
		}
	}

	if dist(z.X, z.Y, e.bunker.X, e.bunker.Y) <= zombieAttackRangeBunker+z.Radius {
		e.bunker.Health -= z.Damage
		if e.bunker.Health < 0 {
			e.bunker.Health = 0
		}
		z.AttackTimer = zombieAttackCDBunker
	}
}

// nearestLivePlayer returns the closest living non-traitor player
func (e *Engine) nearestLivePlayer(x, y float64) *Player {
	var best *Player
	bestD := math.MaxFloat64
	for _, p := range e.players {
		if p.Dead || p.IsTraitor {
			continue
		}
		if d := dist(x, y, p.X, p.Y); d < bestD {
			best = p
			bestD = d
		}
	}
	return best
}

// reapZombies removes dead zombies in place and fires death side
// effects (bloater blast, king stage bookkeeping, pickup drops)
func (e *Engine) reapZombies() {
	n := 0
	for _, z := range e.zombies {
		if z.Health > 0 {
			e.zombies[n] = z
			n++
			continue
		}
		e.onZombieDeath(z)
	}
	e.zombies = e.zombies[:n]
}

// onZombieDeath runs once per zombie when it leaves the world
func (e *Engine) onZombieDeath(z *Zombie) {
	if z.Type == ZombieBloater {
		e.bloaterBlast(z)
	}
	if z.Type.IsBoss() {
		e.waves.bossDied(z)
		e.eventLog.EmitSimple(EventTypeBossKill, uint64(e.tickCount), z.Type.String(),
			ZombiePayload{ZombieID: z.ID, Type: z.Type.String(), X: z.X, Y: z.Y})
	}
	e.dropPickups(z)
	e.spawnBurst(z.X, z.Y, 10, "#7cb342")
}

// bloaterBlast damages players caught in the burst with linear falloff
func (e *Engine) bloaterBlast(z *Zombie) {
	for _, p := range e.players {
		if p.Dead || p.IsTraitor {
			continue
		}
		d := dist(z.X, z.Y, p.X, p.Y)
		if d > bloaterBlastRadius {
			continue
		}
		e.damagePlayer(p, bloaterBlastDamage*(1-d/bloaterBlastRadius), z)
	}
	e.spawnBurst(z.X, z.Y, 24, "#aed581")
}

func (e *Engine) aliveZombieCount() int {
	n := 0
	for _, z := range e.zombies {
		if z.Health > 0 {
			n++
		}
	}
	return n
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
