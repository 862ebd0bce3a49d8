package game

import (
	"log"
	"math"
)

const (
	penetrationDecay = 0.7
	maxKnockback     = 200.0
	meleeSlashOffset = 60.0 // slash point this far along the aim
)

// kingMeleeDivisor divides the ultimate boss's max health into knife
// chips, indexed by stage. Each stage takes an order of magnitude
// more hits to bring down.
var kingMeleeDivisor = [...]float64{
	1:  100,
	2:  1e3,
	3:  1e4,
	4:  1e5,
	5:  1e6,
	6:  1e7,
	7:  1e8,
	8:  1e9,
	9:  1e10,
	10: 1e11,
}

// fireWeapon handles one trigger pull for the player's current weapon.
// Melee ignores ammo entirely; guns consume one round per pull no
// matter how many pellets leave the barrel.
func (e *Engine) fireWeapon(p *Player) {
	if p.FireTimer > 0 || p.Reloading {
		return
	}
	w := p.CurrentWeapon()

	if w.Kind == KindMelee {
		p.FireTimer = 1 / w.FireRate
		e.meleeSweep(p, w)
		return
	}

	if p.Ammo <= 0 {
		e.startReload(p)
		return
	}

	if !e.unlimitedAmmo {
		p.Ammo--
	}
	p.FireTimer = 1 / w.FireRate

	spread := (w.Spread + p.RecoilOffset) * math.Pi / 180
	for i := 0; i < w.Pellets; i++ {
		if len(e.bullets) >= e.limits.MaxBullets {
			break
		}
		angle := p.Aim + (e.rng.Float64()*2-1)*spread
		e.bullets = append(e.bullets, newBullet(p, w, angle))
	}

	p.RecoilOffset = math.Min(p.RecoilOffset+w.Recoil, w.Spread*3)

	if p.Ammo == 0 {
		e.startReload(p)
	}
}

// meleeSweep hits every zombie around the slash point, offset along
// the aim. Regular zombies die outright; the tanky types and bosses
// lose a fixed fraction of max health instead.
func (e *Engine) meleeSweep(p *Player, w Weapon) {
	sx := p.X + math.Cos(p.Aim)*meleeSlashOffset
	sy := p.Y + math.Sin(p.Aim)*meleeSlashOffset
	for _, z := range e.zombies {
		if z.Health <= 0 {
			continue
		}
		if dist(sx, sy, z.X, z.Y) > w.Range+z.Radius {
			continue
		}
		e.applyKnockback(z, z.X-p.X, z.Y-p.Y, w.Knockback)
		e.damageZombie(z, meleeDamage(z), p, w.Key)
	}
}

// meleeDamage returns how hard a blade hits the given zombie
func meleeDamage(z *Zombie) float64 {
	switch z.Type {
	case ZombieTank:
		return z.MaxHealth / 3
	case ZombieSpitter:
		return z.MaxHealth / 5
	case ZombieRadioactive:
		return z.MaxHealth / 6
	case ZombieCageWalker:
		return z.MaxHealth / 60
	case ZombieHordeMother:
		return z.MaxHealth / 40
	case ZombieKing:
		stage := z.Stage
		if stage < 1 {
			stage = 1
		}
		if stage > 10 {
			stage = 10
		}
		return z.MaxHealth / kingMeleeDivisor[stage]
	default:
		return 9999
	}
}

// updateBullets advances every bullet and resolves collisions,
// filtering consumed bullets in place
func (e *Engine) updateBullets(dt float64) {
	n := 0
	for _, b := range e.bullets {
		if e.stepBullet(b, dt) {
			e.bullets[n] = b
			n++
		}
	}
	e.bullets = e.bullets[:n]
}

// stepBullet returns false once the bullet is consumed. Explosives
// detonate on first contact or at the end of their range budget;
// penetrating rounds pass through with decayed damage.
func (e *Engine) stepBullet(b *Bullet, dt float64) bool {
	if !b.advance(dt, e.worldWidth, e.worldHeight) {
		if b.Explosive {
			e.explode(b)
		}
		return false
	}

	for _, z := range e.zombies {
		if z.Health <= 0 || b.alreadyHit(z.ID) {
			continue
		}
		if dist(b.X, b.Y, z.X, z.Y) > z.Radius+bulletRadius {
			continue
		}

		if b.Explosive {
			e.explode(b)
			return false
		}

		e.hitZombie(b, z)
		b.hit = append(b.hit, z.ID)
		b.PenetrationLeft--
		b.Scale *= penetrationDecay
		if b.PenetrationLeft <= 0 {
			return false
		}
	}
	return true
}

// hitZombie applies one direct bullet hit: scaled damage, knockback
// along the flight path, and the weapon's special effect
func (e *Engine) hitZombie(b *Bullet, z *Zombie) {
	attacker := e.playerByID(b.OwnerID)
	dmg := b.Damage * b.Scale

	e.applyKnockback(z, b.VX, b.VY, b.Knockback)
	e.damageZombie(z, dmg, attacker, b.WeaponKey)

	switch b.Special {
	case EffectBurn:
		z.BurnTimer = burnDuration
	case EffectFreeze:
		z.FreezeTimer = freezeDuration
	case EffectChain:
		e.chainArc(z, dmg, attacker, b.WeaponKey)
	}
}

// chainArc jumps half the damage to the nearest other live zombie
func (e *Engine) chainArc(from *Zombie, dmg float64, attacker *Player, weaponKey string) {
	var best *Zombie
	bestD := chainRange
	for _, z := range e.zombies {
		if z == from || z.Health <= 0 {
			continue
		}
		if d := dist(from.X, from.Y, z.X, z.Y); d < bestD {
			best = z
			bestD = d
		}
	}
	if best != nil {
		e.damageZombie(best, dmg*chainDamageFrac, attacker, weaponKey)
	}
}

// explode detonates an explosive round: linear falloff damage and
// radial knockback for everything in the blast
func (e *Engine) explode(b *Bullet) {
	attacker := e.playerByID(b.OwnerID)
	for _, z := range e.zombies {
		if z.Health <= 0 {
			continue
		}
		d := dist(b.X, b.Y, z.X, z.Y)
		if d > b.BlastRadius {
			continue
		}
		f := 1 - d/b.BlastRadius
		e.applyKnockback(z, z.X-b.X, z.Y-b.Y, b.Knockback*f)
		e.damageZombie(z, b.Damage*f, attacker, b.WeaponKey)
	}
	e.spawnBurst(b.X, b.Y, 20, "#ff9800")
}

// applyKnockback adds impulse along (dx,dy), capping the resulting
// knockback velocity so stacked explosions can't launch zombies
// across the map
func (e *Engine) applyKnockback(z *Zombie, dx, dy, force float64) {
	n := math.Hypot(dx, dy)
	if n == 0 || force <= 0 {
		return
	}
	z.KnockbackVX += dx / n * force
	z.KnockbackVY += dy / n * force

	mag := math.Hypot(z.KnockbackVX, z.KnockbackVY)
	if mag > maxKnockback {
		z.KnockbackVX *= maxKnockback / mag
		z.KnockbackVY *= maxKnockback / mag
	}
}

// damageZombie applies damage and scores the kill exactly once when
// health crosses zero. attacker may be nil (burn ticks, environment).
func (e *Engine) damageZombie(z *Zombie, dmg float64, attacker *Player, weaponKey string) {
	if z.Health <= 0 {
		return
	}
	z.Health -= dmg

	attackerName := ""
	if attacker != nil {
		attackerName = attacker.Name
	}
	e.eventLog.EmitSimple(EventTypeDamage, uint64(e.tickCount), attackerName,
		DamagePayload{Attacker: attackerName, ZombieID: z.ID, ZombieType: z.Type.String(),
			Damage: dmg, HealthLeft: math.Max(z.Health, 0), Weapon: weaponKey})

	if z.Health <= 0 {
		e.creditKill(attacker, z)
	}
}

// creditKill scores a zombie death once: world score, killer stats,
// kill event, callback
func (e *Engine) creditKill(attacker *Player, z *Zombie) {
	if z.credited {
		return
	}
	z.credited = true
	e.totalKills++
	e.score += z.Score

	attackerName := ""
	if attacker != nil {
		attacker.Kills++
		attackerName = attacker.Name
	}

	e.eventLog.EmitSimple(EventTypeKill, uint64(e.tickCount), attackerName,
		KillPayload{Killer: attackerName, ZombieID: z.ID, ZombieType: z.Type.String(),
			Score: z.Score, TotalKills: e.totalKills})

	if e.OnKill != nil {
		go e.OnKill(attacker, z)
	}
}

// damagePlayer applies damage to a player, respecting the invincible
// test flag. Dead players stay in the world as static bodies.
func (e *Engine) damagePlayer(p *Player, dmg float64, z *Zombie) {
	if e.invincible || p.Dead || dmg <= 0 {
		return
	}
	p.Health -= dmg
	if p.Health > 0 {
		return
	}
	p.Health = 0
	p.Dead = true

	source := "unknown"
	if z != nil {
		source = z.Type.String()
	}
	log.Printf("💀 %s was killed by %s", p.Name, source)
	e.eventLog.EmitSimple(EventTypePlayerDeath, uint64(e.tickCount), p.Name,
		PlayerDeathPayload{Player: p.Name, Source: source, Wave: e.waves.Wave})
}

// playerByID looks a player up by numeric ID, nil if gone
func (e *Engine) playerByID(id int) *Player {
	for _, p := range e.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
