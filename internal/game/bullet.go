package game

import "math"

const bulletRadius = 4.0

// Bullet is a live projectile. Penetrating bullets keep a small hit
// list so the same zombie is never damaged twice by one bullet.
type Bullet struct {
	X, Y     float64
	VX, VY   float64
	Damage   float64
	Scale    float64 // damage multiplier, decays per penetrated target
	Traveled float64
	MaxRange float64

	PenetrationLeft int
	Explosive       bool
	BlastRadius     float64
	Knockback       float64
	Special         SpecialEffect
	WeaponKey       string
	OwnerID         int

	hit []int64 // zombie IDs already damaged
}

// newBullet spawns one pellet along the given angle (radians)
func newBullet(owner *Player, w Weapon, angle float64) *Bullet {
	return &Bullet{
		X:               owner.X,
		Y:               owner.Y,
		VX:              math.Cos(angle) * w.Speed,
		VY:              math.Sin(angle) * w.Speed,
		Damage:          w.Damage,
		Scale:           1.0,
		MaxRange:        w.Range,
		PenetrationLeft: w.Penetration,
		Explosive:       w.Explosive,
		BlastRadius:     w.BlastRadius,
		Knockback:       w.Knockback,
		Special:         w.Special,
		WeaponKey:       w.Key,
		OwnerID:         owner.ID,
	}
}

// alreadyHit reports whether this bullet has damaged the zombie before
func (b *Bullet) alreadyHit(id int64) bool {
	for _, h := range b.hit {
		if h == id {
			return true
		}
	}
	return false
}

// advance moves the bullet and reports whether it is still live
// (within range budget and world bounds)
func (b *Bullet) advance(dt, worldW, worldH float64) bool {
	dx := b.VX * dt
	dy := b.VY * dt
	b.X += dx
	b.Y += dy
	b.Traveled += math.Hypot(dx, dy)

	if b.Traveled >= b.MaxRange {
		return false
	}
	return b.X >= 0 && b.X <= worldW && b.Y >= 0 && b.Y <= worldH
}
