package game

import "math"

// Wall is a builder-placed obstacle. Zombies attack it; when health
// reaches zero it is removed.
type Wall struct {
	ID        int64
	X, Y      float64 // center
	W, H      float64
	Health    float64
	MaxHealth float64
	OwnerID   int
}

const (
	wallLong  = 320.0
	wallShort = 80.0
)

// newWall creates a wall centered at (x,y). horizontal selects the
// long axis orientation.
func newWall(id int64, x, y float64, horizontal bool, ownerID int, health float64) *Wall {
	w, h := wallShort, wallLong
	if horizontal {
		w, h = wallLong, wallShort
	}
	return &Wall{
		ID: id, X: x, Y: y, W: w, H: h,
		Health: health, MaxHealth: health,
		OwnerID: ownerID,
	}
}

// Bunker is the shared structure the survivors defend. Losing it
// loses the game.
type Bunker struct {
	X, Y      float64 // center
	W, H      float64
	Health    float64
	MaxHealth float64
}

const (
	bunkerW = 200.0
	bunkerH = 150.0
)

// Contains reports whether a point is inside the bunker footprint
func (b *Bunker) Contains(x, y float64) bool {
	return math.Abs(x-b.X) <= b.W/2 && math.Abs(y-b.Y) <= b.H/2
}

// HealZone is a healer-placed circle that restores health over time
type HealZone struct {
	X, Y     float64
	Radius   float64
	TimeLeft float64
	HealRate float64 // health per second
}

const (
	healZoneRadius   = 100.0
	healZoneDuration = 10.0
	healZoneRate     = 20.0
)

// PickupType enumerates what a ground drop gives the collector
type PickupType uint8

const (
	PickupHealth PickupType = iota
	PickupAmmo
	PickupCoin
	PickupBigCoin
	PickupWeapon
)

// String returns the wire name of the pickup type
func (t PickupType) String() string {
	switch t {
	case PickupHealth:
		return "health"
	case PickupAmmo:
		return "ammo"
	case PickupCoin:
		return "coin"
	case PickupBigCoin:
		return "big_coin"
	case PickupWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// Pickup is a collectible ground drop with a despawn timer
type Pickup struct {
	ID        int64
	X, Y      float64
	Type      PickupType
	WeaponKey string // PickupWeapon only
	TTL       float64
}

const (
	pickupTTL         = 30.0
	pickupGrabRadius  = 30.0
	pickupHealthValue = 25.0
	pickupAmmoFrac    = 0.3 // fraction of the weapon's full reserve
	pickupCoinValue   = 10
	pickupBigValue    = 50
	maxCarriedWeapons = 8
	dropChance        = 0.3
)

// Particle is a short-lived cosmetic fragment included in snapshots
// so viewers can render impacts
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  string
}

const particleGravity = 300.0

// spawnBurst throws out n particles at a point, capped by limits
func (e *Engine) spawnBurst(x, y float64, n int, color string) {
	for i := 0; i < n; i++ {
		if len(e.particles) >= e.limits.MaxParticles {
			return
		}
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.rng.Float64()*120 + 40
		e.particles = append(e.particles, &Particle{
			X: x, Y: y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - 60,
			Life:  1.0,
			Color: color,
		})
	}
}

// updateWalls removes broken walls in place
func (e *Engine) updateWalls() {
	n := 0
	for _, w := range e.walls {
		if w.Health > 0 {
			e.walls[n] = w
			n++
		}
	}
	e.walls = e.walls[:n]
}

// updateHealZones ticks zone timers and heals players standing inside
func (e *Engine) updateHealZones(dt float64) {
	n := 0
	for _, hz := range e.healZones {
		hz.TimeLeft -= dt
		if hz.TimeLeft <= 0 {
			continue
		}
		for _, p := range e.players {
			if p.Dead || p.Health >= p.MaxHealth {
				continue
			}
			if dist(hz.X, hz.Y, p.X, p.Y) <= hz.Radius {
				p.Health = math.Min(p.Health+hz.HealRate*dt, p.MaxHealth)
			}
		}
		e.healZones[n] = hz
		n++
	}
	e.healZones = e.healZones[:n]
}

// updateParticles applies gravity and expiry
func (e *Engine) updateParticles(dt float64) {
	n := 0
	for _, p := range e.particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += particleGravity * dt
		p.Life -= dt
		if p.Life > 0 {
			e.particles[n] = p
			n++
		}
	}
	e.particles = e.particles[:n]
}

// updatePickups expires old drops and hands the rest to any living
// player that walks over them
func (e *Engine) updatePickups(dt float64) {
	n := 0
	for _, pk := range e.pickups {
		pk.TTL -= dt
		if pk.TTL <= 0 {
			continue
		}
		if e.collectPickup(pk) {
			continue
		}
		e.pickups[n] = pk
		n++
	}
	e.pickups = e.pickups[:n]
}

// collectPickup tries each living player; returns true if consumed
func (e *Engine) collectPickup(pk *Pickup) bool {
	for _, p := range e.players {
		if p.Dead {
			continue
		}
		if dist(pk.X, pk.Y, p.X, p.Y) > pickupGrabRadius {
			continue
		}
		if e.applyPickup(p, pk) {
			e.eventLog.EmitSimple(EventTypePickup, uint64(e.tickCount), p.Name,
				PickupPayload{Player: p.Name, Kind: pk.Type.String(), Weapon: pk.WeaponKey})
			return true
		}
	}
	return false
}

// applyPickup grants the drop's contents. A health drop is left on
// the ground for someone who actually needs it.
func (e *Engine) applyPickup(p *Player, pk *Pickup) bool {
	switch pk.Type {
	case PickupHealth:
		if p.Health >= p.MaxHealth {
			return false
		}
		p.Health = math.Min(p.Health+pickupHealthValue, p.MaxHealth)

	case PickupAmmo:
		w := p.CurrentWeapon()
		if w.Kind == KindMelee {
			return false
		}
		p.Reserve += int(float64(w.ReserveAmmo) * pickupAmmoFrac)
		if p.Reserve > w.ReserveAmmo {
			p.Reserve = w.ReserveAmmo
		}

	case PickupCoin:
		p.Coins += pickupCoinValue
		if e.OnCoins != nil {
			go e.OnCoins(p, pickupCoinValue)
		}

	case PickupBigCoin:
		p.Coins += pickupBigValue
		if e.OnCoins != nil {
			go e.OnCoins(p, pickupBigValue)
		}

	case PickupWeapon:
		for _, k := range p.Weapons {
			if k == pk.WeaponKey {
				// Already carried: take it as an ammo top-up instead
				w := GetWeapon(pk.WeaponKey)
				p.Reserve = w.ReserveAmmo
				return true
			}
		}
		if len(p.Weapons) >= maxCarriedWeapons {
			return false
		}
		p.Weapons = append(p.Weapons, pk.WeaponKey)
		if e.OnWeaponUnlock != nil {
			go e.OnWeaponUnlock(p, pk.WeaponKey)
		}
	}
	return true
}

// dropPickups rolls the drop table for a dead zombie. Bosses always
// pay out a small pile; regular kills drop ~30% of the time.
func (e *Engine) dropPickups(z *Zombie) {
	if z.Type.IsBoss() {
		e.addPickup(z.X-40, z.Y, PickupBigCoin, "")
		e.addPickup(z.X+40, z.Y, PickupBigCoin, "")
		e.addPickup(z.X, z.Y-40, PickupHealth, "")
		e.addPickup(z.X, z.Y+40, PickupWeapon, rollWeaponKey(e.rng.Float64()))
		return
	}

	if e.rng.Float64() >= dropChance {
		return
	}

	roll := e.rng.Float64()
	switch {
	case roll < 0.25:
		e.addPickup(z.X, z.Y, PickupHealth, "")
	case roll < 0.55:
		e.addPickup(z.X, z.Y, PickupAmmo, "")
	case roll < 0.85:
		e.addPickup(z.X, z.Y, PickupCoin, "")
	case roll < 0.90:
		e.addPickup(z.X, z.Y, PickupBigCoin, "")
	default:
		e.addPickup(z.X, z.Y, PickupWeapon, rollWeaponKey(e.rng.Float64()))
	}
}

func (e *Engine) addPickup(x, y float64, t PickupType, weaponKey string) {
	if len(e.pickups) >= e.limits.MaxPickups {
		return
	}
	e.clampToWorld(&x, &y)
	e.pickups = append(e.pickups, &Pickup{
		ID: e.nextEntityID(), X: x, Y: y,
		Type: t, WeaponKey: weaponKey, TTL: pickupTTL,
	})
}
