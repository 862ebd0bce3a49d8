package game

import (
	"log"
	"math"
)

// PlayerClass selects a loadout and an ability
type PlayerClass uint8

const (
	ClassBuilder PlayerClass = iota
	ClassRanger
	ClassHealer
	ClassTank
	ClassTraitor
)

// String returns the wire name for the class
func (c PlayerClass) String() string {
	switch c {
	case ClassBuilder:
		return "builder"
	case ClassRanger:
		return "ranger"
	case ClassHealer:
		return "healer"
	case ClassTank:
		return "tank"
	case ClassTraitor:
		return "traitor"
	default:
		return "unknown"
	}
}

// ParseClass maps a wire name to a class, defaulting to ranger
func ParseClass(s string) PlayerClass {
	switch s {
	case "builder":
		return ClassBuilder
	case "healer":
		return ClassHealer
	case "tank":
		return ClassTank
	case "traitor":
		return ClassTraitor
	default:
		return ClassRanger
	}
}

// Intent is one frame of input for a player. The engine reads it
// every tick; input collaborators only ever write this struct.
type Intent struct {
	MoveX        float64 `json:"moveX,omitempty"` // normalized before use
	MoveY        float64 `json:"moveY,omitempty"`
	Aim          float64 `json:"aim"`             // radians
	Fire         bool    `json:"fire,omitempty"`
	Reload       bool    `json:"reload,omitempty"`
	Ability      bool    `json:"ability,omitempty"`
	Sprint       bool    `json:"sprint,omitempty"`
	Bandage      bool    `json:"bandage,omitempty"`
	Medkit       bool    `json:"medkit,omitempty"`
	SwitchTo     int     `json:"switchTo"` // weapon slot, -1 = keep current
}

// Player holds all per-player simulation state
type Player struct {
	ID        int
	Name      string
	Class     PlayerClass
	X, Y      float64
	Aim       float64
	Health    float64
	MaxHealth float64
	Speed     float64
	Dead      bool
	IsTraitor bool

	Weapons   []string
	WeaponIdx int
	Ammo      int // rounds in magazine
	Reserve   int // rounds carried

	Reloading    bool
	ReloadTimer  float64
	FireTimer    float64
	RecoilOffset float64 // degrees added to spread, decays over time

	AbilityTimer    float64 // time until ability is ready
	AbilityCooldown float64 // class constant
	SpeedBoostTimer float64
	RegenTimer      float64

	Bandages int
	Medkits  int
	Coins    int
	Kills    int

	Intent Intent
}

const (
	sprintFactor       = 1.4
	speedBoostFactor   = 1.5
	recoilDecayRate    = 15.0 // degrees per second
	regenInterval      = 3.0
	regenAmount        = 1.0
	bandageHeal        = 25.0
	medkitHeal         = 75.0
	maxWallsPerBuilder = 10
)

// classLoadout applies the class's stats and weapons to the player.
// Ammo is filled for the first weapon.
func classLoadout(p *Player, c PlayerClass) {
	p.Class = c
	p.IsTraitor = false
	p.Bandages = 0
	p.Medkits = 0

	switch c {
	case ClassBuilder:
		p.MaxHealth = 120
		p.Speed = 200
		p.Weapons = []string{"nail_gun", "glock", "knife"}
		p.AbilityCooldown = 3
	case ClassRanger:
		p.MaxHealth = 100
		p.Speed = 220
		p.Weapons = []string{"rifle", "ak47", "sniper", "svd", "crossbow", "knife"}
		p.AbilityCooldown = 15
	case ClassHealer:
		p.MaxHealth = 90
		p.Speed = 210
		p.Weapons = []string{"smg", "p90", "tranq_pistol", "knife"}
		p.AbilityCooldown = 12
		p.Bandages = 5
		p.Medkits = 3
	case ClassTank:
		p.MaxHealth = 180
		p.Speed = 140
		p.Weapons = []string{"minigun", "rpg", "grenade_launcher", "spas12", "deagle", "knife"}
		p.AbilityCooldown = 20
	case ClassTraitor:
		p.MaxHealth = 100
		p.Speed = 200
		p.Weapons = []string{"pistol", "smg", "knife"}
		p.AbilityCooldown = 8
		p.IsTraitor = true
	}

	p.WeaponIdx = 0
	p.fillAmmo()
}

// fillAmmo resets magazine and reserve to the current weapon's full load
func (p *Player) fillAmmo() {
	w := p.CurrentWeapon()
	p.Ammo = w.MagSize
	p.Reserve = w.ReserveAmmo
	p.Reloading = false
	p.ReloadTimer = 0
}

// CurrentWeapon resolves the active weapon from the catalog
func (p *Player) CurrentWeapon() Weapon {
	if p.WeaponIdx < 0 || p.WeaponIdx >= len(p.Weapons) {
		return GetWeapon("")
	}
	return GetWeapon(p.Weapons[p.WeaponIdx])
}

// TotalAmmo is magazine plus reserve; conserved across reloads
func (p *Player) TotalAmmo() int {
	return p.Ammo + p.Reserve
}

// EffectiveSpeed applies sprint and the ranger boost
func (p *Player) EffectiveSpeed() float64 {
	s := p.Speed
	if p.SpeedBoostTimer > 0 {
		s *= speedBoostFactor
	}
	if p.Intent.Sprint {
		s *= sprintFactor
	}
	return s
}

// updatePlayers runs one input/ability/housekeeping step per player
func (e *Engine) updatePlayers(dt float64) {
	for _, p := range e.players {
		if p.Dead {
			continue
		}
		e.stepPlayer(p, dt)
	}
}

func (e *Engine) stepPlayer(p *Player, dt float64) {
	in := &p.Intent

	// Movement, normalized so diagonals aren't faster
	mx, my := in.MoveX, in.MoveY
	if n := math.Hypot(mx, my); n > 1 {
		mx /= n
		my /= n
	}
	spd := p.EffectiveSpeed()
	p.X += mx * spd * dt
	p.Y += my * spd * dt
	e.clampToWorld(&p.X, &p.Y)

	p.Aim = in.Aim

	// Timers
	if p.FireTimer > 0 {
		p.FireTimer -= dt
	}
	if p.SpeedBoostTimer > 0 {
		p.SpeedBoostTimer -= dt
	}
	if p.AbilityTimer > 0 {
		p.AbilityTimer -= dt
	}
	if p.RecoilOffset > 0 {
		p.RecoilOffset = math.Max(0, p.RecoilOffset-recoilDecayRate*dt)
	}

	if p.Reloading {
		p.ReloadTimer -= dt
		if p.ReloadTimer <= 0 {
			p.finishReload()
		}
	}

	// Passive regen, traitors excluded
	if !p.IsTraitor && p.Health < p.MaxHealth {
		p.RegenTimer += dt
		for p.RegenTimer >= regenInterval {
			p.RegenTimer -= regenInterval
			p.Health = math.Min(p.Health+regenAmount, p.MaxHealth)
		}
	}

	if in.SwitchTo >= 0 {
		p.switchWeapon(in.SwitchTo)
		in.SwitchTo = -1
	}
	if in.Bandage {
		p.useBandage()
		in.Bandage = false
	}
	if in.Medkit {
		p.useMedkit()
		in.Medkit = false
	}
	if in.Reload {
		e.startReload(p)
		in.Reload = false
	}
	if in.Ability {
		e.useAbility(p)
		in.Ability = false
	}
	if in.Fire {
		e.fireWeapon(p)
	}
}

// switchWeapon changes the active slot. Switching refills the new
// weapon's load and cancels any reload in progress.
func (p *Player) switchWeapon(slot int) {
	if slot < 0 || slot >= len(p.Weapons) || slot == p.WeaponIdx {
		return
	}
	p.WeaponIdx = slot
	p.fillAmmo()
	p.RecoilOffset = 0
}

// startReload begins a reload if there is anything to load. While
// reloading the weapon cannot fire.
func (e *Engine) startReload(p *Player) {
	w := p.CurrentWeapon()
	if p.Reloading || w.Kind == KindMelee {
		return
	}
	if p.Reserve <= 0 || p.Ammo >= w.MagSize {
		return
	}
	p.Reloading = true
	p.ReloadTimer = w.ReloadTime
}

// finishReload moves rounds from reserve into the magazine. Total
// carried ammo never changes here.
func (p *Player) finishReload() {
	w := p.CurrentWeapon()
	need := w.MagSize - p.Ammo
	if need > p.Reserve {
		need = p.Reserve
	}
	p.Ammo += need
	p.Reserve -= need
	p.Reloading = false
	p.ReloadTimer = 0
}

func (p *Player) useBandage() {
	if p.Bandages <= 0 || p.Health >= p.MaxHealth {
		return
	}
	p.Bandages--
	p.Health = math.Min(p.Health+bandageHeal, p.MaxHealth)
}

func (p *Player) useMedkit() {
	if p.Medkits <= 0 || p.Health >= p.MaxHealth {
		return
	}
	p.Medkits--
	p.Health = math.Min(p.Health+medkitHeal, p.MaxHealth)
}

// useAbility dispatches the class ability if it is off cooldown
func (e *Engine) useAbility(p *Player) {
	if p.AbilityTimer > 0 {
		return
	}

	switch p.Class {
	case ClassBuilder:
		if !e.buildWall(p) {
			return // at wall cap, don't burn the cooldown
		}
	case ClassRanger:
		p.SpeedBoostTimer = 5
	case ClassHealer:
		e.placeHealZone(p)
	case ClassTank:
		e.groundSlam(p)
	case ClassTraitor:
		e.traitorSummon(p)
	}

	p.AbilityTimer = p.AbilityCooldown
}

// buildWall drops a wall one body-length ahead of the builder,
// oriented across the aim direction. Caps at maxWallsPerBuilder
// active walls per builder.
func (e *Engine) buildWall(p *Player) bool {
	owned := 0
	for _, w := range e.walls {
		if w.OwnerID == p.ID {
			owned++
		}
	}
	if owned >= maxWallsPerBuilder || len(e.walls) >= e.limits.MaxWalls {
		return false
	}

	x := p.X + math.Cos(p.Aim)*100
	y := p.Y + math.Sin(p.Aim)*100
	e.clampToWorld(&x, &y)

	// Wall runs perpendicular to aim so it actually blocks the lane
	horizontal := math.Abs(math.Sin(p.Aim)) > math.Abs(math.Cos(p.Aim))
	e.walls = append(e.walls, newWall(e.nextEntityID(), x, y, horizontal, p.ID, e.balance.WallHealth))
	return true
}

func (e *Engine) placeHealZone(p *Player) {
	if len(e.healZones) >= e.limits.MaxZones {
		return
	}
	e.healZones = append(e.healZones, &HealZone{
		X: p.X, Y: p.Y,
		Radius:   healZoneRadius,
		TimeLeft: healZoneDuration,
		HealRate: healZoneRate,
	})
}

// groundSlam damages and shoves every zombie around the tank
func (e *Engine) groundSlam(p *Player) {
	const slamDamage = 100.0
	const slamRadius = 150.0
	for _, z := range e.zombies {
		if z.Health <= 0 {
			continue
		}
		d := dist(p.X, p.Y, z.X, z.Y)
		if d > slamRadius {
			continue
		}
		f := 1 - d/slamRadius
		e.applyKnockback(z, z.X-p.X, z.Y-p.Y, 150*f)
		e.damageZombie(z, slamDamage*f, p, "slam")
	}
	e.spawnBurst(p.X, p.Y, 16, "#90a4ae")
}

// traitorSummon spawns a speed zombie beside the traitor, subject to
// the global zombie ceiling
func (e *Engine) traitorSummon(p *Player) {
	if e.aliveZombieCount() >= e.limits.MaxZombies {
		return
	}
	angle := e.rng.Float64() * 2 * math.Pi
	z := e.newZombieAt(ZombieSpeed, p.X+math.Cos(angle)*80, p.Y+math.Sin(angle)*80, e.waves.Wave, 0)
	e.zombies = append(e.zombies, z)
	log.Printf("🐍 %s summoned a speed zombie", p.Name)
}
