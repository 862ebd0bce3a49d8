package game

// ZombieType identifies a zombie variant. All behavior dispatch is on
// this enum; there are no name tags or string checks anywhere.
type ZombieType uint8

const (
	ZombieNormal ZombieType = iota
	ZombieRunner
	ZombieCrawler
	ZombieSpeed
	ZombieTank
	ZombieSpitter
	ZombieBloater
	ZombieRadioactive
	ZombieScreamer
	ZombieLeaper
	ZombieNecromancer
	ZombieCageWalker
	ZombieKing
	ZombieHordeMother
)

// String returns the stable wire/config name for the type
func (t ZombieType) String() string {
	switch t {
	case ZombieNormal:
		return "normal"
	case ZombieRunner:
		return "runner"
	case ZombieCrawler:
		return "crawler"
	case ZombieSpeed:
		return "speed"
	case ZombieTank:
		return "tank"
	case ZombieSpitter:
		return "spitter"
	case ZombieBloater:
		return "bloater"
	case ZombieRadioactive:
		return "radioactive"
	case ZombieScreamer:
		return "screamer"
	case ZombieLeaper:
		return "leaper"
	case ZombieNecromancer:
		return "necromancer"
	case ZombieCageWalker:
		return "cage_walker"
	case ZombieKing:
		return "king"
	case ZombieHordeMother:
		return "horde_mother"
	default:
		return "unknown"
	}
}

// IsBoss reports whether the type is one of the three boss cycles
func (t ZombieType) IsBoss() bool {
	return t == ZombieCageWalker || t == ZombieKing || t == ZombieHordeMother
}

// ZombieTuning holds the per-type base stats and per-wave scaling.
// The defaults below can be overridden through the balance file.
type ZombieTuning struct {
	Health        float64 `yaml:"health"`
	HealthPerWave float64 `yaml:"healthPerWave"`
	Speed         float64 `yaml:"speed"`
	SpeedPerWave  float64 `yaml:"speedPerWave"`
	Damage        float64 `yaml:"damage"`
	DamagePerWave float64 `yaml:"damagePerWave"`
	Radius        float64 `yaml:"radius"`
	Score         int     `yaml:"score"`
}

// defaultZombieTuning is the built-in stats table, keyed by type name
var defaultZombieTuning = map[string]ZombieTuning{
	"normal":       {Health: 100, HealthPerWave: 15, Speed: 70, SpeedPerWave: 2, Damage: 10, DamagePerWave: 1, Radius: 20, Score: 100},
	"runner":       {Health: 60, HealthPerWave: 10, Speed: 140, SpeedPerWave: 3, Damage: 8, DamagePerWave: 1, Radius: 18, Score: 120},
	"crawler":      {Health: 40, HealthPerWave: 5, Speed: 100, SpeedPerWave: 2, Damage: 6, DamagePerWave: 1, Radius: 14, Score: 80},
	"speed":        {Health: 50, HealthPerWave: 8, Speed: 180, SpeedPerWave: 4, Damage: 8, DamagePerWave: 1, Radius: 16, Score: 130},
	"tank":         {Health: 400, HealthPerWave: 40, Speed: 45, SpeedPerWave: 1, Damage: 25, DamagePerWave: 2, Radius: 32, Score: 300},
	"spitter":      {Health: 120, HealthPerWave: 15, Speed: 80, SpeedPerWave: 2, Damage: 12, DamagePerWave: 1, Radius: 22, Score: 150},
	"bloater":      {Health: 250, HealthPerWave: 25, Speed: 50, SpeedPerWave: 1, Damage: 15, DamagePerWave: 2, Radius: 34, Score: 200},
	"radioactive":  {Health: 180, HealthPerWave: 20, Speed: 70, SpeedPerWave: 2, Damage: 14, DamagePerWave: 2, Radius: 24, Score: 180},
	"screamer":     {Health: 90, HealthPerWave: 10, Speed: 90, SpeedPerWave: 2, Damage: 8, DamagePerWave: 1, Radius: 20, Score: 150},
	"leaper":       {Health: 80, HealthPerWave: 10, Speed: 110, SpeedPerWave: 3, Damage: 14, DamagePerWave: 1, Radius: 18, Score: 160},
	"necromancer":  {Health: 200, HealthPerWave: 20, Speed: 55, SpeedPerWave: 1, Damage: 10, DamagePerWave: 1, Radius: 26, Score: 250},
	"cage_walker":  {Health: 1500, HealthPerWave: 150, Speed: 50, SpeedPerWave: 2, Damage: 30, DamagePerWave: 3, Radius: 40, Score: 1000},
	"king":         {Health: 1000, HealthPerWave: 100, Speed: 60, SpeedPerWave: 0, Damage: 75, DamagePerWave: 0, Radius: 60, Score: 2000},
	"horde_mother": {Health: 800, HealthPerWave: 80, Speed: 40, SpeedPerWave: 1, Damage: 20, DamagePerWave: 2, Radius: 45, Score: 1500},
}

// Special-behavior constants. These are gameplay tuning, not config:
// they define what each variant IS, so they stay compiled in.
const (
	radiationRadius = 100.0
	radiationDPS    = 5.0

	commandPulseInterval = 5.0 // cage walker redirects the horde to the bunker

	kingSlamInterval = 4.0
	kingRoarInterval = 8.0
	kingRoarRadius   = 400.0
	kingRoarForce    = 250.0

	screamTriggerRange = 300.0
	screamRadius       = 250.0
	screamSpeedFactor  = 1.3

	leapRange      = 200.0
	leapSpeed      = 400.0
	leapMinDist    = 60.0
	leapLandRadius = 20.0
	leapCooldown   = 2.5

	summonInterval = 5.0 // necromancer

	broodInterval   = 3.0 // horde mother
	broodMaxAlive   = 8
	broodHealthFrac = 0.6

	bloaterBlastRadius = 120.0
	bloaterBlastDamage = 40.0

	burnDPS        = 4.0
	burnDuration   = 3.0
	freezeDuration = 2.0
	freezeFactor   = 0.5

	chainRange      = 150.0
	chainDamageFrac = 0.5
)

// NewZombie builds a zombie of the given type scaled to the wave.
// stage only matters for the king and is ignored otherwise.
func NewZombie(id int64, t ZombieType, x, y float64, wave, stage int, b *Balance) *Zombie {
	s := b.Tuning(t)
	w := float64(wave)

	z := &Zombie{
		ID:        id,
		Type:      t,
		X:         x,
		Y:         y,
		MaxHealth: s.Health + s.HealthPerWave*w,
		Speed:     s.Speed + s.SpeedPerWave*w,
		Damage:    s.Damage + s.DamagePerWave*w,
		Radius:    s.Radius,
		Score:     s.Score,
		Wave:      wave,
	}

	if t == ZombieKing {
		st := float64(stage)
		z.Stage = stage
		z.MaxHealth = s.Health*st + s.HealthPerWave*w
		z.Speed = s.Speed + 5*st
		z.Damage = s.Damage * st
		z.Radius = s.Radius + 5*st
	}

	z.Health = z.MaxHealth
	return z
}
