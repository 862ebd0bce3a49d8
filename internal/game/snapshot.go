package game

import (
	"sync/atomic"
	"time"
)

// ResourceLimits defines hard caps on every entity collection. The
// caps bound memory and per-tick work no matter what the wave
// director or players do.
type ResourceLimits struct {
	MaxPlayers   int
	MaxZombies   int // global ceiling, shared by spawner/summoners
	MaxBullets   int
	MaxWalls     int
	MaxZones     int
	MaxPickups   int
	MaxParticles int
}

// DefaultLimits provides production-safe default limits
var DefaultLimits = ResourceLimits{
	MaxPlayers:   8,
	MaxZombies:   50,
	MaxBullets:   512,
	MaxWalls:     64,
	MaxZones:     16,
	MaxPickups:   128,
	MaxParticles: 200,
}

// PlayerSnapshot is an immutable copy of player state for broadcast
type PlayerSnapshot struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Class     string  `json:"class"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Aim       float64 `json:"aim"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Weapon    string  `json:"weapon"`
	Ammo      int     `json:"ammo"`
	Reserve   int     `json:"reserve"`
	Reloading bool    `json:"reloading"`
	Coins     int     `json:"coins"`
	Kills     int     `json:"kills"`
	Dead      bool    `json:"dead"`
	Traitor   bool    `json:"traitor"`
}

// ZombieSnapshot is an immutable zombie copy
type ZombieSnapshot struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Radius    float64 `json:"radius"`
	Stage     int     `json:"stage,omitempty"`
	Frozen    bool    `json:"frozen,omitempty"`
	Burning   bool    `json:"burning,omitempty"`
}

// BulletSnapshot is an immutable projectile copy
type BulletSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Weapon string  `json:"weapon"`
}

// WallSnapshot is an immutable wall copy
type WallSnapshot struct {
	ID     int64   `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Health float64 `json:"health"`
}

// ZoneSnapshot is an immutable heal zone copy
type ZoneSnapshot struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	TimeLeft float64 `json:"timeLeft"`
}

// PickupSnapshot is an immutable pickup copy
type PickupSnapshot struct {
	ID     int64   `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Type   string  `json:"type"`
	Weapon string  `json:"weapon,omitempty"`
}

// ParticleSnapshot is an immutable particle copy
type ParticleSnapshot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Life  float64 `json:"life"`
	Color string  `json:"color"`
}

// BunkerSnapshot is the bunker's broadcast state
type BunkerSnapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
}

// WaveSnapshot is the director's broadcast state
type WaveSnapshot struct {
	Wave      int     `json:"wave"`
	Active    bool    `json:"active"`
	ToSpawn   int     `json:"toSpawn"`
	Cooldown  float64 `json:"cooldown"`
	KingStage int     `json:"kingStage"`
}

// WorldSnapshot is a complete immutable world state. All slices are
// pre-allocated and capped; readers never see a partially written
// snapshot.
type WorldSnapshot struct {
	Sequence   uint64    `json:"sequence"`
	Timestamp  time.Time `json:"timestamp"`
	TickNumber uint64    `json:"tick"`
	RNGSeed    int64     `json:"-"`

	Players   []PlayerSnapshot   `json:"players"`
	Zombies   []ZombieSnapshot   `json:"zombies"`
	Bullets   []BulletSnapshot   `json:"bullets"`
	Walls     []WallSnapshot     `json:"walls"`
	Zones     []ZoneSnapshot     `json:"zones"`
	Pickups   []PickupSnapshot   `json:"pickups"`
	Particles []ParticleSnapshot `json:"particles"`
	Bunker    BunkerSnapshot     `json:"bunker"`
	Wave      WaveSnapshot       `json:"wave"`

	Score      int  `json:"score"`
	TotalKills int  `json:"totalKills"`
	GameOver   bool `json:"gameOver"`
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Triple buffering: the producer always has a free slot while the
// consumer reads the latest published one.
type SnapshotPool struct {
	snapshots [3]WorldSnapshot
	limits    ResourceLimits
	writeIdx  uint32 // atomic
	readIdx   uint32 // atomic
	sequence  uint64 // atomic
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}
	for i := 0; i < 3; i++ {
		pool.snapshots[i] = WorldSnapshot{
			Players:   make([]PlayerSnapshot, 0, limits.MaxPlayers),
			Zombies:   make([]ZombieSnapshot, 0, limits.MaxZombies),
			Bullets:   make([]BulletSnapshot, 0, limits.MaxBullets),
			Walls:     make([]WallSnapshot, 0, limits.MaxWalls),
			Zones:     make([]ZoneSnapshot, 0, limits.MaxZones),
			Pickups:   make([]PickupSnapshot, 0, limits.MaxPickups),
			Particles: make([]ParticleSnapshot, 0, limits.MaxParticles),
		}
	}
	return pool
}

// AcquireWrite gets the next write slot (producer only). Slices are
// reset but keep capacity.
func (p *SnapshotPool) AcquireWrite() *WorldSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Players = snap.Players[:0]
	snap.Zombies = snap.Zombies[:0]
	snap.Bullets = snap.Bullets[:0]
	snap.Walls = snap.Walls[:0]
	snap.Zones = snap.Zones[:0]
	snap.Pickups = snap.Pickups[:0]
	snap.Particles = snap.Particles[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite makes the just-written snapshot visible to readers
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead returns the latest complete snapshot (consumer only)
func (p *SnapshotPool) AcquireRead() *WorldSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// ProduceSnapshot fills the next write slot from current world state.
// Called at the end of each tick, under the engine lock.
func (e *Engine) ProduceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed
	snap.Score = e.score
	snap.TotalKills = e.totalKills
	snap.GameOver = e.gameOver

	for _, p := range e.players {
		if len(snap.Players) >= e.limits.MaxPlayers {
			break
		}
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID: p.ID, Name: p.Name, Class: p.Class.String(),
			X: p.X, Y: p.Y, Aim: p.Aim,
			Health: p.Health, MaxHealth: p.MaxHealth,
			Weapon: p.CurrentWeapon().Key, Ammo: p.Ammo, Reserve: p.Reserve,
			Reloading: p.Reloading, Coins: p.Coins, Kills: p.Kills,
			Dead: p.Dead, Traitor: p.IsTraitor,
		})
	}

	for _, z := range e.zombies {
		if len(snap.Zombies) >= e.limits.MaxZombies {
			break
		}
		snap.Zombies = append(snap.Zombies, ZombieSnapshot{
			ID: z.ID, Type: z.Type.String(),
			X: z.X, Y: z.Y,
			Health: z.Health, MaxHealth: z.MaxHealth, Radius: z.Radius,
			Stage: z.Stage, Frozen: z.FreezeTimer > 0, Burning: z.BurnTimer > 0,
		})
	}

	for _, b := range e.bullets {
		if len(snap.Bullets) >= e.limits.MaxBullets {
			break
		}
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, Weapon: b.WeaponKey,
		})
	}

	for _, w := range e.walls {
		if len(snap.Walls) >= e.limits.MaxWalls {
			break
		}
		snap.Walls = append(snap.Walls, WallSnapshot{
			ID: w.ID, X: w.X, Y: w.Y, W: w.W, H: w.H, Health: w.Health,
		})
	}

	for _, hz := range e.healZones {
		if len(snap.Zones) >= e.limits.MaxZones {
			break
		}
		snap.Zones = append(snap.Zones, ZoneSnapshot{
			X: hz.X, Y: hz.Y, Radius: hz.Radius, TimeLeft: hz.TimeLeft,
		})
	}

	for _, pk := range e.pickups {
		if len(snap.Pickups) >= e.limits.MaxPickups {
			break
		}
		snap.Pickups = append(snap.Pickups, PickupSnapshot{
			ID: pk.ID, X: pk.X, Y: pk.Y, Type: pk.Type.String(), Weapon: pk.WeaponKey,
		})
	}

	for _, pt := range e.particles {
		if len(snap.Particles) >= e.limits.MaxParticles {
			break
		}
		snap.Particles = append(snap.Particles, ParticleSnapshot{
			X: pt.X, Y: pt.Y, Life: pt.Life, Color: pt.Color,
		})
	}

	snap.Bunker = BunkerSnapshot{
		X: e.bunker.X, Y: e.bunker.Y, W: e.bunker.W, H: e.bunker.H,
		Health: e.bunker.Health, MaxHealth: e.bunker.MaxHealth,
	}
	snap.Wave = WaveSnapshot{
		Wave:      e.waves.Wave,
		Active:    e.waves.State == WaveActive,
		ToSpawn:   e.waves.ToSpawn,
		Cooldown:  e.waves.Cooldown,
		KingStage: e.waves.KingStage,
	}

	e.snapshotPool.PublishWrite()
}
