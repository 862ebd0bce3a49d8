package game

import (
	"log"
	"math"
)

// WaveState is the director's phase
type WaveState uint8

const (
	WaveWaiting WaveState = iota // between waves, cooldown running
	WaveActive                   // spawning or waiting for the field to clear
)

const (
	waveCooldown   = 5.0
	kingRetireWave = 70 // no kings past this point, all ten stages done
)

// spawnTable maps wave progression to the regular spawn pool. A type
// enters the pool at minWave and keeps its static weight from then on.
var spawnTable = []struct {
	t       ZombieType
	minWave int
	weight  int
}{
	{ZombieNormal, 1, 40},
	{ZombieRunner, 2, 20},
	{ZombieCrawler, 3, 10},
	{ZombieSpeed, 3, 10},
	{ZombieTank, 4, 8},
	{ZombieRadioactive, 4, 6},
	{ZombieScreamer, 4, 6},
	{ZombieSpitter, 5, 8},
	{ZombieLeaper, 5, 6},
	{ZombieBloater, 6, 5},
	{ZombieNecromancer, 8, 3},
}

// WaveDirector sequences waves: spawn counts, pacing, the regular
// spawn pool, and the three boss cycles
type WaveDirector struct {
	Wave          int
	State         WaveState
	ToSpawn       int
	SpawnInterval float64
	SpawnTimer    float64
	Cooldown      float64

	KingStage   int
	KingRetired bool
	kingAlive   bool
}

// NewWaveDirector starts before wave 1 with the standard cooldown
func NewWaveDirector() *WaveDirector {
	return &WaveDirector{
		State:    WaveWaiting,
		Cooldown: waveCooldown,
	}
}

// Update advances the director by one tick
func (w *WaveDirector) Update(e *Engine, dt float64) {
	switch w.State {
	case WaveWaiting:
		w.Cooldown -= dt
		if w.Cooldown <= 0 {
			w.startWave(e)
		}

	case WaveActive:
		if w.ToSpawn > 0 {
			w.SpawnTimer -= dt
			if w.SpawnTimer <= 0 && e.aliveZombieCount() < e.limits.MaxZombies {
				w.SpawnTimer = w.SpawnInterval
				e.spawnWaveZombie(w.Wave)
				w.ToSpawn--
			}
			return
		}
		// Everything spawned: the wave ends only when the field is clear
		if e.aliveZombieCount() == 0 {
			w.complete(e)
		}
	}
}

// startWave opens the next wave: budget, pacing, bunker repair, and
// every boss whose cycle lands on this wave. The cycles run
// independently, so overlap waves can spawn several bosses at once.
func (w *WaveDirector) startWave(e *Engine) {
	w.Wave++
	w.State = WaveActive
	w.ToSpawn = e.balance.WaveBaseCount + w.Wave*e.balance.WavePerWaveCount
	w.SpawnInterval = math.Max(e.balance.SpawnIntervalMin,
		e.balance.SpawnIntervalBase-float64(w.Wave)*e.balance.SpawnIntervalStep)
	w.SpawnTimer = 0

	// Survivors get a fresh bunker every wave
	e.bunker.Health = e.bunker.MaxHealth

	if w.Wave > kingRetireWave {
		w.KingRetired = true
	}

	if w.Wave%7 == 0 && !w.KingRetired && !w.kingAlive {
		w.KingStage++
		w.kingAlive = true
		e.spawnBoss(ZombieKing, w.Wave, w.KingStage)
	}
	if w.Wave%8 == 0 {
		e.spawnBoss(ZombieHordeMother, w.Wave, 0)
	}
	if w.Wave%5 == 0 {
		e.spawnBoss(ZombieCageWalker, w.Wave, 0)
	}

	log.Printf("🌊 Wave %d: %d zombies, interval %.1fs", w.Wave, w.ToSpawn, w.SpawnInterval)
	e.eventLog.EmitSimple(EventTypeWaveStart, uint64(e.tickCount), "",
		WavePayload{Wave: w.Wave, ToSpawn: w.ToSpawn})

	if e.OnWave != nil {
		go e.OnWave(w.Wave)
	}
}

// complete closes the wave and starts the breather
func (w *WaveDirector) complete(e *Engine) {
	w.State = WaveWaiting
	w.Cooldown = waveCooldown

	log.Printf("✅ Wave %d cleared (score %d)", w.Wave, e.score)
	e.eventLog.EmitSimple(EventTypeWaveComplete, uint64(e.tickCount), "",
		WavePayload{Wave: w.Wave, Score: e.score})
}

// bossDied lets the director track the single live king
func (w *WaveDirector) bossDied(z *Zombie) {
	if z.Type == ZombieKing {
		w.kingAlive = false
	}
}

// rollSpawnType picks a type from the pool unlocked at this wave.
// roll must be in [0, 1).
func rollSpawnType(wave int, roll float64) ZombieType {
	total := 0
	for _, s := range spawnTable {
		if wave >= s.minWave {
			total += s.weight
		}
	}
	target := int(roll * float64(total))
	for _, s := range spawnTable {
		if wave < s.minWave {
			continue
		}
		target -= s.weight
		if target < 0 {
			return s.t
		}
	}
	return ZombieNormal
}

// spawnWaveZombie adds one regular zombie at the world boundary
func (e *Engine) spawnWaveZombie(wave int) {
	t := rollSpawnType(wave, e.rng.Float64())
	x, y := e.boundaryPoint()
	z := e.newZombieAt(t, x, y, wave, 0)
	e.zombies = append(e.zombies, z)

	e.eventLog.EmitSimple(EventTypeZombieSpawn, uint64(e.tickCount), t.String(),
		ZombiePayload{ZombieID: z.ID, Type: t.String(), X: x, Y: y})
}

// spawnBoss adds a boss at the boundary regardless of pacing
func (e *Engine) spawnBoss(t ZombieType, wave, stage int) {
	x, y := e.boundaryPoint()
	z := e.newZombieAt(t, x, y, wave, stage)
	e.zombies = append(e.zombies, z)

	log.Printf("👑 Boss incoming: %s (wave %d)", t, wave)
	e.eventLog.EmitSimple(EventTypeBossSpawn, uint64(e.tickCount), t.String(),
		ZombiePayload{ZombieID: z.ID, Type: t.String(), X: x, Y: y, Stage: stage})
}

// boundaryPoint picks a random spot on one of the four world edges
func (e *Engine) boundaryPoint() (float64, float64) {
	switch e.rng.Intn(4) {
	case 0:
		return e.rng.Float64() * e.worldWidth, 0
	case 1:
		return e.rng.Float64() * e.worldWidth, e.worldHeight
	case 2:
		return 0, e.rng.Float64() * e.worldHeight
	default:
		return e.worldWidth, e.rng.Float64() * e.worldHeight
	}
}
