package game

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Engine owns the world and runs the authoritative tick loop. All
// entity collections are owned here: behavior code mutates entities
// but appends/removals go through engine methods only.
type Engine struct {
	mu        sync.RWMutex
	players   []*Player
	zombies   []*Zombie
	bullets   []*Bullet
	walls     []*Wall
	healZones []*HealZone
	pickups   []*Pickup
	particles []*Particle
	bunker    *Bunker

	waves   *WaveDirector
	balance *Balance

	worldWidth  float64
	worldHeight float64

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	score      int
	totalKills int
	tickCount  int64
	gameOver   bool

	nextPlayerID int
	entitySeq    int64

	// Event callbacks, fired off-goroutine so slow consumers can't
	// stall the tick
	OnKill         func(killer *Player, z *Zombie) // killer may be nil
	OnWave         func(wave int)
	OnGameOver     func(score, kills, wave int)
	OnCoins        func(p *Player, amount int)
	OnWeaponUnlock func(p *Player, weaponKey string)

	limits       ResourceLimits
	snapshotPool *SnapshotPool
	eventLog     *EventLog

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	tickObserver func(time.Duration)

	// Test-mode switches
	unlimitedAmmo bool
	invincible    bool
}

// NewEngine creates an engine with the given tick rate and balance.
// A nil balance means compiled-in defaults.
func NewEngine(tickRate int, balance *Balance) *Engine {
	if balance == nil {
		balance = DefaultBalance()
	}
	limits := DefaultLimits
	seed := time.Now().UnixNano()

	e := &Engine{
		players:      make([]*Player, 0, limits.MaxPlayers),
		zombies:      make([]*Zombie, 0, limits.MaxZombies),
		bullets:      make([]*Bullet, 0, limits.MaxBullets),
		walls:        make([]*Wall, 0, limits.MaxWalls),
		healZones:    make([]*HealZone, 0, limits.MaxZones),
		pickups:      make([]*Pickup, 0, limits.MaxPickups),
		particles:    make([]*Particle, 0, limits.MaxParticles),
		waves:        NewWaveDirector(),
		balance:      balance,
		worldWidth:   balance.WorldWidth,
		worldHeight:  balance.WorldHeight,
		tickRate:     tickRate,
		stopChan:     make(chan struct{}),
		limits:       limits,
		snapshotPool: NewSnapshotPool(limits),
		eventLog:     NewEventLog(),
		rng:          rand.New(rand.NewSource(seed)),
		rngSeed:      seed,
	}
	e.bunker = &Bunker{
		X: balance.WorldWidth / 2, Y: balance.WorldHeight / 2,
		W: bunkerW, H: bunkerH,
		Health: balance.BunkerHealth, MaxHealth: balance.BunkerHealth,
	}
	return e
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Simulation started at %d TPS (%gx%g world)", e.tickRate, e.worldWidth, e.worldHeight)
}

// Stop stops the game loop
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Simulation stopped")
}

// tick advances the world by one fixed step
func (e *Engine) tick() {
	start := time.Now()

	e.mu.Lock()
	e.tickCount++
	dt := 1.0 / float64(e.tickRate)

	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), "",
		TickPayload{RNGSeed: e.rngSeed, Wave: e.waves.Wave, Zombies: len(e.zombies), DeltaTimeNs: int64(dt * 1e9)})

	// Advance RNG seed deterministically for replay
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	if !e.gameOver {
		e.waves.Update(e, dt)
		e.updateZombies(dt)
		e.updateBullets(dt)
		e.updateWalls()
		e.updateHealZones(dt)
		e.updateParticles(dt)
		e.updatePlayers(dt)
		e.updatePickups(dt)
		e.checkGameOver()
	} else {
		e.updateParticles(dt)
	}

	e.ProduceSnapshot()
	e.mu.Unlock()

	if e.tickObserver != nil {
		e.tickObserver(time.Since(start))
	}
}

// checkGameOver ends the run when the bunker falls or the last
// non-traitor player dies
func (e *Engine) checkGameOver() {
	if e.gameOver {
		return
	}

	bunkerDown := e.bunker.Health <= 0
	anyAlive := false
	anyPlayers := false
	for _, p := range e.players {
		if p.IsTraitor {
			continue
		}
		anyPlayers = true
		if !p.Dead {
			anyAlive = true
			break
		}
	}

	if !bunkerDown && (anyAlive || !anyPlayers) {
		return
	}

	e.gameOver = true
	reason := "players_dead"
	if bunkerDown {
		reason = "bunker_destroyed"
	}
	log.Printf("☠️ Game over (%s): wave %d, score %d, kills %d", reason, e.waves.Wave, e.score, e.totalKills)
	e.eventLog.EmitSimple(EventTypeGameOver, uint64(e.tickCount), "",
		GameOverPayload{Reason: reason, Wave: e.waves.Wave, Score: e.score, Kills: e.totalKills})

	if e.OnGameOver != nil {
		go e.OnGameOver(e.score, e.totalKills, e.waves.Wave)
	}
}

// AddPlayer joins a new player near the bunker. Rejoining an existing
// name returns the existing player untouched.
func (e *Engine) AddPlayer(name, className string) *Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.players {
		if p.Name == name {
			return p
		}
	}
	if len(e.players) >= e.limits.MaxPlayers {
		log.Printf("⚠️ Player limit reached (%d), rejecting: %s", e.limits.MaxPlayers, name)
		return nil
	}

	e.nextPlayerID++
	p := &Player{
		ID:   e.nextPlayerID,
		Name: name,
	}
	classLoadout(p, ParseClass(className))
	p.Health = p.MaxHealth
	p.Intent.SwitchTo = -1

	angle := e.rng.Float64() * 2 * math.Pi
	p.X = e.bunker.X + math.Cos(angle)*(bunkerW/2+60)
	p.Y = e.bunker.Y + math.Sin(angle)*(bunkerH/2+60)

	e.players = append(e.players, p)
	log.Printf("👤 %s joined as %s", name, p.Class)
	e.eventLog.EmitSimple(EventTypePlayerJoin, uint64(e.tickCount), name,
		PlayerJoinPayload{Player: name, Class: p.Class.String(), X: p.X, Y: p.Y})
	return p
}

// SetIntent replaces a player's input for the coming ticks. Unknown
// names are a no-op.
func (e *Engine) SetIntent(name string, in Intent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.players {
		if p.Name != name {
			continue
		}
		if p.Dead {
			return false
		}
		p.Intent = in
		return true
	}
	return false
}

// PlayerIntent returns a copy of a player's current input frame
func (e *Engine) PlayerIntent(name string) (Intent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.players {
		if p.Name == name {
			return p.Intent, true
		}
	}
	return Intent{}, false
}

// ChangeClass swaps a player's class. Only allowed inside the bunker;
// the health ratio carries over so it can't be used as a free heal.
func (e *Engine) ChangeClass(name, className string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.players {
		if p.Name != name {
			continue
		}
		if p.Dead || !e.bunker.Contains(p.X, p.Y) {
			return false
		}
		ratio := p.Health / p.MaxHealth
		classLoadout(p, ParseClass(className))
		p.Health = ratio * p.MaxHealth
		log.Printf("🔄 %s is now a %s", name, p.Class)
		return true
	}
	return false
}

// Reset starts a fresh run: entities cleared, players revived at the
// bunker with their class loadout, score and waves back to zero
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.zombies = e.zombies[:0]
	e.bullets = e.bullets[:0]
	e.walls = e.walls[:0]
	e.healZones = e.healZones[:0]
	e.pickups = e.pickups[:0]
	e.particles = e.particles[:0]
	e.waves = NewWaveDirector()
	e.bunker.Health = e.bunker.MaxHealth
	e.score = 0
	e.totalKills = 0
	e.gameOver = false

	for _, p := range e.players {
		classLoadout(p, p.Class)
		p.Health = p.MaxHealth
		p.Dead = false
		p.Kills = 0
		angle := e.rng.Float64() * 2 * math.Pi
		p.X = e.bunker.X + math.Cos(angle)*(bunkerW/2+60)
		p.Y = e.bunker.Y + math.Sin(angle)*(bunkerH/2+60)
	}
	log.Println("🔁 World reset")
}

// newZombieAt builds a zombie with the next entity ID. Caller appends.
func (e *Engine) newZombieAt(t ZombieType, x, y float64, wave, stage int) *Zombie {
	e.clampToWorld(&x, &y)
	return NewZombie(e.nextEntityID(), t, x, y, wave, stage, e.balance)
}

func (e *Engine) nextEntityID() int64 {
	e.entitySeq++
	return e.entitySeq
}

func (e *Engine) clampToWorld(x, y *float64) {
	*x = math.Max(0, math.Min(*x, e.worldWidth))
	*y = math.Max(0, math.Min(*y, e.worldHeight))
}

// SetTestMode toggles the debug switches used by balance testing
func (e *Engine) SetTestMode(unlimitedAmmo, invincible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unlimitedAmmo = unlimitedAmmo
	e.invincible = invincible
}

// SetTickObserver installs a hook that receives each tick's wall
// duration (metrics wiring)
func (e *Engine) SetTickObserver(fn func(time.Duration)) {
	e.tickObserver = fn
}

// GetSnapshot returns the latest immutable snapshot for lock-free reads
func (e *Engine) GetSnapshot() *WorldSnapshot {
	return e.snapshotPool.AcquireRead()
}

// Score returns the shared run score
func (e *Engine) Score() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.score
}

// TotalKills returns kills across the whole run
func (e *Engine) TotalKills() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalKills
}

// GameOver reports whether the run has ended
func (e *Engine) GameOver() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gameOver
}

// Wave returns the current wave number
func (e *Engine) Wave() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.waves.Wave
}

// StartEventLog initializes event logging to the given JSONL path
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog flushes and stops event logging
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log counters for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// GetLimits returns the engine's resource limits
func (e *Engine) GetLimits() ResourceLimits {
	return e.limits
}
