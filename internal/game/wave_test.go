package game

import (
	"math"
	"testing"
)

// TestWaveBudgetAndPacing verifies spawn counts grow and intervals
// shrink down to the floor
func TestWaveBudgetAndPacing(t *testing.T) {
	e := testEngine()
	w := e.waves

	w.startWave(e)
	if w.Wave != 1 {
		t.Fatalf("expected wave 1, got %d", w.Wave)
	}
	if want := e.balance.WaveBaseCount + e.balance.WavePerWaveCount; w.ToSpawn != want {
		t.Errorf("wave 1 budget %d, expected %d", w.ToSpawn, want)
	}
	if math.Abs(w.SpawnInterval-1.9) > 1e-9 {
		t.Errorf("wave 1 interval %.2f, expected 1.90", w.SpawnInterval)
	}

	w.Wave = 49
	w.startWave(e)
	if w.SpawnInterval != e.balance.SpawnIntervalMin {
		t.Errorf("late-wave interval %.2f not clamped to %.2f", w.SpawnInterval, e.balance.SpawnIntervalMin)
	}
}

// TestWaveCompletionRequiresClearField verifies a wave ends only when
// the budget is spent AND no zombie is alive
func TestWaveCompletionRequiresClearField(t *testing.T) {
	e := testEngine()
	w := e.waves

	w.startWave(e)
	w.ToSpawn = 0
	z := addTestZombie(e, ZombieNormal, 100, 100, 1)

	w.Update(e, 1.0/30.0)
	if w.State != WaveActive {
		t.Fatal("wave completed with a live zombie on the field")
	}

	z.Health = 0
	e.reapZombies()
	w.Update(e, 1.0/30.0)
	if w.State != WaveWaiting {
		t.Fatal("wave did not complete on a clear field")
	}
	if w.Cooldown != waveCooldown {
		t.Errorf("cooldown %.1f, expected %.1f", w.Cooldown, waveCooldown)
	}
}

// TestBunkerRestoredEachWave verifies survivors get a fresh bunker
func TestBunkerRestoredEachWave(t *testing.T) {
	e := testEngine()
	e.bunker.Health = 1

	e.waves.startWave(e)
	if e.bunker.Health != e.bunker.MaxHealth {
		t.Errorf("bunker at %.0f after wave start", e.bunker.Health)
	}
}

// countBosses tallies boss-type zombies currently in the world
func countBosses(e *Engine) (kings, mothers, cages int) {
	for _, z := range e.zombies {
		switch z.Type {
		case ZombieKing:
			kings++
		case ZombieHordeMother:
			mothers++
		case ZombieCageWalker:
			cages++
		}
	}
	return
}

// TestBossCycles verifies the three boss schedules run independently:
// every cycle that lands on a wave fires, so overlap waves spawn
// several bosses at once
func TestBossCycles(t *testing.T) {
	tests := []struct {
		wave                  int
		kings, mothers, cages int
	}{
		{7, 1, 0, 0},   // king cycle
		{8, 0, 1, 0},   // mother cycle
		{5, 0, 0, 1},   // cage cycle
		{40, 0, 1, 1},  // 40 is %8 and %5: both fire
		{56, 1, 1, 0},  // 56 is %7 and %8: both fire
		{35, 1, 0, 1},  // 35 is %7 and %5: both fire
		{6, 0, 0, 0},   // off-cycle wave
		{280, 0, 1, 1}, // all three cycles, but the king is retired
	}

	for _, tt := range tests {
		e := testEngine()
		e.waves.Wave = tt.wave - 1
		e.waves.startWave(e)

		k, m, c := countBosses(e)
		if k != tt.kings || m != tt.mothers || c != tt.cages {
			t.Errorf("wave %d: bosses k=%d m=%d c=%d, expected k=%d m=%d c=%d",
				tt.wave, k, m, c, tt.kings, tt.mothers, tt.cages)
		}
	}
}

// TestKingStageEscalation verifies each king spawn is one stage
// stronger and a live king blocks the next spawn
func TestKingStageEscalation(t *testing.T) {
	e := testEngine()
	w := e.waves

	w.Wave = 6
	w.startWave(e)
	if w.KingStage != 1 {
		t.Fatalf("first king at stage %d", w.KingStage)
	}
	var king *Zombie
	for _, z := range e.zombies {
		if z.Type == ZombieKing {
			king = z
		}
	}
	if king == nil {
		t.Fatal("no king on wave 7")
	}

	// Next king cycle with the first still alive: no second king
	w.Wave = 13
	w.startWave(e)
	if k, _, _ := countBosses(e); k != 1 {
		t.Fatal("second king spawned while the first lives")
	}

	// Kill the king; stage advances on the next cycle
	king.Health = 0
	e.reapZombies()
	w.Wave = 20
	w.startWave(e)
	if w.KingStage != 2 {
		t.Errorf("expected stage 2, got %d", w.KingStage)
	}

	k2 := e.zombies[len(e.zombies)-1]
	if k2.Type != ZombieKing || k2.Stage != 2 {
		t.Fatalf("latest spawn is not a stage-2 king")
	}
	if k2.Damage != 150 {
		t.Errorf("stage-2 king damage %.0f, expected 150", k2.Damage)
	}
}

// TestKingRetirement verifies no kings spawn past the retirement wave
func TestKingRetirement(t *testing.T) {
	e := testEngine()
	w := e.waves

	w.Wave = 76 // next wave 77 is %7
	w.startWave(e)
	if !w.KingRetired {
		t.Fatal("king not retired past wave 70")
	}
	if k, _, _ := countBosses(e); k != 0 {
		t.Error("king spawned after retirement")
	}
}

// TestRollSpawnTypeUnlocks verifies the pool respects minimum waves
func TestRollSpawnTypeUnlocks(t *testing.T) {
	// Wave 1: only normals exist
	for _, roll := range []float64{0, 0.5, 0.999} {
		if got := rollSpawnType(1, roll); got != ZombieNormal {
			t.Errorf("wave 1 roll %.3f spawned %s", roll, got)
		}
	}

	// Wave 3 pool ends with the speed zombie
	if got := rollSpawnType(3, 0.999); got != ZombieSpeed {
		t.Errorf("wave 3 top roll spawned %s, expected speed", got)
	}

	// Necromancers stay locked before wave 8
	for wave := 1; wave < 8; wave++ {
		for _, roll := range []float64{0, 0.3, 0.6, 0.999} {
			if got := rollSpawnType(wave, roll); got == ZombieNecromancer {
				t.Fatalf("necromancer unlocked at wave %d", wave)
			}
		}
	}
	if got := rollSpawnType(100, 0.9999); got != ZombieNecromancer {
		t.Errorf("late-wave top roll spawned %s, expected necromancer", got)
	}
}

// TestSpawnRespectsCeiling verifies the director pauses spawning at
// the global zombie limit instead of dropping budget
func TestSpawnRespectsCeiling(t *testing.T) {
	e := testEngine()
	w := e.waves
	w.startWave(e)
	budget := w.ToSpawn

	for i := 0; i < e.limits.MaxZombies; i++ {
		addTestZombie(e, ZombieNormal, 100, 100, 1)
	}
	w.SpawnTimer = 0
	w.Update(e, 1.0/30.0)

	if len(e.zombies) != e.limits.MaxZombies {
		t.Error("spawned past the zombie ceiling")
	}
	if w.ToSpawn != budget {
		t.Error("budget burned while at the ceiling")
	}
}

// TestBoundaryPointOnEdge verifies spawns land exactly on a world edge
func TestBoundaryPointOnEdge(t *testing.T) {
	e := testEngine()
	for i := 0; i < 100; i++ {
		x, y := e.boundaryPoint()
		onEdge := x == 0 || y == 0 || x == e.worldWidth || y == e.worldHeight
		if !onEdge {
			t.Fatalf("spawn point (%g,%g) not on an edge", x, y)
		}
	}
}
