package game

import (
	"math"
	"testing"
)

// TestZombieWaveScaling verifies stats grow linearly with the wave
func TestZombieWaveScaling(t *testing.T) {
	e := testEngine()
	z1 := e.newZombieAt(ZombieNormal, 0, 0, 1, 0)
	z10 := e.newZombieAt(ZombieNormal, 0, 0, 10, 0)

	s := e.balance.Tuning(ZombieNormal)
	if want := s.Health + s.HealthPerWave*10; z10.MaxHealth != want {
		t.Errorf("wave 10 health %.0f, expected %.0f", z10.MaxHealth, want)
	}
	if z10.MaxHealth <= z1.MaxHealth || z10.Speed <= z1.Speed || z10.Damage <= z1.Damage {
		t.Error("wave scaling not monotonic")
	}
}

// TestKingStageScaling verifies king stats scale with stage, not wave
func TestKingStageScaling(t *testing.T) {
	e := testEngine()
	k := e.newZombieAt(ZombieKing, 0, 0, 14, 2)

	s := e.balance.Tuning(ZombieKing)
	if want := s.Health*2 + s.HealthPerWave*14; k.MaxHealth != want {
		t.Errorf("stage-2 king health %.0f, expected %.0f", k.MaxHealth, want)
	}
	if k.Damage != s.Damage*2 {
		t.Errorf("stage-2 king damage %.0f, expected %.0f", k.Damage, s.Damage*2)
	}
	if k.Radius != s.Radius+10 {
		t.Errorf("stage-2 king radius %.0f, expected %.0f", k.Radius, s.Radius+10)
	}
}

// TestTargetingPrecedence verifies the target selection order:
// commanded bunker > nearby player > bunker fallback
func TestTargetingPrecedence(t *testing.T) {
	e := testEngine()
	p := addTestPlayer(e, "tp", "ranger", 1000, 1000)
	z := addTestZombie(e, ZombieNormal, 1200, 1000, 1)

	// Player within reach: chase the player
	tx, ty := e.zombieTarget(z)
	if tx != p.X || ty != p.Y {
		t.Errorf("target (%g,%g), expected player at (%g,%g)", tx, ty, p.X, p.Y)
	}

	// Player too far: fall back to the bunker
	p.X, p.Y = 4800, 4800
	tx, ty = e.zombieTarget(z)
	if tx != e.bunker.X || ty != e.bunker.Y {
		t.Errorf("target (%g,%g), expected bunker", tx, ty)
	}

	// Commanded: bunker even with a player next door
	p.X, p.Y = 1210, 1000
	z.TargetBunker = true
	tx, ty = e.zombieTarget(z)
	if tx != e.bunker.X || ty != e.bunker.Y {
		t.Errorf("commanded zombie ignored the bunker")
	}
}

// TestWallBlocksPath verifies a wall between zombie and target becomes
// the target itself
func TestWallBlocksPath(t *testing.T) {
	e := testEngine()
	addTestPlayer(e, "wb", "ranger", 1300, 1000)
	z := addTestZombie(e, ZombieNormal, 1000, 1000, 1)
	w := newWall(e.nextEntityID(), 1100, 1000, false, 0, 1000)
	e.walls = append(e.walls, w)

	tx, ty := e.zombieTarget(z)
	if tx != w.X || ty != w.Y {
		t.Errorf("zombie target (%g,%g), expected the wall", tx, ty)
	}
}

// TestDeadAndTraitorPlayersIgnored verifies zombies never chase
// corpses or traitors
func TestDeadAndTraitorPlayersIgnored(t *testing.T) {
	e := testEngine()
	d := addTestPlayer(e, "dd", "ranger", 1100, 1000)
	d.Dead = true
	addTestPlayer(e, "tt", "traitor", 1150, 1000)

	if p := e.nearestLivePlayer(1000, 1000); p != nil {
		t.Errorf("picked %s as a target", p.Name)
	}
}

// TestKnockbackDecayFramerateIndependent verifies knockback velocity
// after one simulated second matches across tick rates
func TestKnockbackDecayFramerateIndependent(t *testing.T) {
	run := func(dt float64, steps int) float64 {
		e := testEngine()
		z := addTestZombie(e, ZombieNormal, 2500, 2500, 1)
		z.Speed = 0
		z.KnockbackVX = 100
		for i := 0; i < steps; i++ {
			e.moveZombie(z, dt)
		}
		return z.KnockbackVX
	}

	coarse := run(1.0/30.0, 30)
	fine := run(1.0/240.0, 240)
	if math.Abs(coarse-fine) > 1e-6 {
		t.Errorf("decay differs across tick rates: %.6f vs %.6f", coarse, fine)
	}
	if want := 100 * math.Pow(0.9, 60); math.Abs(coarse-want) > 1e-6 {
		t.Errorf("decay after 1s = %.6f, expected %.6f", coarse, want)
	}
}

// TestFreezeHalvesSpeed verifies the freeze status effect
func TestFreezeHalvesSpeed(t *testing.T) {
	e := testEngine()
	z := addTestZombie(e, ZombieNormal, 100, 100, 1)

	base := z.EffectiveSpeed()
	z.FreezeTimer = 1
	if z.EffectiveSpeed() != base*freezeFactor {
		t.Errorf("frozen speed %.1f, expected %.1f", z.EffectiveSpeed(), base*freezeFactor)
	}
}

// TestBurnTicksKill verifies burn damage can finish a zombie and the
// kill is still scored
func TestBurnTicksKill(t *testing.T) {
	e := testEngine()
	z := addTestZombie(e, ZombieNormal, 100, 100, 1)
	z.Health = 1
	z.BurnTimer = burnDuration

	e.tickStatusEffects(z, 1.0)
	if z.Health > 0 && e.totalKills != 1 {
		t.Error("burn tick did not kill")
	}
	if e.totalKills != 1 {
		t.Errorf("burn kill not scored: %d kills", e.totalKills)
	}
}

// TestScreamBuff verifies the scream permanently buffs nearby zombies
// exactly once
func TestScreamBuff(t *testing.T) {
	e := testEngine()
	addTestPlayer(e, "sb", "ranger", 1100, 1000)
	s := addTestZombie(e, ZombieScreamer, 1000, 1000, 1)
	near := addTestZombie(e, ZombieNormal, 1100, 1050, 1)
	far := addTestZombie(e, ZombieNormal, 2000, 2000, 1)
	base := near.Speed

	e.runSpecial(s, 1.0/30.0)
	if !s.Buffed || !near.Buffed {
		t.Fatal("scream did not fire")
	}
	if math.Abs(near.Speed-base*screamSpeedFactor) > 1e-9 {
		t.Errorf("buffed speed %.1f, expected %.1f", near.Speed, base*screamSpeedFactor)
	}
	if far.Buffed {
		t.Error("scream reached beyond its radius")
	}

	// A second scream must not stack
	e.runSpecial(s, 1.0/30.0)
	if math.Abs(near.Speed-base*screamSpeedFactor) > 1e-9 {
		t.Error("scream buff stacked")
	}
}

// TestScreamOverridesCommand verifies a scream pulls commanded
// zombies off the bunker and back onto players
func TestScreamOverridesCommand(t *testing.T) {
	e := testEngine()
	s := addTestZombie(e, ZombieScreamer, 1000, 1000, 4)
	z := addTestZombie(e, ZombieNormal, 1100, 1000, 4)
	z.TargetBunker = true

	e.scream(s)
	if z.TargetBunker {
		t.Error("screamed zombie still locked onto the bunker")
	}
	if !z.Buffed {
		t.Error("screamed zombie missed the speed buff")
	}
}

// TestCommandPulse verifies the cage walker redirects regular zombies
// but never other bosses
func TestCommandPulse(t *testing.T) {
	e := testEngine()
	c := addTestZombie(e, ZombieCageWalker, 1000, 1000, 5)
	n := addTestZombie(e, ZombieNormal, 1200, 1000, 5)
	k := addTestZombie(e, ZombieKing, 1400, 1000, 7)

	e.commandPulse(c)
	if !n.TargetBunker {
		t.Error("regular zombie not commanded")
	}
	if k.TargetBunker {
		t.Error("boss accepted a command")
	}
}

// TestNecromancerCeiling verifies summons stop at the global limit
func TestNecromancerCeiling(t *testing.T) {
	e := testEngine()
	n := addTestZombie(e, ZombieNecromancer, 1000, 1000, 8)

	e.summonMinion(n)
	if len(e.zombies) != 2 {
		t.Fatalf("expected a minion, got %d zombies", len(e.zombies))
	}
	minion := e.zombies[1]
	if minion.Health != minion.MaxHealth/2 {
		t.Error("minion not raised at half health")
	}

	for len(e.zombies) < e.limits.MaxZombies {
		addTestZombie(e, ZombieNormal, 100, 100, 1)
	}
	e.summonMinion(n)
	if len(e.zombies) != e.limits.MaxZombies {
		t.Error("summon exceeded the ceiling")
	}
}

// TestBroodCap verifies the horde mother keeps at most broodMaxAlive
// children and replaces dead ones
func TestBroodCap(t *testing.T) {
	e := testEngine()
	m := addTestZombie(e, ZombieHordeMother, 1000, 1000, 8)

	for i := 0; i < broodMaxAlive+3; i++ {
		e.spawnBroodChild(m)
	}
	if len(m.brood) != broodMaxAlive {
		t.Fatalf("brood size %d, expected %d", len(m.brood), broodMaxAlive)
	}

	m.brood[0].Health = 0
	e.spawnBroodChild(m)
	if len(m.brood) != broodMaxAlive {
		t.Errorf("dead child not replaced: brood %d", len(m.brood))
	}
}

// TestBloaterBlastOnDeath verifies the death burst damages players
// with falloff
func TestBloaterBlastOnDeath(t *testing.T) {
	e := testEngine()
	near := addTestPlayer(e, "nr", "tank", 1050, 1000)
	far := addTestPlayer(e, "fr", "tank", 3000, 3000)
	b := addTestZombie(e, ZombieBloater, 1000, 1000, 6)

	b.Health = 0
	e.reapZombies()

	if near.Health == near.MaxHealth {
		t.Error("player in blast radius unhurt")
	}
	if far.Health != far.MaxHealth {
		t.Error("player outside blast radius damaged")
	}
}

// TestLeaperStateMachine verifies the leap triggers in its distance
// band and lands at the sampled point
func TestLeaperStateMachine(t *testing.T) {
	e := testEngine()
	p := addTestPlayer(e, "lp", "ranger", 1150, 1000)
	z := addTestZombie(e, ZombieLeaper, 1000, 1000, 5)
	z.LeapTimer = 0

	e.runLeaper(z, 1.0/30.0)
	if !z.Leaping {
		t.Fatal("leap did not trigger inside the band")
	}
	if z.LeapDestX != p.X || z.LeapDestY != p.Y {
		t.Error("landing point not sampled at trigger time")
	}

	// Target moves mid-air; the landing point must not follow
	p.X = 2000
	dest := z.LeapDestX
	for i := 0; i < 60 && z.Leaping; i++ {
		e.runLeaper(z, 1.0/30.0)
	}
	if z.Leaping {
		t.Fatal("leap never landed")
	}
	if z.LeapDestX != dest {
		t.Error("landing point drifted mid-air")
	}
	if z.LeapTimer != leapCooldown {
		t.Error("leap cooldown not armed on landing")
	}
}

// TestZombieAttackPriority verifies walls are hit before players and
// the bunker, with one shared cooldown
func TestZombieAttackPriority(t *testing.T) {
	e := testEngine()
	p := addTestPlayer(e, "ap", "ranger", 1010, 1000)
	z := addTestZombie(e, ZombieNormal, 1000, 1000, 1)
	w := newWall(e.nextEntityID(), 1020, 1000, false, 0, 1000)
	e.walls = append(e.walls, w)

	e.zombieAttacks(z, 1.0/30.0)
	if w.Health == w.MaxHealth {
		t.Fatal("wall in range not attacked")
	}
	if p.Health != p.MaxHealth {
		t.Error("player hit in the same swing as the wall")
	}
	if z.AttackTimer <= 0 {
		t.Error("attack cooldown not armed")
	}

	// Cooldown blocks the next swing
	hp := w.Health
	e.zombieAttacks(z, 1.0/30.0)
	if w.Health != hp {
		t.Error("attack landed during cooldown")
	}
}

// TestWallDamageFactor verifies zombies chew walls at double damage
func TestWallDamageFactor(t *testing.T) {
	e := testEngine()
	z := addTestZombie(e, ZombieNormal, 1000, 1000, 1)
	w := newWall(e.nextEntityID(), 1020, 1000, false, 0, 1000)
	e.walls = append(e.walls, w)

	e.zombieAttacks(z, 1.0/30.0)
	if got := w.MaxHealth - w.Health; got != z.Damage*zombieWallDamageFactor {
		t.Errorf("wall took %.0f, expected %.0f", got, z.Damage*zombieWallDamageFactor)
	}
}
