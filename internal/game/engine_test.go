package game

import (
	"testing"
	"time"
)

// TestNewEngine verifies engine creation with correct defaults
func TestNewEngine(t *testing.T) {
	tests := []struct {
		name     string
		tickRate int
	}{
		{"standard 30 TPS", 30},
		{"high 60 TPS", 60},
		{"low 15 TPS", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.tickRate, nil)
			if e == nil {
				t.Fatal("NewEngine returned nil")
			}
			if e.bunker.X != e.worldWidth/2 || e.bunker.Y != e.worldHeight/2 {
				t.Error("bunker not centered")
			}
		})
	}
}

// TestEngineStartStop verifies the loop starts and stops without panics
func TestEngineStartStop(t *testing.T) {
	e := NewEngine(30, nil)

	e.Start()
	time.Sleep(100 * time.Millisecond)

	e.Stop()
	// Double stop must be safe
	e.Stop()
}

// TestAddPlayer verifies join semantics: rejoin returns the existing
// player, the limit rejects extras
func TestAddPlayer(t *testing.T) {
	e := testEngine()

	p1 := e.AddPlayer("Ana", "tank")
	if p1 == nil {
		t.Fatal("AddPlayer returned nil")
	}
	if p1.Class != ClassTank {
		t.Errorf("expected tank, got %s", p1.Class)
	}

	again := e.AddPlayer("Ana", "healer")
	if again != p1 {
		t.Error("rejoin did not return the existing player")
	}
	if again.Class != ClassTank {
		t.Error("rejoin changed the class")
	}

	for i := 0; i < e.limits.MaxPlayers; i++ {
		e.AddPlayer(string(rune('a'+i)), "ranger")
	}
	if p := e.AddPlayer("overflow", "ranger"); p != nil {
		t.Error("player limit not enforced")
	}
}

// TestUnknownClassDefaultsToRanger verifies the soft class fallback
func TestUnknownClassDefaultsToRanger(t *testing.T) {
	e := testEngine()
	p := e.AddPlayer("who", "wizard")
	if p.Class != ClassRanger {
		t.Errorf("expected ranger fallback, got %s", p.Class)
	}
}

// TestSetIntent verifies intent wiring and the dead-player guard
func TestSetIntent(t *testing.T) {
	e := testEngine()
	p := e.AddPlayer("mv", "ranger")

	if !e.SetIntent("mv", Intent{MoveX: 1, SwitchTo: -1}) {
		t.Fatal("intent rejected for a live player")
	}
	if p.Intent.MoveX != 1 {
		t.Error("intent not stored")
	}
	if in, ok := e.PlayerIntent("mv"); !ok || in.MoveX != 1 {
		t.Error("stored intent not readable back")
	}
	if _, ok := e.PlayerIntent("ghost"); ok {
		t.Error("unknown player has an intent")
	}

	p.Dead = true
	if e.SetIntent("mv", Intent{MoveX: -1, SwitchTo: -1}) {
		t.Error("dead player accepted intent")
	}
	if e.SetIntent("ghost", Intent{SwitchTo: -1}) {
		t.Error("unknown player accepted intent")
	}
}

// TestChangeClass verifies the bunker-only rule and the health ratio
// carrying over
func TestChangeClass(t *testing.T) {
	e := testEngine()
	p := e.AddPlayer("cc", "ranger")

	// Spawn ring is outside the bunker footprint
	if e.ChangeClass("cc", "tank") {
		t.Fatal("class change allowed outside the bunker")
	}

	p.X, p.Y = e.bunker.X, e.bunker.Y
	p.Health = p.MaxHealth / 2
	if !e.ChangeClass("cc", "tank") {
		t.Fatal("class change rejected inside the bunker")
	}
	if p.Class != ClassTank {
		t.Error("class did not change")
	}
	if p.Health != p.MaxHealth/2 {
		t.Errorf("health ratio not preserved: %.0f of %.0f", p.Health, p.MaxHealth)
	}
}

// TestGameOverConditions verifies both losing conditions and that the
// sim freezes afterwards
func TestGameOverConditions(t *testing.T) {
	t.Run("bunker destroyed", func(t *testing.T) {
		e := testEngine()
		e.AddPlayer("b1", "ranger")
		e.bunker.Health = 0
		e.checkGameOver()
		if !e.gameOver {
			t.Fatal("no game over with the bunker down")
		}
	})

	t.Run("all survivors dead", func(t *testing.T) {
		e := testEngine()
		p := e.AddPlayer("d1", "ranger")
		tr := e.AddPlayer("d2", "traitor")
		p.Dead = true
		e.checkGameOver()
		if !e.gameOver {
			t.Fatal("live traitor kept the run going")
		}
		_ = tr
	})

	t.Run("empty world keeps running", func(t *testing.T) {
		e := testEngine()
		e.checkGameOver()
		if e.gameOver {
			t.Fatal("game over with no players at all")
		}
	})
}

// TestReset verifies a fresh run: entities cleared, players revived
func TestReset(t *testing.T) {
	e := testEngine()
	p := e.AddPlayer("rs", "ranger")
	p.Dead = true
	p.Kills = 9
	addTestZombie(e, ZombieNormal, 100, 100, 3)
	e.score = 500
	e.gameOver = true
	e.waves.Wave = 12

	e.Reset()

	if len(e.zombies) != 0 || e.score != 0 || e.gameOver {
		t.Error("world not cleared")
	}
	if e.waves.Wave != 0 {
		t.Error("wave director not reset")
	}
	if p.Dead || p.Health != p.MaxHealth || p.Kills != 0 {
		t.Error("player not revived")
	}
}

// TestSnapshotAfterTick verifies the published snapshot reflects the
// world and respects entity caps
func TestSnapshotAfterTick(t *testing.T) {
	e := testEngine()
	e.AddPlayer("sn", "ranger")
	addTestZombie(e, ZombieNormal, 100, 100, 1)

	e.tick()

	snap := e.GetSnapshot()
	if snap.Sequence == 0 {
		t.Fatal("no snapshot published")
	}
	if len(snap.Players) != 1 {
		t.Errorf("snapshot has %d players", len(snap.Players))
	}
	if len(snap.Zombies) != 1 {
		t.Errorf("snapshot has %d zombies", len(snap.Zombies))
	}
	if snap.Bunker.Health != e.bunker.Health {
		t.Error("bunker state not mirrored")
	}
}

// TestInvincibleTestMode verifies the balance-testing switch
func TestInvincibleTestMode(t *testing.T) {
	e := testEngine()
	p := e.AddPlayer("iv", "ranger")
	e.SetTestMode(false, true)

	e.damagePlayer(p, 9999, nil)
	if p.Dead || p.Health != p.MaxHealth {
		t.Error("invincible player took damage")
	}
}

// TestUnlimitedAmmoTestMode verifies firing never drains the magazine
func TestUnlimitedAmmoTestMode(t *testing.T) {
	e := testEngine()
	p := addTestPlayer(e, "ua", "ranger", 500, 500)
	e.SetTestMode(true, false)

	before := p.Ammo
	e.fireWeapon(p)
	if p.Ammo != before {
		t.Error("unlimited ammo mode consumed a round")
	}
}
