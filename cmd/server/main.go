package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bunkerfall/internal/account"
	"bunkerfall/internal/api"
	"bunkerfall/internal/config"
	"bunkerfall/internal/game"
	"bunkerfall/internal/relay"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	log.Println("🧟 ================================")
	log.Println("🧟  BUNKERFALL - WAVE SURVIVAL")
	log.Println("🧟 ================================")

	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server

	// Balance: compiled-in defaults, optionally overlaid from YAML
	balance := game.DefaultBalance()
	if simCfg.BalanceFile != "" {
		b, err := game.LoadBalance(simCfg.BalanceFile)
		if err != nil {
			log.Fatalf("❌ Balance file %s: %v", simCfg.BalanceFile, err)
		}
		balance = b
	}
	if simCfg.WorldWidth > 0 {
		balance.WorldWidth = simCfg.WorldWidth
	}
	if simCfg.WorldHeight > 0 {
		balance.WorldHeight = simCfg.WorldHeight
	}

	engine := game.NewEngine(simCfg.TickRate, balance)
	limits := engine.GetLimits()
	log.Printf("🛡️ Resource limits: %d players, %d zombies, %d bullets, %d walls",
		limits.MaxPlayers, limits.MaxZombies, limits.MaxBullets, limits.MaxWalls)

	if simCfg.UnlimitedAmmo || simCfg.Invincible {
		engine.SetTestMode(simCfg.UnlimitedAmmo, simCfg.Invincible)
		log.Printf("🧪 Test mode: unlimitedAmmo=%v invincible=%v", simCfg.UnlimitedAmmo, simCfg.Invincible)
	}

	// Profile persistence (coins, unlocks, best runs)
	store := account.NewStore(appConfig.Store)

	engine.OnCoins = func(p *game.Player, amount int) {
		store.AddCoins(p.Name, amount)
	}
	engine.OnWeaponUnlock = func(p *game.Player, weaponKey string) {
		store.UnlockWeapon(p.Name, weaponKey)
	}

	if simCfg.EventLog != "" {
		if err := engine.StartEventLog(simCfg.EventLog); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
		} else {
			log.Printf("📝 Event log: %s", simCfg.EventLog)
		}
	}

	// Metrics: per-tick timing plus the localhost debug server
	engine.SetTickObserver(api.RecordTick)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	server := api.NewServer(engine, store)

	// Best-run records need the final snapshot per player
	engine.OnGameOver = func(score, kills, wave int) {
		snap := engine.GetSnapshot()
		if snap == nil {
			return
		}
		for _, ps := range snap.Players {
			store.UpdateHighScore(ps.Name, score, wave)
		}
		server.Hub().Broadcast("game:over", map[string]int{
			"score": score, "kills": kills, "wave": wave,
		})
	}
	engine.OnWave = func(wave int) {
		server.Hub().Broadcast("wave:start", map[string]int{"wave": wave})
	}

	// Optional LAN relay: when a host URL is set, this process mirrors
	// the remote world instead of being authoritative for its peers.
	// The local simulation still runs so a dropped link degrades to
	// single-player rather than a frozen screen.
	var relayClient *relay.Client
	if appConfig.Relay.HostURL != "" {
		name := appConfig.Relay.PlayerName
		if name == "" {
			name = "peer"
		}
		relayClient = relay.NewClient(appConfig.Relay.HostURL, name)
		if err := relayClient.Connect(); err != nil {
			log.Printf("⚠️ Relay host unreachable, running standalone: %v", err)
		} else {
			go forwardIntents(engine, relayClient, name)
		}
	}

	engine.Start()
	log.Println("✅ Simulation started")

	go func() {
		addr := fmt.Sprintf(":%d", serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Ready. Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	if relayClient != nil {
		relayClient.Close()
	}
	server.Stop()
	engine.StopEventLog()
	engine.Stop()
	log.Println("👋 Goodbye!")
}

// forwardIntents mirrors the local player's input frames up to the
// relay host until the link drops
func forwardIntents(engine *game.Engine, client *relay.Client, name string) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for range ticker.C {
		if !client.Connected() {
			return
		}
		if in, ok := engine.PlayerIntent(name); ok {
			client.SendIntent(in)
		}
	}
}
