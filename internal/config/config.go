// Package config provides centralized configuration management.
// Values are loaded once at startup and passed explicitly; nothing in
// the simulation reads the environment.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds simulation loop settings.
type SimConfig struct {
	TickRate    int     // fixed simulation steps per second
	WorldWidth  float64 // overrides the balance file when > 0
	WorldHeight float64
	BalanceFile string // optional YAML balance overrides
	EventLog    string // JSONL event log path, empty = in-memory only

	// Test-mode switches for balance work
	UnlimitedAmmo bool
	Invincible    bool
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate: 30,
	}
}

// SimFromEnv returns simulation configuration with environment
// variable overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if w := getEnvFloat("WORLD_WIDTH", 0); w > 0 {
		cfg.WorldWidth = w
	}
	if h := getEnvFloat("WORLD_HEIGHT", 0); h > 0 {
		cfg.WorldHeight = h
	}
	cfg.BalanceFile = os.Getenv("BALANCE_FILE")
	cfg.EventLog = os.Getenv("EVENT_LOG")
	cfg.UnlimitedAmmo = os.Getenv("UNLIMITED_AMMO") == "true"
	cfg.Invincible = os.Getenv("INVINCIBLE") == "true"

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment
// variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// ACCOUNT STORE CONFIGURATION
// =============================================================================

// StoreConfig holds profile persistence settings.
type StoreConfig struct {
	AppName        string // gdata application name (local storage key space)
	RemoteStoreURL string // optional remote key-value store base URL
}

// DefaultStore returns the default store configuration.
func DefaultStore() StoreConfig {
	return StoreConfig{
		AppName: "bunkerfall",
	}
}

// StoreFromEnv returns store configuration with environment variable
// overrides.
func StoreFromEnv() StoreConfig {
	cfg := DefaultStore()

	if n := os.Getenv("STORE_APP_NAME"); n != "" {
		cfg.AppName = n
	}
	cfg.RemoteStoreURL = os.Getenv("REMOTE_STORE_URL")

	return cfg
}

// =============================================================================
// RELAY CONFIGURATION
// =============================================================================

// RelayConfig holds the best-effort LAN relay settings. When HostURL
// is empty this process is the host.
type RelayConfig struct {
	HostURL    string // ws:// URL of the hosting peer
	PlayerName string // local player identity pushed to the host
}

// RelayFromEnv returns relay configuration from the environment.
func RelayFromEnv() RelayConfig {
	return RelayConfig{
		HostURL:    os.Getenv("RELAY_HOST_URL"),
		PlayerName: os.Getenv("RELAY_PLAYER_NAME"),
	}
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Server ServerConfig
	Store  StoreConfig
	Relay  RelayConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:    SimFromEnv(),
		Server: ServerFromEnv(),
		Store:  StoreFromEnv(),
		Relay:  RelayFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
