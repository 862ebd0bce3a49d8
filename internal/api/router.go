package api

import (
	"net/http"

	"bunkerfall/internal/account"
	"bunkerfall/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineAPI defines the engine methods the HTTP layer calls.
// Keep this minimal - it exists so tests can mock the engine
// without spinning up the tick loop.
type EngineAPI interface {
	// GetSnapshot returns the latest lock-free immutable snapshot
	GetSnapshot() *game.WorldSnapshot
	// AddPlayer joins a player; nil means the player limit was hit
	AddPlayer(name, className string) *game.Player
	// SetIntent replaces a player's input for the coming ticks
	SetIntent(name string, in game.Intent) bool
	// ChangeClass swaps a player's class (bunker only)
	ChangeClass(name, className string) bool
	// Reset starts a fresh run
	Reset()
	// GetEventLogStats returns event log counters
	GetEventLogStats() map[string]interface{}
}

// StoreAPI defines the profile store methods the HTTP layer calls.
type StoreAPI interface {
	Get(name string) *account.Profile
	Authenticate(name, password string) bool
	Leaderboard() []account.Profile
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Engine: mockEngine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the simulation engine (required)
	Engine EngineAPI

	// Store is the profile store (optional; leaderboard returns empty
	// without one)
	Store StoreAPI

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, local-network defaults are used.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	engine EngineAPI
	store  StoreAPI
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects:
//   - No goroutines are started
//   - No network listeners are opened
//   - No background workers are launched
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - order matters
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
			"http://192.168.*",
			"http://10.*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		engine: cfg.Engine,
		store:  cfg.Store,
	}

	r.Route("/api", func(r chi.Router) {
		// World state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Get("/weapons", h.handleGetWeapons)
		r.Get("/leaderboard", h.handleGetLeaderboard)

		// Player management
		r.Post("/players", h.handlePlayerJoin)
		r.Post("/players/{name}/intent", h.handlePlayerIntent)
		r.Post("/players/{name}/class", h.handlePlayerClass)
		r.Get("/players/{name}/profile", h.handlePlayerProfile)

		// Run control
		r.Post("/reset", h.handleReset)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
