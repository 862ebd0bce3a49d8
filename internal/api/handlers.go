package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"bunkerfall/internal/account"
	"bunkerfall/internal/game"

	"github.com/go-chi/chi/v5"
)

// Handler methods for routerHandlers.
// Used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.GetSnapshot())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.GetSnapshot()
	writeJSON(w, map[string]interface{}{
		"tick":       snap.TickNumber,
		"wave":       snap.Wave.Wave,
		"players":    len(snap.Players),
		"zombies":    len(snap.Zombies),
		"bullets":    len(snap.Bullets),
		"score":      snap.Score,
		"totalKills": snap.TotalKills,
		"gameOver":   snap.GameOver,
		"eventLog":   h.engine.GetEventLogStats(),
	})
}

func (h *routerHandlers) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, game.GetAllWeapons())
}

func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, []account.Profile{})
		return
	}

	profiles := h.store.Leaderboard()
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].HighScore > profiles[j].HighScore
	})
	if len(profiles) > 10 {
		profiles = profiles[:10]
	}
	for i := range profiles {
		profiles[i].PasswordHash = ""
	}
	writeJSON(w, profiles)
}

func (h *routerHandlers) handlePlayerJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Class    string `json:"class"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}
	if len(req.Name) > 32 {
		writeError(w, "Name too long", http.StatusBadRequest)
		return
	}

	// First join with a password claims the name
	if h.store != nil && !h.store.Authenticate(req.Name, req.Password) {
		writeError(w, "Wrong password for this name", http.StatusUnauthorized)
		return
	}

	player := h.engine.AddPlayer(req.Name, req.Class)
	if player == nil {
		writeError(w, "Player limit reached", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]interface{}{
		"name":    player.Name,
		"class":   player.Class.String(),
		"x":       player.X,
		"y":       player.Y,
		"health":  player.Health,
		"weapons": player.Weapons,
	})
}

func (h *routerHandlers) handlePlayerIntent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	in := game.Intent{SwitchTo: -1}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid intent", http.StatusBadRequest)
		return
	}

	if !h.engine.SetIntent(name, in) {
		writeError(w, "Unknown or dead player", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handlePlayerClass(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		Class string `json:"class"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Class swaps only work inside the bunker
	if !h.engine.ChangeClass(name, req.Class) {
		writeError(w, "Class change not allowed", http.StatusConflict)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handlePlayerProfile(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Profiles unavailable", http.StatusNotFound)
		return
	}
	profile := *h.store.Get(chi.URLParam(r, "name"))
	profile.PasswordHash = ""
	writeJSON(w, profile)
}

func (h *routerHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	writeJSON(w, map[string]bool{"success": true})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
