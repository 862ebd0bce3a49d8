package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bunkerfall/internal/account"
	"bunkerfall/internal/game"
)

// testRouter builds a router around a real (unstarted) engine.
// NewRouter is pure, so nothing ticks in the background.
func testRouter(t *testing.T) (http.Handler, *game.Engine) {
	t.Helper()
	engine := game.NewEngine(30, nil)
	router := NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 10000,
			Burst:             10000,
		},
		DisableLogging: true,
	})
	return router, engine
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// TestHealthEndpoint verifies the liveness probe
func TestHealthEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health returned %d", resp.StatusCode)
	}
}

// TestPlayerJoinEndpoint verifies join validation and the happy path
func TestPlayerJoinEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/players", map[string]string{
		"name": "Ana", "class": "tank",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join returned %d", resp.StatusCode)
	}
	var joined struct {
		Name   string  `json:"name"`
		Class  string  `json:"class"`
		Health float64 `json:"health"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&joined); err != nil {
		t.Fatal(err)
	}
	if joined.Class != "tank" || joined.Health != 180 {
		t.Errorf("joined as %s with %.0f hp", joined.Class, joined.Health)
	}

	// Missing name is rejected
	resp = postJSON(t, ts, "/api/players", map[string]string{"class": "tank"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("nameless join returned %d", resp.StatusCode)
	}

	// Oversized name is rejected
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'x'
	}
	resp = postJSON(t, ts, "/api/players", map[string]string{"name": string(long)})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("oversized name returned %d", resp.StatusCode)
	}
}

// TestPlayerJoinLimit verifies the 503 once the engine is full
func TestPlayerJoinLimit(t *testing.T) {
	router, engine := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	for i := 0; i < game.DefaultLimits.MaxPlayers; i++ {
		engine.AddPlayer(fmt.Sprintf("p%d", i), "ranger")
	}

	resp := postJSON(t, ts, "/api/players", map[string]string{"name": "late"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("full engine returned %d on join", resp.StatusCode)
	}
}

// TestIntentEndpoint verifies intent routing and the unknown-player 404
func TestIntentEndpoint(t *testing.T) {
	router, engine := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	engine.AddPlayer("mover", "ranger")

	resp := postJSON(t, ts, "/api/players/mover/intent", map[string]interface{}{
		"moveX": 1.0, "fire": true,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("intent returned %d", resp.StatusCode)
	}

	resp = postJSON(t, ts, "/api/players/ghost/intent", map[string]interface{}{
		"moveX": 1.0,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown player intent returned %d", resp.StatusCode)
	}
}

// TestClassChangeEndpoint verifies the 409 outside the bunker
func TestClassChangeEndpoint(t *testing.T) {
	router, engine := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	// Spawn ring is outside the bunker, so the change is refused
	engine.AddPlayer("cls", "ranger")
	resp := postJSON(t, ts, "/api/players/cls/class", map[string]string{"class": "healer"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("out-of-bunker class change returned %d", resp.StatusCode)
	}
}

// TestStateEndpoint verifies the snapshot decodes and tracks the world
func TestStateEndpoint(t *testing.T) {
	router, engine := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	engine.AddPlayer("obs", "ranger")

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var snap game.WorldSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("state did not decode: %v", err)
	}
	if snap.GameOver {
		t.Error("fresh world reported game over")
	}
}

// TestWeaponsEndpoint verifies the full catalog is served
func TestWeaponsEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weapons")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var catalog map[string]game.Weapon
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		t.Fatal(err)
	}
	if len(catalog) != len(game.Weapons) {
		t.Errorf("catalog served %d weapons, expected %d", len(catalog), len(game.Weapons))
	}
}

// TestLeaderboardWithoutStore verifies a nil store degrades to an
// empty list instead of a panic
func TestLeaderboardWithoutStore(t *testing.T) {
	router, _ := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard returned %d", resp.StatusCode)
	}
	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("storeless leaderboard has %d rows", len(rows))
	}
}

// TestResetEndpoint verifies the run control route
func TestResetEndpoint(t *testing.T) {
	router, engine := testRouter(t)
	ts := httptest.NewServer(router)
	defer ts.Close()

	engine.AddPlayer("rst", "ranger")
	resp := postJSON(t, ts, "/api/reset", map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("reset returned %d", resp.StatusCode)
	}
}

// fakeStore implements StoreAPI with one claimed name
type fakeStore struct {
	name     string
	password string
}

func (f *fakeStore) Get(name string) *account.Profile {
	return &account.Profile{Name: name}
}

func (f *fakeStore) Authenticate(name, password string) bool {
	return name != f.name || password == f.password
}

func (f *fakeStore) Leaderboard() []account.Profile { return nil }

// TestJoinPasswordCheck verifies the 401 on a claimed name
func TestJoinPasswordCheck(t *testing.T) {
	engine := game.NewEngine(30, nil)
	router := NewRouter(RouterConfig{
		Engine:         engine,
		Store:          &fakeStore{name: "ana", password: "hunter2"},
		DisableLogging: true,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/players", map[string]string{
		"name": "ana", "password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password returned %d", resp.StatusCode)
	}

	resp = postJSON(t, ts, "/api/players", map[string]string{
		"name": "ana", "password": "hunter2",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("correct password returned %d", resp.StatusCode)
	}
}

// TestRateLimitRejects verifies a tight limiter returns 429s
func TestRateLimitRejects(t *testing.T) {
	engine := game.NewEngine(30, nil)
	router := NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             1,
		},
		DisableLogging: true,
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	limited := false
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Error("burst of requests was never rate limited")
	}
}
