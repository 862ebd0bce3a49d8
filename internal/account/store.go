// Package account persists player profiles across runs: coins,
// unlocked weapons, and the best score. Storage is layered: a remote
// key-value store when configured, local storage through gdata
// otherwise, and a plain in-memory guest profile when both fail.
// The simulation never blocks on persistence.
package account

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"bunkerfall/internal/config"
)

// Profile is one player's persistent state. PasswordHash is persisted
// but must be stripped before a profile leaves the HTTP surface.
type Profile struct {
	Name            string   `yaml:"name" json:"name"`
	PasswordHash    string   `yaml:"passwordHash,omitempty" json:"passwordHash,omitempty"`
	Coins           int      `yaml:"coins" json:"coins"`
	UnlockedWeapons []string `yaml:"unlockedWeapons" json:"unlockedWeapons"`
	HighScore       int      `yaml:"highScore" json:"highScore"`
	HighWave        int      `yaml:"highWave" json:"highWave"`
}

const profilesObject = "profiles"

// Store manages profiles with a write-through cache. A nil gdata
// manager means local persistence is unavailable (degraded mode);
// profiles then live only in memory for the session.
type Store struct {
	mu       sync.Mutex
	profiles map[string]*Profile

	local  *gdata.Manager
	remote string // base URL, empty = disabled
	client *http.Client
}

// NewStore opens local storage and remembers the remote endpoint.
// Failure to open local storage is not fatal: the store degrades to
// memory-only and says so once.
func NewStore(cfg config.StoreConfig) *Store {
	s := &Store{
		profiles: make(map[string]*Profile),
		remote:   cfg.RemoteStoreURL,
		client:   &http.Client{Timeout: 3 * time.Second},
	}

	m, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.Printf("⚠️ Local profile storage unavailable: %v (guest mode)", err)
	} else {
		s.local = m
	}
	return s
}

// Get returns the profile for a player, loading it on first use
func (s *Store) Get(name string) *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(name)
}

func (s *Store) getLocked(name string) *Profile {
	if p, ok := s.profiles[name]; ok {
		return p
	}
	p := s.load(name)
	s.profiles[name] = p
	return p
}

// load tries remote first, then local, then a fresh guest profile
func (s *Store) load(name string) *Profile {
	if s.remote != "" {
		if p, err := s.loadRemote(name); err == nil {
			return p
		} else {
			log.Printf("⚠️ Remote profile load failed for %s: %v", name, err)
		}
	}

	if s.local != nil && s.local.ObjectPropExists(profilesObject, name) {
		data, err := s.local.LoadObjectProp(profilesObject, name)
		if err == nil {
			var p Profile
			if err := yaml.Unmarshal(data, &p); err == nil {
				return &p
			}
		}
		log.Printf("⚠️ Local profile load failed for %s: %v", name, err)
	}

	return &Profile{Name: name}
}

// save writes the profile through to whichever layers are available
func (s *Store) save(p *Profile) {
	if s.local != nil {
		data, err := yaml.Marshal(p)
		if err == nil {
			if err := s.local.SaveObjectProp(profilesObject, p.Name, data); err != nil {
				log.Printf("⚠️ Local profile save failed for %s: %v", p.Name, err)
			}
		}
	}

	if s.remote != "" {
		if err := s.saveRemote(p); err != nil {
			log.Printf("⚠️ Remote profile save failed for %s: %v", p.Name, err)
		}
	}
}

// Authenticate checks a player's password. The first join with a
// non-empty password claims the name; later joins must match. Names
// never claimed stay open to anyone.
func (s *Store) Authenticate(name, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getLocked(name)
	if p.PasswordHash == "" {
		if password != "" {
			p.PasswordHash = hashPassword(password)
			s.save(p)
		}
		return true
	}
	return p.PasswordHash == hashPassword(password)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// AddCoins credits coins and persists
func (s *Store) AddCoins(name string, amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getLocked(name)
	p.Coins += amount
	s.save(p)
}

// UnlockWeapon records a weapon unlock once and persists
func (s *Store) UnlockWeapon(name, weaponKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getLocked(name)
	for _, k := range p.UnlockedWeapons {
		if k == weaponKey {
			return
		}
	}
	p.UnlockedWeapons = append(p.UnlockedWeapons, weaponKey)
	s.save(p)
}

// UpdateHighScore keeps the best run on record
func (s *Store) UpdateHighScore(name string, score, wave int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getLocked(name)
	changed := false
	if score > p.HighScore {
		p.HighScore = score
		changed = true
	}
	if wave > p.HighWave {
		p.HighWave = wave
		changed = true
	}
	if changed {
		s.save(p)
	}
}

// Leaderboard hands out copies of the cached profiles. Sorting is
// left to the caller.
func (s *Store) Leaderboard() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out
}

func (s *Store) profileURL(name string) string {
	return fmt.Sprintf("%s/profiles/%s", s.remote, name)
}

func (s *Store) loadRemote(name string) (*Profile, error) {
	resp, err := s.client.Get(s.profileURL(name))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Profile{Name: name}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote store returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode remote profile: %w", err)
	}
	return &p, nil
}

func (s *Store) saveRemote(p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, s.profileURL(p.Name), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("remote store returned %d", resp.StatusCode)
	}
	return nil
}
