package game

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance collects the tunable simulation numbers. Defaults are
// compiled in; a YAML file can override any subset of them.
type Balance struct {
	WorldWidth  float64 `yaml:"worldWidth"`
	WorldHeight float64 `yaml:"worldHeight"`

	BunkerHealth float64 `yaml:"bunkerHealth"`
	WallHealth   float64 `yaml:"wallHealth"`

	WaveBaseCount     int     `yaml:"waveBaseCount"`
	WavePerWaveCount  int     `yaml:"wavePerWaveCount"`
	SpawnIntervalBase float64 `yaml:"spawnIntervalBase"`
	SpawnIntervalStep float64 `yaml:"spawnIntervalStep"`
	SpawnIntervalMin  float64 `yaml:"spawnIntervalMin"`

	Zombies map[string]ZombieTuning `yaml:"zombies"`
}

// DefaultBalance returns the built-in numbers
func DefaultBalance() *Balance {
	zombies := make(map[string]ZombieTuning, len(defaultZombieTuning))
	for k, v := range defaultZombieTuning {
		zombies[k] = v
	}
	return &Balance{
		WorldWidth:        5000,
		WorldHeight:       5000,
		BunkerHealth:      1000,
		WallHealth:        1000,
		WaveBaseCount:     10,
		WavePerWaveCount:  5,
		SpawnIntervalBase: 2.0,
		SpawnIntervalStep: 0.1,
		SpawnIntervalMin:  0.3,
		Zombies:           zombies,
	}
}

// LoadBalance returns defaults overlaid with the YAML file at path.
// An empty path means pure defaults. Overrides are per zombie entry:
// a listed type replaces its whole tuning row.
func LoadBalance(path string) (*Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse balance file: %w", err)
	}

	log.Printf("⚖️ Balance overrides loaded from %s", path)
	return b, nil
}

// Tuning returns the stats row for a zombie type. Types missing from
// an override file fall back to the normal zombie's row.
func (b *Balance) Tuning(t ZombieType) ZombieTuning {
	if s, ok := b.Zombies[t.String()]; ok {
		return s
	}
	return defaultZombieTuning["normal"]
}
