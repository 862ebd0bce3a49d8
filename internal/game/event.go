package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // tick boundary with RNG seed
	EventTypePlayerJoin
	EventTypePlayerDeath
	EventTypeDamage
	EventTypeKill
	EventTypeWaveStart
	EventTypeWaveComplete
	EventTypeZombieSpawn
	EventTypeBossSpawn
	EventTypeBossKill
	EventTypeScream
	EventTypePickup
	EventTypeGameOver
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is one record in the append-only event log. Source is the
// acting player name or zombie type.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // unix nano
	Sequence  uint64    `json:"sequence"`  // monotonic
	TickNum   uint64    `json:"tickNum"`
	Source    string    `json:"source,omitempty"`
	Payload   []byte    `json:"payload"`
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypePlayerJoin:
		return "player_join"
	case EventTypePlayerDeath:
		return "player_death"
	case EventTypeDamage:
		return "damage"
	case EventTypeKill:
		return "kill"
	case EventTypeWaveStart:
		return "wave_start"
	case EventTypeWaveComplete:
		return "wave_complete"
	case EventTypeZombieSpawn:
		return "zombie_spawn"
	case EventTypeBossSpawn:
		return "boss_spawn"
	case EventTypeBossKill:
		return "boss_kill"
	case EventTypeScream:
		return "scream"
	case EventTypePickup:
		return "pickup"
	case EventTypeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Typed payloads for the different event types

// TickPayload marks a tick boundary for deterministic replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	Wave        int   `json:"wave"`
	Zombies     int   `json:"zombies"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
}

// WavePayload covers wave_start and wave_complete
type WavePayload struct {
	Wave    int `json:"wave"`
	ToSpawn int `json:"toSpawn,omitempty"`
	Score   int `json:"score,omitempty"`
}

// ZombiePayload covers spawn, boss and scream events
type ZombiePayload struct {
	ZombieID int64   `json:"zombieId"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Stage    int     `json:"stage,omitempty"`
}

// DamagePayload records one damage application to a zombie
type DamagePayload struct {
	Attacker   string  `json:"attacker,omitempty"`
	ZombieID   int64   `json:"zombieId"`
	ZombieType string  `json:"zombieType"`
	Damage     float64 `json:"damage"`
	HealthLeft float64 `json:"healthLeft"`
	Weapon     string  `json:"weapon,omitempty"`
}

// KillPayload records a scored zombie death
type KillPayload struct {
	Killer     string `json:"killer,omitempty"`
	ZombieID   int64  `json:"zombieId"`
	ZombieType string `json:"zombieType"`
	Score      int    `json:"score"`
	TotalKills int    `json:"totalKills"`
}

// PickupPayload records a collected drop
type PickupPayload struct {
	Player string `json:"player"`
	Kind   string `json:"kind"`
	Weapon string `json:"weapon,omitempty"`
}

// PlayerJoinPayload records a player joining the run
type PlayerJoinPayload struct {
	Player string  `json:"player"`
	Class  string  `json:"class"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// PlayerDeathPayload records a player going down
type PlayerDeathPayload struct {
	Player string `json:"player"`
	Source string `json:"source"`
	Wave   int    `json:"wave"`
}

// GameOverPayload records the end of a run
type GameOverPayload struct {
	Reason string `json:"reason"`
	Wave   int    `json:"wave"`
	Score  int    `json:"score"`
	Kills  int    `json:"kills"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, source string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Source:    source,
		Payload:   EncodePayload(payload),
	}
}
