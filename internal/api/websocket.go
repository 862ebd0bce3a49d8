package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"bunkerfall/internal/game"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 64

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 4

	// BroadcastInterval is how often world state goes out to viewers.
	// Decoupled from the tick rate: the sim runs at 30 TPS but clients
	// interpolate fine at 10 Hz.
	BroadcastInterval = 100 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// wsInbound is the envelope clients send. Relay peers push intents
// through this; viewers send nothing.
type wsInbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// intentMessage carries one player's input frame
type intentMessage struct {
	Name   string      `json:"name"`
	Intent game.Intent `json:"intent"`
}

// joinMessage lets a relay peer register its player over the socket
type joinMessage struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// WebSocketHub manages all WebSocket connections with connection limits
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	engine EngineAPI

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub with connection limiting.
// The engine handles intents arriving over the socket.
func NewWebSocketHub(engine EngineAPI) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		engine:     engine,
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run starts the hub
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

			count := h.ClientCount()
			log.Printf("📱 Client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			var failed []*websocket.Conn
			h.mu.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					failed = append(failed, conn)
				}
			}
			h.mu.RUnlock()

			for _, conn := range failed {
				h.mu.Lock()
				if client, ok := h.clients[conn]; ok {
					h.wsLimiter.Release(client.ip)
					delete(h.clients, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
			IncrementWSMessages()
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop pushes world snapshots to all clients at
// BroadcastInterval and refreshes the simulation gauges.
func (h *WebSocketHub) StartBroadcastLoop() {
	ticker := time.NewTicker(BroadcastInterval)

	go func() {
		var lastSeq uint64
		for range ticker.C {
			snap := h.engine.GetSnapshot()
			if snap == nil {
				continue
			}

			UpdateWorldGauges(len(snap.Players), len(snap.Zombies), len(snap.Bullets),
				snap.Wave.Wave, snap.TotalKills)

			if h.ClientCount() == 0 {
				continue
			}
			// Skip duplicate frames when the sim is stopped
			if snap.Sequence == lastSeq {
				continue
			}
			lastSeq = snap.Sequence

			h.Broadcast("world:state", snap)
		}
	}()
}

// HandleWebSocket handles incoming WebSocket connections
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	go h.readLoop(conn, ip)
}

// readLoop consumes inbound messages until the connection dies.
// Intents are applied directly; anything else is ignored.
func (h *WebSocketHub) readLoop(conn *websocket.Conn, ip string) {
	defer func() {
		h.unregister <- conn
	}()

	conn.SetReadLimit(4096)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "player:intent":
			var im intentMessage
			im.Intent.SwitchTo = -1
			if err := json.Unmarshal(msg.Data, &im); err != nil || im.Name == "" {
				continue
			}
			h.engine.SetIntent(im.Name, im.Intent)

		case "player:join":
			var jm joinMessage
			if err := json.Unmarshal(msg.Data, &jm); err != nil || jm.Name == "" {
				continue
			}
			h.engine.AddPlayer(jm.Name, jm.Class)

		default:
			log.Printf("📨 Unknown WebSocket event from %s: %q", ip, msg.Event)
		}
	}
}
