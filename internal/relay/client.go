// Package relay connects a peer process to a hosting simulation over
// WebSocket. The host runs the authoritative world; this client pushes
// the local player's intent up and mirrors world snapshots down. It is
// strictly best-effort: when the link drops the local process keeps
// running on its own simulation.
package relay

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bunkerfall/internal/game"
)

const dialTimeout = 5 * time.Second

// Client mirrors a remote host's world state
type Client struct {
	hostURL    string
	playerName string

	mu        sync.Mutex
	conn      *websocket.Conn
	latest    *game.WorldSnapshot
	connected bool
}

// outbound is the envelope pushed to the host
type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// inbound is the envelope received from the host
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewClient prepares a relay client. No connection is made until
// Connect is called.
func NewClient(hostURL, playerName string) *Client {
	return &Client{
		hostURL:    hostURL,
		playerName: playerName,
	}
}

// Connect dials the host, registers the local player, and starts the
// receive loop. A failed dial leaves the client disconnected; the
// caller keeps its own simulation going.
func (c *Client) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(c.hostURL, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	log.Printf("🔗 Relay connected to host %s", c.hostURL)

	if err := c.send("player:join", map[string]string{"name": c.playerName}); err != nil {
		c.drop()
		return err
	}

	go c.readLoop()
	return nil
}

// Connected reports whether the host link is up
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendIntent pushes the local player's input frame to the host.
// Errors drop the link; there is no reconnect.
func (c *Client) SendIntent(in game.Intent) {
	c.send("player:intent", map[string]interface{}{
		"name":   c.playerName,
		"intent": in,
	})
}

// Latest returns a copy of the most recent snapshot from the host,
// or nil when nothing has arrived yet
func (c *Client) Latest() *game.WorldSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return nil
	}
	snap := *c.latest
	return &snap
}

// Close shuts the link down
func (c *Client) Close() {
	c.drop()
}

func (c *Client) send(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		return websocket.ErrCloseSent
	}
	if err := c.conn.WriteJSON(outbound{Event: event, Data: data}); err != nil {
		log.Printf("⚠️ Relay send failed, dropping link: %v", err)
		c.dropLocked()
		return err
	}
	return nil
}

func (c *Client) readLoop() {
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("⚠️ Relay link lost: %v", err)
			c.drop()
			return
		}

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Event != "world:state" {
			continue
		}

		var snap game.WorldSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			continue
		}

		c.mu.Lock()
		c.latest = &snap
		c.mu.Unlock()
	}
}

func (c *Client) drop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

func (c *Client) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}
